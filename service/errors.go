package service

import "errors"

var (
	// ErrNoActiveIdentity 未绑定远程评测账号, 管理员介入后可重试
	ErrNoActiveIdentity = errors.New("service: no active judge identity")

	ErrContestNotFound     = errors.New("service: contest not found")
	ErrContestNotRunning   = errors.New("service: contest is not running")
	ErrNotParticipant      = errors.New("service: user is not a contest participant")
	ErrProblemNotInContest = errors.New("service: problem does not belong to contest")
	ErrSubmissionNotFound  = errors.New("service: submission not found")
	ErrNoJudgeReference    = errors.New("service: submission has no judge submission id")
)
