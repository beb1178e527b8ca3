package model

import (
	"fmt"
	"time"
)

type Verdict string

const (
	VerdictPending Verdict = "PENDING"
	VerdictTesting Verdict = "TESTING"

	VerdictOK                  Verdict = "OK"
	VerdictWrongAnswer         Verdict = "WRONG_ANSWER"
	VerdictTimeLimitExceeded   Verdict = "TIME_LIMIT_EXCEEDED"
	VerdictMemoryLimitExceeded Verdict = "MEMORY_LIMIT_EXCEEDED"
	VerdictRuntimeError        Verdict = "RUNTIME_ERROR"
	VerdictCompilationError    Verdict = "COMPILATION_ERROR"

	// VerdictTimeout 轮询次数耗尽, 与其他终态等价, 仅能通过重判重置
	VerdictTimeout Verdict = "VERDICT_TIMEOUT"
)

// Terminal 终态判定: 非空且不处于 PENDING/TESTING
func (v Verdict) Terminal() bool {
	return v != "" && v != VerdictPending && v != VerdictTesting
}

type Submission struct {
	ID                uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ContestID         uint64    `json:"contest_id" gorm:"index:idx_contest_user_problem,priority:1;not null"`
	UserID            uint64    `json:"user_id" gorm:"index:idx_contest_user_problem,priority:2;not null"`
	ProblemCode       string    `json:"problem_code" gorm:"type:varchar(16);index:idx_contest_user_problem,priority:3;not null"`
	Code              string    `json:"code,omitempty" gorm:"type:mediumtext;not null"`
	Language          string    `json:"language" gorm:"type:varchar(32);not null"`
	LanguageID        string    `json:"language_id" gorm:"type:varchar(8);not null"`
	JudgeSubmissionID int64     `json:"judge_submission_id" gorm:"index"`
	Verdict           Verdict   `json:"verdict" gorm:"type:varchar(32);default:PENDING"`
	TestsPassed       int       `json:"tests_passed" gorm:"default:0"`
	TimeUsed          int64     `json:"time_used" gorm:"default:0"`   // 单位: 毫秒
	MemoryUsed        int64     `json:"memory_used" gorm:"default:0"` // 单位: 字节
	SubmittedAt       time.Time `json:"submitted_at" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submission"
}

func formatJudgeRef(judgeContestID int, judgeIndex string) string {
	return fmt.Sprintf("%d/%s", judgeContestID, judgeIndex)
}

type CreateSubmissionParam struct {
	ContestCommonParam `json:"-"`

	ProblemCode string `json:"problem_code" binding:"required,problemref"`
	Code        string `json:"code" binding:"required"`
	Language    string `json:"language" binding:"required"`
	LanguageID  string `json:"language_id" binding:"required"`
}

type CreateSubmissionResponse struct {
	ID                uint64    `json:"id"`
	ContestID         uint64    `json:"contest_id"`
	ProblemCode       string    `json:"problem_code"`
	Language          string    `json:"language"`
	JudgeSubmissionID int64     `json:"judge_submission_id"`
	Verdict           Verdict   `json:"verdict"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

type GetSubmissionListParam struct {
	ContestCommonParam `json:"-"`

	ProblemCode string `form:"problem_code"`
	UserID      uint64 `form:"user_id"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SubmissionSummary 列表项, 不含源代码
type SubmissionSummary struct {
	ID                uint64    `json:"id"`
	ContestID         uint64    `json:"contest_id"`
	UserID            uint64    `json:"user_id"`
	ProblemCode       string    `json:"problem_code"`
	Language          string    `json:"language"`
	JudgeSubmissionID int64     `json:"judge_submission_id"`
	Verdict           Verdict   `json:"verdict"`
	TestsPassed       int       `json:"tests_passed"`
	TimeUsed          int64     `json:"time_used"`
	MemoryUsed        int64     `json:"memory_used"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

type GetSubmissionListResponse struct {
	List  []SubmissionSummary `json:"list"`
	Total int                 `json:"total"`
}

type GetLatestSubmissionParam struct {
	ContestCommonParam `json:"-"`

	ProblemCode string `form:"problem_code" binding:"omitempty,problemref"`
}

type GetSubmissionParam struct {
	CommonParam `json:"-"`

	SubmissionID uint64 `uri:"id" binding:"required"`
}

type RejudgeParam struct {
	CommonParam `json:"-"`

	SubmissionID uint64 `uri:"id" binding:"required"`
}

type ExportSubmissionLogParam struct {
	CommonParam `json:"-"`

	ContestID uint64 `form:"contest_id" binding:"required"`
}

type RejudgeResponse struct {
	SubmissionID      uint64  `json:"submission_id"`
	JudgeSubmissionID int64   `json:"judge_submission_id"`
	Verdict           Verdict `json:"verdict"`
}
