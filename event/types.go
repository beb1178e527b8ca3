package event

import (
	"time"

	json "github.com/bytedance/sonic"
	"github.com/codearena/contest_relay/model"
)

const VerdictTopic = "verdict_topic"

// VerdictMessage 终判落库后发布, 供下游统计/审计消费
type VerdictMessage struct {
	SubmissionID      uint64        `json:"submission_id"`
	ContestID         uint64        `json:"contest_id"`
	UserID            uint64        `json:"user_id"`
	ProblemCode       string        `json:"problem_code"`
	JudgeSubmissionID int64         `json:"judge_submission_id"`
	Verdict           model.Verdict `json:"verdict"`
	TestsPassed       int           `json:"tests_passed"`
	TimeUsed          int64         `json:"time_used"`
	MemoryUsed        int64         `json:"memory_used"`
	JudgedAt          time.Time     `json:"judged_at"`
}

func (m *VerdictMessage) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
