package model

import "time"

type ContestStatus string

const (
	ContestStatusUpcoming ContestStatus = "UPCOMING"
	ContestStatusRunning  ContestStatus = "RUNNING"
	ContestStatusEnded    ContestStatus = "ENDED"
)

type ScoringType string

const (
	ScoringTypeICPC ScoringType = "ICPC"
	ScoringTypeIOI  ScoringType = "IOI" // 仅声明, 计分与 ICPC 相同
)

type Contest struct {
	ID          uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string      `json:"title" gorm:"type:varchar(200);not null"`
	Description string      `json:"description" gorm:"type:varchar(5000)"`
	CreatorID   uint64      `json:"creator_id" gorm:"not null"`
	StartTime   time.Time   `json:"start_time" gorm:"not null"`
	Duration    int         `json:"duration" gorm:"not null"`            // 比赛时长(单位: 分钟)
	PenaltyTime int         `json:"penalty_time" gorm:"default:20"`      // 每次错误提交的罚时(单位: 分钟)
	ScoringType ScoringType `json:"scoring_type" gorm:"type:varchar(8);default:ICPC"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Problems []ContestProblem `json:"problems" gorm:"foreignKey:ContestID"`
}

func (Contest) TableName() string {
	return "contest"
}

func (c *Contest) EndTime() time.Time {
	return c.StartTime.Add(time.Duration(c.Duration) * time.Minute)
}

// StatusAt 比赛状态由当前时间推导, 不落库
func (c *Contest) StatusAt(now time.Time) ContestStatus {
	if now.Before(c.StartTime) {
		return ContestStatusUpcoming
	}
	if now.Before(c.EndTime()) {
		return ContestStatusRunning
	}
	return ContestStatusEnded
}

func (c *Contest) Status() ContestStatus {
	return c.StatusAt(time.Now())
}

// ContestProblem 比赛题目, ProblemCode 为站内展示编号("A"), 远程评测侧由 JudgeContestID + JudgeIndex 定位
type ContestProblem struct {
	ID             uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ContestID      uint64 `json:"contest_id" gorm:"uniqueIndex:uk_contest_problem,priority:1;not null"`
	ProblemCode    string `json:"problem_code" gorm:"type:varchar(16);uniqueIndex:uk_contest_problem,priority:2;not null"`
	JudgeContestID int    `json:"judge_contest_id" gorm:"not null"`
	JudgeIndex     string `json:"judge_index" gorm:"type:varchar(8);not null"`
	ProblemName    string `json:"problem_name" gorm:"type:varchar(200)"`
	Points         int    `json:"points" gorm:"default:1"`
}

func (ContestProblem) TableName() string {
	return "contest_problem"
}

// JudgeRef 远程评测侧的题目定位, 如 "4/A"
func (p *ContestProblem) JudgeRef() string {
	return formatJudgeRef(p.JudgeContestID, p.JudgeIndex)
}

type EnterContestParam struct {
	CommonParam `json:"-"`

	ContestID uint64 `uri:"id" binding:"required"`
}

type GetContestParam struct {
	CommonParam `json:"-"`

	ContestID uint64 `uri:"id" binding:"required"`
}

type GetContestResponse struct {
	Contest *Contest      `json:"contest"`
	Status  ContestStatus `json:"status"`
}

type ContestUser struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ContestID uint64    `json:"contest_id" gorm:"uniqueIndex:uk_contest_user,priority:1;not null"`
	UserID    uint64    `json:"user_id" gorm:"uniqueIndex:uk_contest_user,priority:2;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContestUser) TableName() string {
	return "contest_user"
}
