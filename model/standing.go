package model

import "time"

// ProblemResult 单题得分明细
type ProblemResult struct {
	ProblemCode string `json:"problem_code"`
	Attempts    int    `json:"attempts"`
	Solved      bool   `json:"solved"`
	Points      int    `json:"points"`
	Penalty     int    `json:"penalty"`    // 单位: 分钟
	SolveTime   int    `json:"solve_time"` // 距比赛开始的分钟数
}

// StandingRow 排行榜单行, 每次重算整行替换
type StandingRow struct {
	Rank           int             `json:"rank"`
	UserID         uint64          `json:"user_id"`
	ProblemsSolved int             `json:"problems_solved"`
	TotalPenalty   int             `json:"total_penalty"`
	TotalPoints    int             `json:"total_points"`
	Problems       []ProblemResult `json:"problems"`
}

type Standing struct {
	ID             uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ContestID      uint64          `json:"contest_id" gorm:"uniqueIndex:uk_contest_user_standing,priority:1;index:idx_contest_rank,priority:1;not null"`
	UserID         uint64          `json:"user_id" gorm:"uniqueIndex:uk_contest_user_standing,priority:2;not null"`
	Rank           int             `json:"rank" gorm:"column:rank_no;index:idx_contest_rank,priority:2;default:0"`
	ProblemsSolved int             `json:"problems_solved" gorm:"default:0"`
	TotalPenalty   int             `json:"total_penalty" gorm:"default:0"`
	TotalPoints    int             `json:"total_points" gorm:"default:0"`
	Problems       []ProblemResult `json:"problems" gorm:"type:json;serializer:json"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Standing) TableName() string {
	return "standing"
}

func (s *Standing) Row() StandingRow {
	return StandingRow{
		Rank:           s.Rank,
		UserID:         s.UserID,
		ProblemsSolved: s.ProblemsSolved,
		TotalPenalty:   s.TotalPenalty,
		TotalPoints:    s.TotalPoints,
		Problems:       s.Problems,
	}
}

type GetStandingsParam struct {
	ContestCommonParam `json:"-"`
}

type GetStandingsResponse struct {
	ContestID uint64        `json:"contest_id"`
	Rows      []StandingRow `json:"rows"`
}

type ExportStandingsParam struct {
	CommonParam `json:"-"`

	ContestID uint64 `form:"contest_id" binding:"required"`
	Format    string `form:"format" binding:"required,oneof=csv xlsx"`
}
