package service

import (
	"sort"

	"github.com/codearena/contest_relay/model"
)

// userScore 单用户计分结果
type userScore struct {
	ProblemsSolved int
	TotalPenalty   int
	TotalPoints    int
	Problems       []model.ProblemResult
}

// scoreUser ICPC 计分: 提交按时间序处理, PENDING/TESTING 不参与,
// 每题只认首个 OK, 通过后的提交不再改变该题的尝试数与罚时
// 罚时 = 通过时刻距开赛分钟数(向下取整) + 通过前错误次数 x 单次罚时
func scoreUser(contest *model.Contest, subs []model.Submission) userScore {
	byProblem := make(map[string]*model.ProblemResult)
	order := make([]string, 0, 4)

	for i := range subs {
		sub := &subs[i]
		if !sub.Verdict.Terminal() {
			continue
		}

		prob, exists := byProblem[sub.ProblemCode]
		if !exists {
			prob = &model.ProblemResult{ProblemCode: sub.ProblemCode}
			byProblem[sub.ProblemCode] = prob
			order = append(order, sub.ProblemCode)
		}
		if prob.Solved {
			continue
		}

		prob.Attempts++

		if sub.Verdict == model.VerdictOK {
			prob.Solved = true
			prob.Points = 1
			prob.SolveTime = int(sub.SubmittedAt.Sub(contest.StartTime).Minutes())
			prob.Penalty = prob.SolveTime + (prob.Attempts-1)*contest.PenaltyTime
		}
	}

	score := userScore{Problems: make([]model.ProblemResult, 0, len(order))}
	for _, code := range order {
		prob := byProblem[code]
		score.Problems = append(score.Problems, *prob)
		if prob.Solved {
			score.ProblemsSolved++
			score.TotalPenalty += prob.Penalty
		}
	}
	// ICPC: 每题 1 分
	score.TotalPoints = score.ProblemsSolved
	return score
}

// computeStandings 全量重算: 对每个参赛者跑一遍计分, 通过数降序、罚时升序排序,
// 名次 1..N 严格递增, 双键相同也不并列
// 纯函数, 相同提交历史必产生相同输出
func computeStandings(contest *model.Contest, participants []uint64, subs []model.Submission) []model.StandingRow {
	byUser := make(map[uint64][]model.Submission, len(participants))
	for _, sub := range subs {
		byUser[sub.UserID] = append(byUser[sub.UserID], sub)
	}

	rows := make([]model.StandingRow, 0, len(participants))
	for _, uid := range participants {
		var score userScore
		// IOI 模式仅声明, 目前两种模式同走 ICPC 计分
		switch contest.ScoringType {
		case model.ScoringTypeIOI:
			score = scoreUser(contest, byUser[uid])
		default:
			score = scoreUser(contest, byUser[uid])
		}

		rows = append(rows, model.StandingRow{
			UserID:         uid,
			ProblemsSolved: score.ProblemsSolved,
			TotalPenalty:   score.TotalPenalty,
			TotalPoints:    score.TotalPoints,
			Problems:       score.Problems,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ProblemsSolved != rows[j].ProblemsSolved {
			return rows[i].ProblemsSolved > rows[j].ProblemsSolved
		}
		return rows[i].TotalPenalty < rows[j].TotalPenalty
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
