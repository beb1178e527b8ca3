package service

import (
	"testing"
	"time"

	"github.com/codearena/contest_relay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContest() *model.Contest {
	return &model.Contest{
		ID:          42,
		StartTime:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:    120,
		PenaltyTime: 20,
		ScoringType: model.ScoringTypeICPC,
	}
}

func sub(uid uint64, code string, verdict model.Verdict, minute int) model.Submission {
	c := testContest()
	return model.Submission{
		UserID:      uid,
		ContestID:   c.ID,
		ProblemCode: code,
		Verdict:     verdict,
		SubmittedAt: c.StartTime.Add(time.Duration(minute) * time.Minute),
	}
}

func TestScoreUserPenalty(t *testing.T) {
	// T+10 WA, T+15 WA, T+25 AC: 3 次尝试, 通过时刻 25, 罚时 25 + 2x20 = 65
	subs := []model.Submission{
		sub(7, "A", model.VerdictWrongAnswer, 10),
		sub(7, "A", model.VerdictWrongAnswer, 15),
		sub(7, "A", model.VerdictOK, 25),
	}

	score := scoreUser(testContest(), subs)
	require.Len(t, score.Problems, 1)
	assert.Equal(t, 3, score.Problems[0].Attempts)
	assert.Equal(t, 25, score.Problems[0].SolveTime)
	assert.Equal(t, 65, score.Problems[0].Penalty)
	assert.Equal(t, 1, score.ProblemsSolved)
	assert.Equal(t, 65, score.TotalPenalty)
	assert.Equal(t, 1, score.TotalPoints)
}

func TestScoreUserIgnoresAfterAccept(t *testing.T) {
	subs := []model.Submission{
		sub(7, "A", model.VerdictOK, 10),
		sub(7, "A", model.VerdictWrongAnswer, 20),
		sub(7, "A", model.VerdictOK, 30),
	}

	score := scoreUser(testContest(), subs)
	require.Len(t, score.Problems, 1)
	assert.Equal(t, 1, score.Problems[0].Attempts)
	assert.Equal(t, 10, score.Problems[0].Penalty)
}

func TestScoreUserSkipsNonTerminal(t *testing.T) {
	subs := []model.Submission{
		sub(7, "A", model.VerdictPending, 5),
		sub(7, "A", model.VerdictTesting, 8),
		sub(7, "A", model.VerdictWrongAnswer, 10),
		sub(7, "B", model.VerdictPending, 12),
	}

	score := scoreUser(testContest(), subs)
	require.Len(t, score.Problems, 1)
	assert.Equal(t, "A", score.Problems[0].ProblemCode)
	assert.Equal(t, 1, score.Problems[0].Attempts)
	assert.False(t, score.Problems[0].Solved)
	assert.Equal(t, 0, score.TotalPenalty)
}

func TestScoreUserUnsolvedNoPenalty(t *testing.T) {
	subs := []model.Submission{
		sub(7, "A", model.VerdictWrongAnswer, 10),
		sub(7, "A", model.VerdictTimeLimitExceeded, 20),
		sub(7, "B", model.VerdictOK, 30),
	}

	score := scoreUser(testContest(), subs)
	require.Len(t, score.Problems, 2)
	assert.Equal(t, 1, score.ProblemsSolved)
	// 未通过题目的尝试不计入总罚时
	assert.Equal(t, 30, score.TotalPenalty)
}

func TestComputeStandingsOrderAndRanks(t *testing.T) {
	c := testContest()
	subs := []model.Submission{
		// 用户 1: 2 题, 罚时 10 + 30 = 40
		sub(1, "A", model.VerdictOK, 10),
		sub(1, "B", model.VerdictOK, 30),
		// 用户 2: 2 题, 罚时 5 + (15 + 20) = 40 -> 与用户 1 双键相同
		sub(2, "A", model.VerdictOK, 5),
		sub(2, "B", model.VerdictWrongAnswer, 8),
		sub(2, "B", model.VerdictOK, 15),
		// 用户 3: 1 题, 罚时 3
		sub(3, "A", model.VerdictOK, 3),
	}

	rows := computeStandings(c, []uint64{3, 1, 2}, subs)
	require.Len(t, rows, 3)

	// 名次严格递增, 无并列
	for i, row := range rows {
		assert.Equal(t, i+1, row.Rank)
	}

	assert.Equal(t, 2, rows[0].ProblemsSolved)
	assert.Equal(t, 2, rows[1].ProblemsSolved)
	assert.Equal(t, uint64(3), rows[2].UserID)
}

func TestComputeStandingsPenaltyTiebreak(t *testing.T) {
	c := testContest()
	subs := []model.Submission{
		// 用户 1: 1 题, 罚时 100
		sub(1, "A", model.VerdictOK, 100),
		// 用户 2: 1 题, 罚时 80
		sub(2, "A", model.VerdictOK, 80),
	}

	rows := computeStandings(c, []uint64{1, 2}, subs)
	require.Len(t, rows, 2)
	assert.Equal(t, uint64(2), rows[0].UserID)
	assert.Equal(t, 80, rows[0].TotalPenalty)
	assert.Equal(t, uint64(1), rows[1].UserID)
}

func TestComputeStandingsIncludesZeroScoreParticipants(t *testing.T) {
	c := testContest()
	rows := computeStandings(c, []uint64{5, 6}, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].ProblemsSolved)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestComputeStandingsDeterministic(t *testing.T) {
	c := testContest()
	subs := []model.Submission{
		sub(1, "A", model.VerdictWrongAnswer, 10),
		sub(1, "A", model.VerdictOK, 25),
		sub(2, "A", model.VerdictOK, 40),
	}

	first := computeStandings(c, []uint64{1, 2}, subs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, computeStandings(c, []uint64{1, 2}, subs))
	}
}
