package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContestStatusAt(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &Contest{StartTime: start, Duration: 120}

	assert.Equal(t, ContestStatusUpcoming, c.StatusAt(start.Add(-time.Minute)))
	assert.Equal(t, ContestStatusRunning, c.StatusAt(start))
	assert.Equal(t, ContestStatusRunning, c.StatusAt(start.Add(119*time.Minute)))
	assert.Equal(t, ContestStatusEnded, c.StatusAt(start.Add(120*time.Minute)))
}

func TestVerdictTerminal(t *testing.T) {
	assert.False(t, Verdict("").Terminal())
	assert.False(t, VerdictPending.Terminal())
	assert.False(t, VerdictTesting.Terminal())
	assert.True(t, VerdictOK.Terminal())
	assert.True(t, VerdictWrongAnswer.Terminal())
	assert.True(t, VerdictTimeout.Terminal())
}

func TestContestProblemJudgeRef(t *testing.T) {
	p := &ContestProblem{JudgeContestID: 4, JudgeIndex: "A"}
	assert.Equal(t, "4/A", p.JudgeRef())
}
