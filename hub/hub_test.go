package hub

import (
	"testing"

	"github.com/codearena/contest_relay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJoinPublishLeave(t *testing.T) {
	h := NewContestHub(zap.NewNop(), 4)

	id, ch := h.Join(42)
	require.Equal(t, 1, h.RoomSize(42))

	delta := SubmissionDelta{SubmissionID: 1, ContestID: 42, UserID: 7, ProblemCode: "A", Verdict: model.VerdictOK}
	h.PublishSubmission(42, delta)

	ev := <-ch
	assert.Equal(t, KindSubmissionUpdate, ev.Kind)
	assert.Equal(t, uint64(42), ev.ContestID)
	assert.Equal(t, delta, ev.Payload)

	h.Leave(42, id)
	assert.Equal(t, 0, h.RoomSize(42))

	_, open := <-ch
	assert.False(t, open)
}

func TestRoomIsolation(t *testing.T) {
	h := NewContestHub(zap.NewNop(), 4)

	idA, chA := h.Join(1)
	idB, chB := h.Join(2)
	defer h.Leave(1, idA)
	defer h.Leave(2, idB)

	h.PublishStandings(1, []model.StandingRow{{Rank: 1, UserID: 7}})

	ev := <-chA
	assert.Equal(t, KindStandingsUpdate, ev.Kind)

	select {
	case ev := <-chB:
		t.Fatalf("room 2 received event for room 1: %+v", ev)
	default:
	}
}

func TestBestEffortDrop(t *testing.T) {
	h := NewContestHub(zap.NewNop(), 1)

	id, ch := h.Join(9)
	defer h.Leave(9, id)

	// 缓冲为 1, 第二条被丢弃而非阻塞发布方
	h.PublishSubmission(9, SubmissionDelta{SubmissionID: 1})
	h.PublishSubmission(9, SubmissionDelta{SubmissionID: 2})

	ev := <-ch
	assert.Equal(t, uint64(1), ev.Payload.(SubmissionDelta).SubmissionID)

	select {
	case ev := <-ch:
		t.Fatalf("expected second event dropped, got %+v", ev)
	default:
	}
}

func TestPublishToEmptyRoom(t *testing.T) {
	h := NewContestHub(zap.NewNop(), 4)
	// 无订阅者时发布不应 panic
	h.PublishSubmission(5, SubmissionDelta{SubmissionID: 1})
	h.PublishStandings(5, nil)
}
