package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	json "github.com/bytedance/sonic"
	"github.com/codearena/contest_relay/event"
	"github.com/codearena/contest_relay/hub"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type verdictStep struct {
	res *judge.VerdictResult
	err error
}

type fakeFetcher struct {
	mu    sync.Mutex
	steps []verdictStep
	calls int
}

func (f *fakeFetcher) Verdict(_ context.Context, _ string, _ int64) (*judge.VerdictResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	step := f.steps[len(f.steps)-1]
	if f.calls <= len(f.steps) {
		step = f.steps[f.calls-1]
	}
	return step.res, step.err
}

type commit struct {
	submissionID uint64
	verdict      model.Verdict
	testsPassed  int
	timeUsed     int64
	memoryUsed   int64
}

type fakeStore struct {
	mu      sync.Mutex
	commits []commit
	err     error
}

func (s *fakeStore) CommitVerdict(_ context.Context, submissionID uint64, verdict model.Verdict, testsPassed int, timeUsed, memoryUsed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.commits = append(s.commits, commit{submissionID, verdict, testsPassed, timeUsed, memoryUsed})
	return nil
}

func (s *fakeStore) all() []commit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]commit(nil), s.commits...)
}

type fakeStandings struct {
	mu    sync.Mutex
	calls []uint64
	rows  []model.StandingRow
	err   error
}

func (s *fakeStandings) Recompute(_ context.Context, contestID uint64) ([]model.StandingRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, contestID)
	return s.rows, s.err
}

func (s *fakeStandings) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type fakeCaster struct {
	mu     sync.Mutex
	events []string
	deltas []hub.SubmissionDelta
}

func (c *fakeCaster) PublishSubmission(_ uint64, delta hub.SubmissionDelta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, "submission")
	c.deltas = append(c.deltas, delta)
}

func (c *fakeCaster) PublishStandings(_ uint64, _ []model.StandingRow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, "standings")
}

func (c *fakeCaster) order() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.events...)
}

type fakeProducer struct {
	mu   sync.Mutex
	msgs []*sarama.ProducerMessage
}

func (p *fakeProducer) Produce(_ context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return 0, int64(len(p.msgs)), nil
}

func testTask() Task {
	return Task{
		SubmissionID:      11,
		ContestID:         42,
		UserID:            7,
		ProblemCode:       "A",
		SubmittedAt:       time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC),
		Handle:            "tourist",
		JudgeSubmissionID: 363219620,
	}
}

func waitIdle(t *testing.T, p *VerdictPoller) {
	t.Helper()
	require.Eventually(t, func() bool { return p.ActiveCount() == 0 }, 2*time.Second, time.Millisecond)
}

func TestPollUntilTerminal(t *testing.T) {
	fetcher := &fakeFetcher{steps: []verdictStep{
		{res: &judge.VerdictResult{Verdict: model.VerdictTesting, TestsPassed: 2}},
		{err: errors.New("connection reset")},
		{res: &judge.VerdictResult{Verdict: model.VerdictOK, TestsPassed: 40, TimeMs: 155, MemoryBytes: 2048000}},
	}}
	store := &fakeStore{}
	standings := &fakeStandings{rows: []model.StandingRow{{Rank: 1, UserID: 7}}}
	caster := &fakeCaster{}
	producer := &fakeProducer{}

	p := NewVerdictPoller(fetcher, store, standings, caster, producer, zap.NewNop(), time.Millisecond, 10)
	p.Launch(testTask())
	waitIdle(t, p)

	commits := store.all()
	require.Len(t, commits, 1)
	assert.Equal(t, commit{11, model.VerdictOK, 40, 155, 2048000}, commits[0])

	// IO 错误只消耗一次机会, 不提前终止
	assert.Equal(t, 3, fetcher.calls)

	assert.Equal(t, 1, standings.callCount())
	assert.Equal(t, []uint64{42}, standings.calls)

	// 提交增量先于榜单快照
	assert.Equal(t, []string{"submission", "standings"}, caster.order())
	require.Len(t, caster.deltas, 1)
	assert.Equal(t, model.VerdictOK, caster.deltas[0].Verdict)
	assert.Equal(t, "A", caster.deltas[0].ProblemCode)

	require.Len(t, producer.msgs, 1)
	raw, err := producer.msgs[0].Value.Encode()
	require.NoError(t, err)
	var msg event.VerdictMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, uint64(11), msg.SubmissionID)
	assert.Equal(t, model.VerdictOK, msg.Verdict)
}

func TestPollExhaustedMarksTimeout(t *testing.T) {
	fetcher := &fakeFetcher{steps: []verdictStep{
		{res: &judge.VerdictResult{Verdict: model.VerdictTesting}},
	}}
	store := &fakeStore{}
	standings := &fakeStandings{}
	caster := &fakeCaster{}

	p := NewVerdictPoller(fetcher, store, standings, caster, nil, zap.NewNop(), time.Millisecond, 3)
	p.Launch(testTask())
	waitIdle(t, p)

	commits := store.all()
	require.Len(t, commits, 1)
	assert.Equal(t, model.VerdictTimeout, commits[0].verdict)
	assert.Equal(t, 3, fetcher.calls)

	// 超时不触发榜单重算与推送
	assert.Equal(t, 0, standings.callCount())
	assert.Empty(t, caster.order())
}

func TestStandingsFailureKeepsVerdict(t *testing.T) {
	fetcher := &fakeFetcher{steps: []verdictStep{
		{res: &judge.VerdictResult{Verdict: model.VerdictWrongAnswer, TestsPassed: 5}},
	}}
	store := &fakeStore{}
	standings := &fakeStandings{err: errors.New("db gone")}
	caster := &fakeCaster{}

	p := NewVerdictPoller(fetcher, store, standings, caster, nil, zap.NewNop(), time.Millisecond, 3)
	p.Launch(testTask())
	waitIdle(t, p)

	commits := store.all()
	require.Len(t, commits, 1)
	assert.Equal(t, model.VerdictWrongAnswer, commits[0].verdict)
	assert.Empty(t, caster.order())
}

func TestConcurrentPollsTracked(t *testing.T) {
	fetcher := &fakeFetcher{steps: []verdictStep{
		{res: &judge.VerdictResult{Verdict: model.VerdictOK, TestsPassed: 1}},
	}}
	store := &fakeStore{}
	standings := &fakeStandings{}
	caster := &fakeCaster{}

	p := NewVerdictPoller(fetcher, store, standings, caster, nil, zap.NewNop(), 20*time.Millisecond, 5)

	taskA := testTask()
	taskB := testTask()
	taskB.SubmissionID = 12
	taskB.JudgeSubmissionID = 363219621

	p.Launch(taskA)
	p.Launch(taskB)
	assert.Equal(t, 2, p.ActiveCount())
	assert.Len(t, p.ActiveList(), 2)

	waitIdle(t, p)
	assert.Len(t, store.all(), 2)
}
