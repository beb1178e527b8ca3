package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/codearena/contest_relay/event"
	"github.com/codearena/contest_relay/hub"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/judge"
	"go.uber.org/zap"
)

const (
	DefaultInterval    = 5 * time.Second
	DefaultMaxAttempts = 60 // 60 x 5s, 最长等待 5 分钟
)

// VerdictFetcher 轮询所需的最小评测查询能力
type VerdictFetcher interface {
	Verdict(ctx context.Context, handle string, judgeSubmissionID int64) (*judge.VerdictResult, error)
}

// SubmissionStore 终态一次性落库
type SubmissionStore interface {
	CommitVerdict(ctx context.Context, submissionID uint64, verdict model.Verdict, testsPassed int, timeUsed, memoryUsed int64) error
}

// StandingsUpdater 终判后触发整榜重算
type StandingsUpdater interface {
	Recompute(ctx context.Context, contestID uint64) ([]model.StandingRow, error)
}

// Broadcaster 房间内事件推送
type Broadcaster interface {
	PublishSubmission(contestID uint64, delta hub.SubmissionDelta)
	PublishStandings(contestID uint64, rows []model.StandingRow)
}

// Task 一次轮询任务, 提交被远程评测接收后立即发起
type Task struct {
	SubmissionID      uint64
	ContestID         uint64
	UserID            uint64
	ProblemCode       string
	SubmittedAt       time.Time
	Handle            string
	JudgeSubmissionID int64
}

func (t Task) key() string {
	return fmt.Sprintf("%s:%d", t.Handle, t.JudgeSubmissionID)
}

// PollStatus 在途轮询的可观测状态
type PollStatus struct {
	Key          string    `json:"key"`
	SubmissionID uint64    `json:"submission_id"`
	StartedAt    time.Time `json:"started_at"`
	Attempts     int       `json:"attempts"`
}

// VerdictPoller 每个提交一个后台轮询任务, 互不阻塞
// active 仅用于观测, 不做互斥: 重判会对同一提交再起一轮轮询,
// 两轮的终态写入允许相互覆盖(以最后写入为准)
type VerdictPoller struct {
	fetcher   VerdictFetcher
	store     SubmissionStore
	standings StandingsUpdater
	caster    Broadcaster
	producer  event.Producer
	log       *zap.Logger

	interval    time.Duration
	maxAttempts int

	mu     sync.RWMutex
	active map[string]*PollStatus
}

func NewVerdictPoller(fetcher VerdictFetcher, store SubmissionStore, standings StandingsUpdater, caster Broadcaster, producer event.Producer, log *zap.Logger, interval time.Duration, maxAttempts int) *VerdictPoller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &VerdictPoller{
		fetcher:     fetcher,
		store:       store,
		standings:   standings,
		caster:      caster,
		producer:    producer,
		log:         log,
		interval:    interval,
		maxAttempts: maxAttempts,
		active:      make(map[string]*PollStatus),
	}
}

// Launch 发起后台轮询, 不返回句柄, 调用方不等待
// 进程重启会丢弃在途任务, 由 reconciler 周期兜底
func (p *VerdictPoller) Launch(task Task) {
	key := task.key()
	p.mu.Lock()
	p.active[key] = &PollStatus{
		Key:          key,
		SubmissionID: task.SubmissionID,
		StartedAt:    time.Now(),
	}
	p.mu.Unlock()

	go p.run(task)
}

// ActiveCount 在途轮询数
func (p *VerdictPoller) ActiveCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.active)
}

// ActiveList 在途轮询快照
func (p *VerdictPoller) ActiveList() []PollStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	list := make([]PollStatus, 0, len(p.active))
	for _, st := range p.active {
		list = append(list, *st)
	}
	return list
}

func (p *VerdictPoller) run(task Task) {
	ctx := context.Background()
	key := task.key()
	defer p.unregister(key)

	for i := 1; i <= p.maxAttempts; i++ {
		time.Sleep(p.interval)

		p.mu.Lock()
		if st, exists := p.active[key]; exists {
			st.Attempts = i
		}
		p.mu.Unlock()

		res, err := p.fetcher.Verdict(ctx, task.Handle, task.JudgeSubmissionID)
		if err != nil {
			// 单次查询失败按"仍在评测"处理, 消耗一次机会但不中断
			p.log.Error("verdict poll attempt failed",
				zap.Int64("judge_submission_id", task.JudgeSubmissionID),
				zap.Int("attempt", i),
				zap.Error(err))
			continue
		}

		p.log.Info("verdict poll attempt",
			zap.Int64("judge_submission_id", task.JudgeSubmissionID),
			zap.Int("attempt", i),
			zap.String("verdict", string(res.Verdict)))

		if res.Terminal() {
			p.finish(ctx, task, res)
			return
		}
	}

	// 次数耗尽, VERDICT_TIMEOUT 与其他终态同级, 不触发榜单重算
	if err := p.store.CommitVerdict(ctx, task.SubmissionID, model.VerdictTimeout, 0, 0, 0); err != nil {
		p.log.Error("commit verdict timeout failed",
			zap.Uint64("submission_id", task.SubmissionID),
			zap.Error(err))
		return
	}
	p.log.Warn("verdict poll exhausted",
		zap.Int64("judge_submission_id", task.JudgeSubmissionID),
		zap.Int("max_attempts", p.maxAttempts))
	p.emit(ctx, task, model.VerdictTimeout, 0, 0, 0)
}

// finish 终态提交: 一次性落库 -> 重算榜单 -> 房间推送 -> 发布事件
func (p *VerdictPoller) finish(ctx context.Context, task Task, res *judge.VerdictResult) {
	err := p.store.CommitVerdict(ctx, task.SubmissionID, res.Verdict, res.TestsPassed, res.TimeMs, res.MemoryBytes)
	if err != nil {
		p.log.Error("commit verdict failed",
			zap.Uint64("submission_id", task.SubmissionID),
			zap.String("verdict", string(res.Verdict)),
			zap.Error(err))
		return
	}

	p.log.Info("final verdict committed",
		zap.Uint64("submission_id", task.SubmissionID),
		zap.Int64("judge_submission_id", task.JudgeSubmissionID),
		zap.String("verdict", string(res.Verdict)))

	// 榜单失败不回滚已提交的终态, 榜单保持陈旧直到下次成功重算
	rows, err := p.standings.Recompute(ctx, task.ContestID)
	if err != nil {
		p.log.Error("standings recompute failed",
			zap.Uint64("contest_id", task.ContestID),
			zap.Error(err))
	} else {
		p.caster.PublishSubmission(task.ContestID, hub.SubmissionDelta{
			SubmissionID: task.SubmissionID,
			ContestID:    task.ContestID,
			UserID:       task.UserID,
			ProblemCode:  task.ProblemCode,
			Verdict:      res.Verdict,
			TestsPassed:  res.TestsPassed,
			TimeUsed:     res.TimeMs,
			MemoryUsed:   res.MemoryBytes,
			SubmittedAt:  task.SubmittedAt,
		})
		p.caster.PublishStandings(task.ContestID, rows)
	}

	p.emit(ctx, task, res.Verdict, res.TestsPassed, res.TimeMs, res.MemoryBytes)
}

// emit 发布终判消息到 kafka, 失败仅记录
func (p *VerdictPoller) emit(ctx context.Context, task Task, verdict model.Verdict, testsPassed int, timeUsed, memoryUsed int64) {
	if p.producer == nil {
		return
	}
	msg := event.VerdictMessage{
		SubmissionID:      task.SubmissionID,
		ContestID:         task.ContestID,
		UserID:            task.UserID,
		ProblemCode:       task.ProblemCode,
		JudgeSubmissionID: task.JudgeSubmissionID,
		Verdict:           verdict,
		TestsPassed:       testsPassed,
		TimeUsed:          timeUsed,
		MemoryUsed:        memoryUsed,
		JudgedAt:          time.Now(),
	}
	val, err := msg.Marshal()
	if err != nil {
		p.log.Error("marshal verdict message failed", zap.Error(err))
		return
	}
	_, _, err = p.producer.Produce(ctx, &sarama.ProducerMessage{
		Topic: event.VerdictTopic,
		Value: sarama.ByteEncoder(val),
	})
	if err != nil {
		p.log.Error("produce verdict message failed",
			zap.Uint64("submission_id", task.SubmissionID),
			zap.Error(err))
	}
}

func (p *VerdictPoller) unregister(key string) {
	p.mu.Lock()
	delete(p.active, key)
	p.mu.Unlock()
}
