package hub

import (
	"sync"
	"time"

	"github.com/codearena/contest_relay/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindSubmissionUpdate Kind = "submission-update"
	KindStandingsUpdate  Kind = "standings-update"
)

// SubmissionDelta 提交状态变更事件, 刻意不携带源代码
type SubmissionDelta struct {
	SubmissionID uint64        `json:"submission_id"`
	ContestID    uint64        `json:"contest_id"`
	UserID       uint64        `json:"user_id"`
	ProblemCode  string        `json:"problem_code"`
	Verdict      model.Verdict `json:"verdict"`
	TestsPassed  int           `json:"tests_passed"`
	TimeUsed     int64         `json:"time_used"`
	MemoryUsed   int64         `json:"memory_used"`
	SubmittedAt  time.Time     `json:"submitted_at"`
}

type Event struct {
	Kind      Kind   `json:"kind"`
	ContestID uint64 `json:"contest_id"`
	Payload   any    `json:"payload"`
}

// ContestHub 以比赛为房间的进程内广播器
// 投递为 best-effort、至多一次: 订阅者缓冲满即丢弃, 无回放, 迟到客户端自行拉取当前状态
type ContestHub struct {
	mu     sync.RWMutex
	rooms  map[uint64]map[string]chan Event
	buffer int
	log    *zap.Logger
}

func NewContestHub(log *zap.Logger, buffer int) *ContestHub {
	if buffer <= 0 {
		buffer = 16
	}
	return &ContestHub{
		rooms:  make(map[uint64]map[string]chan Event),
		buffer: buffer,
		log:    log,
	}
}

// Join 订阅一个比赛房间, 返回订阅者 ID 与事件通道
func (h *ContestHub) Join(contestID uint64) (string, <-chan Event) {
	id := uuid.New().String()
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	room, exists := h.rooms[contestID]
	if !exists {
		room = make(map[string]chan Event)
		h.rooms[contestID] = room
	}
	room[id] = ch
	h.mu.Unlock()

	h.log.Info("subscriber joined contest room",
		zap.Uint64("contest_id", contestID),
		zap.String("subscriber_id", id))
	return id, ch
}

// Leave 退订并关闭事件通道, 空房间随之回收
func (h *ContestHub) Leave(contestID uint64, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, exists := h.rooms[contestID]
	if !exists {
		return
	}
	ch, exists := room[id]
	if !exists {
		return
	}
	delete(room, id)
	close(ch)
	if len(room) == 0 {
		delete(h.rooms, contestID)
	}
}

func (h *ContestHub) PublishSubmission(contestID uint64, delta SubmissionDelta) {
	h.publish(Event{Kind: KindSubmissionUpdate, ContestID: contestID, Payload: delta})
}

func (h *ContestHub) PublishStandings(contestID uint64, rows []model.StandingRow) {
	h.publish(Event{Kind: KindStandingsUpdate, ContestID: contestID, Payload: rows})
}

// RoomSize 当前房间订阅数
func (h *ContestHub) RoomSize(contestID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[contestID])
}

func (h *ContestHub) publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.rooms[ev.ContestID] {
		select {
		case ch <- ev:
		default:
			// 订阅者消费过慢, 丢弃本条
			h.log.Warn("contest event dropped for slow subscriber",
				zap.Uint64("contest_id", ev.ContestID),
				zap.String("subscriber_id", id),
				zap.String("kind", string(ev.Kind)))
		}
	}
}
