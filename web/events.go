package web

import (
	"io"

	json "github.com/bytedance/sonic"
	"github.com/codearena/contest_relay/constants"
	"github.com/codearena/contest_relay/hub"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/gintool"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventsHandler SSE 事件流, 每个连接订阅一个比赛房间
type EventsHandler struct {
	hub *hub.ContestHub
	log *zap.Logger
}

var _ Handler = (*EventsHandler)(nil)

func NewEventsHandler(h *hub.ContestHub, log *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub: h,
		log: log,
	}
}

func (h *EventsHandler) Register(r *gin.Engine) {
	r.GET(constants.JoinContestEventsPath, gintool.WrapContestWithoutBodyHandler(h.JoinContestEvents, h.log))
}

// JoinContestEvents 断线不重放, 客户端重连后自行拉取当前榜单
func (h *EventsHandler) JoinContestEvents(c *gin.Context, param *model.ContestCommonParam) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	id, ch := h.hub.Join(param.ContestID)
	defer h.hub.Leave(param.ContestID, id)

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.log.Error("marshal contest event failed",
					zap.Uint64("contest_id", param.ContestID),
					zap.Error(err))
				return true
			}
			c.SSEvent(string(ev.Kind), string(data))
			return true
		}
	})
}
