package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/codearena/contest_relay/constants"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/gintool"
	"github.com/codearena/contest_relay/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StandingsHandler struct {
	standingsSvc service.StandingsService
	log          *zap.Logger
}

var _ Handler = (*StandingsHandler)(nil)

func NewStandingsHandler(standingsSvc service.StandingsService, log *zap.Logger) *StandingsHandler {
	return &StandingsHandler{
		standingsSvc: standingsSvc,
		log:          log,
	}
}

func (h *StandingsHandler) Register(r *gin.Engine) {
	r.GET(constants.GetStandingsPath, gintool.WrapContestWithoutBodyHandler(h.GetStandings, h.log))
	r.GET(constants.ExportStandingsPath, gintool.WrapHandler(h.ExportStandings, h.log))
}

func (h *StandingsHandler) GetStandings(c *gin.Context, param *model.GetStandingsParam) {
	start := time.Now()
	ctx := c.Request.Context()

	resp, err := h.standingsSvc.GetStandings(ctx, param)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrContestNotFound) {
			code = http.StatusNotFound
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("GetStandings failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Error(err))
		observeGetStandings(code, start)
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
	observeGetStandings(http.StatusOK, start)
}

// ExportStandings 流式导出, 直接写响应体
func (h *StandingsHandler) ExportStandings(c *gin.Context, param *model.ExportStandingsParam) {
	ctx := c.Request.Context()

	filename := fmt.Sprintf("standings-%d.%s", param.ContestID, param.Format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/octet-stream")

	if err := h.standingsSvc.Export(ctx, param, c.Writer); err != nil {
		h.log.Error("ExportStandings failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.String("format", param.Format),
			zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
}
