package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/codearena/contest_relay/constants"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/gintool"
	"github.com/codearena/contest_relay/service"
	"github.com/codearena/contest_relay/web/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContestHandler struct {
	contestSvc service.ContestService
	jwtHandler jwt.Handler
	log        *zap.Logger
}

var _ Handler = (*ContestHandler)(nil)

func NewContestHandler(contestSvc service.ContestService, jwtHandler jwt.Handler, log *zap.Logger) *ContestHandler {
	return &ContestHandler{
		contestSvc: contestSvc,
		jwtHandler: jwtHandler,
		log:        log,
	}
}

func (h *ContestHandler) Register(r *gin.Engine) {
	r.POST(constants.EnterContestPath, gintool.WrapHandler(h.EnterContest, h.log))
	r.GET(constants.GetContestPath, gintool.WrapHandler(h.GetContest, h.log))
}

// EnterContest 已报名用户换取比赛会话 token, 后续房间操作凭该 token 进行
func (h *ContestHandler) EnterContest(c *gin.Context, param *model.EnterContestParam) {
	ctx := c.Request.Context()

	_, err := h.contestSvc.GetContest(ctx, param.ContestID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrContestNotFound) {
			code = http.StatusNotFound
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("EnterContest failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Error(err))
		return
	}

	if err = h.contestSvc.CheckParticipant(ctx, param.ContestID, param.Operator); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrNotParticipant) {
			code = http.StatusForbidden
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("EnterContest failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Uint64("user_id", param.Operator),
			zap.Error(err))
		return
	}

	if err = h.jwtHandler.SetContestToken(c, param.ContestID, param.Operator); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		h.log.Error("EnterContest set token failed", zap.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ContestHandler) GetContest(c *gin.Context, param *model.GetContestParam) {
	ctx := c.Request.Context()

	contest, err := h.contestSvc.GetContest(ctx, param.ContestID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrContestNotFound) {
			code = http.StatusNotFound
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("GetContest failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.GetContestResponse{
			Contest: contest,
			Status:  contest.StatusAt(time.Now()),
		},
	})
}
