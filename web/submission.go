package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/codearena/contest_relay/constants"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/gintool"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/codearena/contest_relay/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubmissionHandler struct {
	submissionSvc service.SubmissionService
	adminIDs      map[uint64]struct{}
	log           *zap.Logger
}

var _ Handler = (*SubmissionHandler)(nil)

func NewSubmissionHandler(submissionSvc service.SubmissionService, adminIDs AdminUserIDs, log *zap.Logger) *SubmissionHandler {
	ids := make(map[uint64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return &SubmissionHandler{
		submissionSvc: submissionSvc,
		adminIDs:      ids,
		log:           log,
	}
}

func (h *SubmissionHandler) Register(r *gin.Engine) {
	r.POST(constants.CreateSubmissionPath, gintool.WrapContestHandler(h.CreateSubmission, h.log))
	r.GET(constants.GetSubmissionListPath, gintool.WrapContestHandler(h.GetSubmissionList, h.log))
	r.GET(constants.GetLatestSubmissionPath, gintool.WrapContestHandler(h.GetLatestSubmission, h.log))
	r.GET(constants.GetSubmissionPath, gintool.WrapHandler(h.GetSubmission, h.log))
}

func (h *SubmissionHandler) CreateSubmission(c *gin.Context, param *model.CreateSubmissionParam) {
	start := time.Now()
	ctx := c.Request.Context()

	resp, err := h.submissionSvc.CreateSubmission(ctx, param)
	if err != nil {
		code, reason := http.StatusInternalServerError, "internal"
		switch {
		case errors.Is(err, service.ErrContestNotFound):
			code, reason = http.StatusNotFound, "contest_not_found"
		case errors.Is(err, service.ErrContestNotRunning):
			code, reason = http.StatusForbidden, "contest_not_running"
		case errors.Is(err, service.ErrNotParticipant):
			code, reason = http.StatusForbidden, "not_participant"
		case errors.Is(err, service.ErrProblemNotInContest):
			code, reason = http.StatusBadRequest, "problem_not_in_contest"
		case errors.Is(err, service.ErrNoActiveIdentity):
			code, reason = http.StatusServiceUnavailable, "no_active_identity"
		case errors.Is(err, judge.ErrStaleIdentity):
			code, reason = http.StatusServiceUnavailable, "stale_identity"
		case errors.Is(err, judge.ErrJudgeUnavailable):
			code, reason = http.StatusBadGateway, "judge_unavailable"
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("CreateSubmission failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.String("problem_code", param.ProblemCode),
			zap.Error(err))
		observeCreateSubmission(code, reason, param.Language, start)
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
	observeCreateSubmission(http.StatusOK, "success", param.Language, start)
}

func (h *SubmissionHandler) GetSubmissionList(c *gin.Context, param *model.GetSubmissionListParam) {
	ctx := c.Request.Context()

	resp, err := h.submissionSvc.GetSubmissionList(ctx, param)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		h.log.Error("GetSubmissionList failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
}

func (h *SubmissionHandler) GetLatestSubmission(c *gin.Context, param *model.GetLatestSubmissionParam) {
	ctx := c.Request.Context()

	resp, err := h.submissionSvc.GetLatestSubmission(ctx, param)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrSubmissionNotFound) {
			code = http.StatusNotFound
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("GetLatestSubmission failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Uint64("user_id", param.Operator),
			zap.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
}

// GetSubmission 单条提交详情, 含源代码, 仅本人或管理员可读
func (h *SubmissionHandler) GetSubmission(c *gin.Context, param *model.GetSubmissionParam) {
	ctx := c.Request.Context()

	sub, err := h.submissionSvc.GetSubmissionByID(ctx, param)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrSubmissionNotFound) {
			code = http.StatusNotFound
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("GetSubmission failed",
			zap.Uint64("submission_id", param.SubmissionID),
			zap.Error(err))
		return
	}

	if sub.UserID != param.Operator {
		if _, ok := h.adminIDs[param.Operator]; !ok {
			gintool.GinResponse(c, &gintool.Response{
				Code:    http.StatusForbidden,
				Message: "submission belongs to another user",
			})
			return
		}
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    sub,
	})
}
