package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/codearena/contest_relay/constants"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/gintool"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/codearena/contest_relay/poller"
	"github.com/codearena/contest_relay/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler 管理端接口: 凭证绑定、重判、在途轮询观测、提交记录导出
type AdminHandler struct {
	credentialSvc service.CredentialService
	submissionSvc service.SubmissionService
	poller        *poller.VerdictPoller
	log           *zap.Logger
}

var _ Handler = (*AdminHandler)(nil)

func NewAdminHandler(credentialSvc service.CredentialService, submissionSvc service.SubmissionService, p *poller.VerdictPoller, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		credentialSvc: credentialSvc,
		submissionSvc: submissionSvc,
		poller:        p,
		log:           log,
	}
}

func (h *AdminHandler) Register(r *gin.Engine) {
	r.POST(constants.LinkCredentialPath, gintool.WrapHandler(h.LinkCredential, h.log))
	r.DELETE(constants.UnlinkCredentialPath, gintool.WrapWithoutBodyHandler(h.UnlinkCredential, h.log))
	r.GET(constants.GetCredentialStatusPath, gintool.WrapWithoutBodyHandler(h.GetCredentialStatus, h.log))
	r.POST(constants.RejudgeSubmissionPath, gintool.WrapHandler(h.RejudgeSubmission, h.log))
	r.GET(constants.GetActivePollListPath, gintool.WrapWithoutBodyHandler(h.GetActivePollList, h.log))
	r.GET(constants.ExportSubmissionLogPath, gintool.WrapHandler(h.ExportSubmissionLog, h.log))
}

func (h *AdminHandler) LinkCredential(c *gin.Context, param *model.LinkCredentialParam) {
	ctx := c.Request.Context()

	resp, err := h.credentialSvc.Link(ctx, param)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, judge.ErrInvalidCookies):
			code = http.StatusUnprocessableEntity
		case errors.Is(err, judge.ErrJudgeUnavailable):
			code = http.StatusBadGateway
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("LinkCredential failed", zap.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
}

func (h *AdminHandler) UnlinkCredential(c *gin.Context, param *model.CommonParam) {
	ctx := c.Request.Context()

	if err := h.credentialSvc.Unlink(ctx); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		h.log.Error("UnlinkCredential failed", zap.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *AdminHandler) GetCredentialStatus(c *gin.Context, param *model.CommonParam) {
	ctx := c.Request.Context()

	resp, err := h.credentialSvc.Status(ctx)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		h.log.Error("GetCredentialStatus failed", zap.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
}

func (h *AdminHandler) RejudgeSubmission(c *gin.Context, param *model.RejudgeParam) {
	ctx := c.Request.Context()

	resp, err := h.submissionSvc.Rejudge(ctx, param)
	if err != nil {
		code, reason := http.StatusInternalServerError, "internal"
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			code, reason = http.StatusNotFound, "submission_not_found"
		case errors.Is(err, service.ErrNoJudgeReference):
			code, reason = http.StatusConflict, "no_judge_reference"
		case errors.Is(err, service.ErrNoActiveIdentity):
			code, reason = http.StatusServiceUnavailable, "no_active_identity"
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: err.Error(),
		})
		h.log.Error("RejudgeSubmission failed",
			zap.Uint64("submission_id", param.SubmissionID),
			zap.Error(err))
		observeRejudgeSubmission(code, reason)
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    resp,
	})
	observeRejudgeSubmission(http.StatusOK, "success")
}

func (h *AdminHandler) GetActivePollList(c *gin.Context, param *model.CommonParam) {
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    h.poller.ActiveList(),
	})
}

// ExportSubmissionLog 导出比赛提交记录, 用于赛后仲裁
func (h *AdminHandler) ExportSubmissionLog(c *gin.Context, param *model.ExportSubmissionLogParam) {
	ctx := c.Request.Context()

	filename := fmt.Sprintf("submissions-%d.csv", param.ContestID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")

	if err := h.submissionSvc.ExportLog(ctx, param.ContestID, c.Writer); err != nil {
		h.log.Error("ExportSubmissionLog failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
}
