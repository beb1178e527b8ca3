package gintool

import (
	"net/http"

	"github.com/codearena/contest_relay/constants"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/web/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WrapHandler 包装处理函数: 依次绑定 URI/Header/Query/JSON, 再提取操作人
func WrapHandler[T any, PT interface {
	*T
	model.CommonParamInterface
}](h func(c *gin.Context, pType PT), log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param T
		p := PT(&param)
		if !bindParam(c, p, log) {
			return
		}

		if err := ExtractOperator(c, p); err != nil {
			log.Error("WrapHandler ExtractOperator failed", zap.Error(err))
			return
		}

		h(c, p)
	}
}

// WrapWithoutBodyHandler 包装处理函数, 不做任何绑定
func WrapWithoutBodyHandler[T any, PT interface {
	*T
	model.CommonParamInterface
}](h func(c *gin.Context, pType PT), log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param T
		p := PT(&param)

		if err := ExtractOperator(c, p); err != nil {
			log.Error("WrapWithoutBodyHandler ExtractOperator failed", zap.Error(err))
			return
		}

		h(c, p)
	}
}

// WrapContestHandler 包装比赛处理函数, 操作人与比赛 ID 取自 JWT claims
func WrapContestHandler[T any, PT interface {
	*T
	model.ContestCommonParamInterface
}](h func(c *gin.Context, pType PT), log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param T
		p := PT(&param)
		if !bindParam(c, p, log) {
			return
		}

		uc, ok := contestClaims(c, log)
		if !ok {
			return
		}

		p.SetOperator(uc.UserId)
		p.SetContestID(uc.ContestID)

		h(c, p)
	}
}

// WrapContestWithoutBodyHandler 包装比赛处理函数, 不绑定请求参数
func WrapContestWithoutBodyHandler[T any, PT interface {
	*T
	model.ContestCommonParamInterface
}](h func(c *gin.Context, pType PT), log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param T
		p := PT(&param)

		uc, ok := contestClaims(c, log)
		if !ok {
			return
		}

		p.SetOperator(uc.UserId)
		p.SetContestID(uc.ContestID)

		h(c, p)
	}
}

func bindParam(c *gin.Context, param any, log *zap.Logger) bool {
	// 1) URI
	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.Error("bindParam bind uri failed", zap.Error(err))
			return false
		}
	}

	// 2) Header
	if err := c.ShouldBindHeader(param); err != nil {
		GinResponse(c, &Response{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		log.Error("bindParam bind header failed", zap.Error(err))
		return false
	}

	// 3) Query/Form
	if c.Request.URL != nil && c.Request.URL.RawQuery != "" {
		if err := c.ShouldBindQuery(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.Error("bindParam bind query failed", zap.Error(err))
			return false
		}
	}

	// 4) JSON, GET 等无请求体时跳过
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.Error("bindParam bind json failed", zap.Error(err))
			return false
		}
	}
	return true
}

func contestClaims(c *gin.Context, log *zap.Logger) (jwt.ContestUserClaims, bool) {
	userClaims, exists := c.Get(constants.ContextUserClaimsKey)
	if !exists {
		GinResponse(c, &Response{
			Code:    http.StatusBadRequest,
			Message: "contest user claims not found",
		})
		log.Error("contest user claims not found")
		return jwt.ContestUserClaims{}, false
	}
	uc, ok := userClaims.(jwt.ContestUserClaims)
	if !ok {
		GinResponse(c, &Response{
			Code:    http.StatusBadRequest,
			Message: "contest user claims type assertion failed",
		})
		log.Error("contest user claims type assertion failed")
		return jwt.ContestUserClaims{}, false
	}
	return uc, true
}
