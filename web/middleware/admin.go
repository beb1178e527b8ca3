package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/codearena/contest_relay/constants"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminMiddlewareBuilder 管理端接口白名单校验
type AdminMiddlewareBuilder struct {
	adminIDs map[uint64]struct{}
	log      *zap.Logger
}

func NewAdminMiddlewareBuilder(adminIDs []uint64, log *zap.Logger) *AdminMiddlewareBuilder {
	ids := make(map[uint64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return &AdminMiddlewareBuilder{
		adminIDs: ids,
		log:      log,
	}
}

// CheckAdmin 仅拦截 /admin 前缀路径, 操作人不在白名单内直接 403
func (m *AdminMiddlewareBuilder) CheckAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !strings.HasPrefix(ctx.Request.URL.Path, "/admin") {
			ctx.Next()
			return
		}

		operator, err := strconv.ParseUint(ctx.GetHeader(constants.HeaderUserIDKey), 10, 64)
		if err != nil {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if _, ok := m.adminIDs[operator]; !ok {
			m.log.Warn("non-admin access to admin path rejected",
				zap.Uint64("operator", operator),
				zap.String("path", ctx.Request.URL.Path))
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Next()
	}
}
