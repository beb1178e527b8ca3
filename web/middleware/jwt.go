package middleware

import (
	"net/http"
	"strings"

	"github.com/codearena/contest_relay/constants"
	cjwt "github.com/codearena/contest_relay/web/jwt"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type JWTMiddlewareBuilder struct {
	cjwt.Handler
	db               *gorm.DB
	log              *zap.Logger
	checkContestPath []string
}

func NewJWTMiddlewareBuilder(handler cjwt.Handler, db *gorm.DB, log *zap.Logger, checkContestPath []string) *JWTMiddlewareBuilder {
	return &JWTMiddlewareBuilder{
		Handler:          handler,
		db:               db,
		log:              log,
		checkContestPath: checkContestPath,
	}
}

// CheckContest 校验比赛会话 token
func (m *JWTMiddlewareBuilder) CheckContest() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		flag := false
		for _, p := range m.checkContestPath {
			if strings.HasPrefix(path, p) {
				flag = true
				break
			}
		}
		if !flag {
			ctx.Next()
			return
		}

		var uc cjwt.ContestUserClaims
		token, err := jwt.ParseWithClaims(m.ExtractToken(ctx), &uc, func(t *jwt.Token) (any, error) {
			return m.JwtKey(), nil
		})
		if err != nil || token == nil || !token.Valid {
			m.log.Error("CheckContest failed",
				zap.Error(err),
				zap.Bool("token==nil", token == nil),
			)
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err = m.CheckSession(ctx, uc.Ssid); err != nil {
			m.log.Error("CheckContest failed", zap.Error(err))
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set(constants.ContextUserClaimsKey, uc)
		ctx.Next()
	}
}
