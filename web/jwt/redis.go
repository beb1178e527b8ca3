package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/codearena/contest_relay/constants"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ssidKey = "users:ssid:%s"

type RedisJWTHandler struct {
	client            redis.Cmdable
	signingMethod     jwt.SigningMethod
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
	jwtKey            []byte
	refreshKey        []byte
}

func NewRedisJWTHandler(client redis.Cmdable, jwtKey []byte, refreshKey []byte, jwtExpiration, refreshExpiration time.Duration) Handler {
	return &RedisJWTHandler{
		client:            client,
		signingMethod:     jwt.SigningMethodHS512,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
		jwtKey:            jwtKey,
		refreshKey:        refreshKey,
	}
}

var _ Handler = &RedisJWTHandler{}

func (h *RedisJWTHandler) CheckSession(ctx *gin.Context, ssid string) error {
	cnt, err := h.client.Exists(ctx, fmt.Sprintf(ssidKey, ssid)).Result()
	if err != nil {
		return err
	}
	if cnt > 0 {
		return errors.New("token invalid")
	}
	return nil
}

func (h *RedisJWTHandler) SetContestToken(ctx *gin.Context, contestId, userId uint64) error {
	ssid := uuid.New().String()
	if err := h.SetRefreshToken(ctx, contestId, userId, ssid); err != nil {
		return err
	}
	return h.SetJWTToken(ctx, contestId, userId, ssid)
}

func (h *RedisJWTHandler) ExtractToken(ctx *gin.Context) string {
	// 优先从 Header 提取 token
	authCode := ctx.GetHeader(constants.HeaderLoginTokenKey)
	if authCode != "" {
		segs := strings.Split(authCode, " ")
		if len(segs) == 2 && segs[0] == "Bearer" {
			return segs[1]
		}
	}

	// 如果 Header 中没有, 尝试从 Cookie 中提取
	tokenFromCookie, err := ctx.Cookie(constants.HeaderLoginTokenKey)
	if err != nil || tokenFromCookie == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return ""
	}

	return tokenFromCookie
}

func (h *RedisJWTHandler) SetJWTToken(ctx *gin.Context, contestId, userId uint64, ssid string) error {
	uc := ContestUserClaims{
		ContestID: contestId,
		UserId:    userId,
		Ssid:      ssid,
		UserAgent: ctx.GetHeader("User-Agent"),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.GatewayServiceName,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtExpiration)),
		},
	}
	token := jwt.NewWithClaims(h.signingMethod, uc)
	tokenStr, err := token.SignedString(h.jwtKey)
	if err != nil {
		return err
	}

	ctx.Header(constants.HeaderLoginTokenKey, tokenStr)

	// 同时设置 Cookie, 支持浏览器自动携带
	ctx.SetCookie(
		constants.HeaderLoginTokenKey,
		tokenStr,
		int(h.jwtExpiration.Seconds()),
		"/",
		"",
		false,
		true,
	)

	return nil
}

func (h *RedisJWTHandler) SetRefreshToken(ctx *gin.Context, contestId, userId uint64, ssid string) error {
	rc := RefreshContestUserClaims{
		ContestID: contestId,
		UserId:    userId,
		Ssid:      ssid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.GatewayServiceName,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.refreshExpiration)),
		},
	}
	token := jwt.NewWithClaims(h.signingMethod, rc)
	tokenStr, err := token.SignedString(h.refreshKey)
	if err != nil {
		return err
	}
	ctx.Header(constants.HeaderRefreshTokenKey, tokenStr)

	ctx.SetCookie(
		constants.HeaderRefreshTokenKey,
		tokenStr,
		int(h.refreshExpiration.Seconds()),
		"/",
		"",
		false,
		true,
	)
	return nil
}

func (h *RedisJWTHandler) JwtKey() []byte {
	return h.jwtKey
}

func (h *RedisJWTHandler) RefreshKey() []byte {
	return h.refreshKey
}

func (h *RedisJWTHandler) GetUserClaims(ctx *gin.Context) (*ContestUserClaims, error) {
	ucAny, exists := ctx.Get(constants.ContextUserClaimsKey)
	if !exists {
		return nil, fmt.Errorf("user claims not found in context")
	}
	uc, ok := ucAny.(ContestUserClaims)
	if !ok {
		return nil, fmt.Errorf("user claims type assertion error")
	}
	return &uc, nil
}
