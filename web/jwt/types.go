package jwt

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Handler interface {
	ExtractToken(ctx *gin.Context) string
	SetContestToken(ctx *gin.Context, contestId, userId uint64) error
	SetJWTToken(ctx *gin.Context, contestId, userId uint64, ssid string) error
	CheckSession(ctx *gin.Context, ssid string) error

	JwtKey() []byte
	GetUserClaims(ctx *gin.Context) (*ContestUserClaims, error)
}

type ContestUserClaims struct {
	jwt.RegisteredClaims
	UserId    uint64
	ContestID uint64
	Ssid      string
	UserAgent string
}

type RefreshContestUserClaims struct {
	jwt.RegisteredClaims
	UserId    uint64
	ContestID uint64
	Ssid      string
}
