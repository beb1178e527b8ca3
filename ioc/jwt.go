package ioc

import (
	"log"
	"time"

	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/web/jwt"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func InitJWTHandler(rdb redis.Cmdable) jwt.Handler {
	var cfg config.JWTConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal jwt config failed: %v", err)
	}
	if cfg.JwtExpirationMinutes <= 0 {
		cfg.JwtExpirationMinutes = 360
	}
	if cfg.RefreshExpirationHours <= 0 {
		cfg.RefreshExpirationHours = 168
	}

	return jwt.NewRedisJWTHandler(rdb,
		[]byte(cfg.JwtKey),
		[]byte(cfg.RefreshKey),
		time.Duration(cfg.JwtExpirationMinutes)*time.Minute,
		time.Duration(cfg.RefreshExpirationHours)*time.Hour)
}
