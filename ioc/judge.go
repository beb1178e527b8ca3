package ioc

import (
	"log"
	"time"

	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/spf13/viper"
)

func InitJudgeClient() judge.Client {
	var cfg config.JudgeConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal judge config failed: %v", err)
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	return judge.NewHTTPClient(cfg.BaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
}
