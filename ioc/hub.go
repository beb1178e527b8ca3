package ioc

import (
	"log"

	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/hub"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func InitContestHub(l *zap.Logger) *hub.ContestHub {
	var cfg config.HubConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal hub config failed: %v", err)
	}
	return hub.NewContestHub(l, cfg.Buffer)
}
