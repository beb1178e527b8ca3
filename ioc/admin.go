package ioc

import (
	"log"

	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/web"
	"github.com/spf13/viper"
)

func InitAdminUserIDs() web.AdminUserIDs {
	var cfg config.AdminConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal admin config failed: %v", err)
	}
	return web.AdminUserIDs(cfg.UserIDs)
}
