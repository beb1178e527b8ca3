package ioc

import (
	"log"

	"github.com/codearena/contest_relay/config"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func InitLogger() *zap.Logger {
	var cfg config.LogConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal log config failed: %v", err)
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			log.Panicf("invalid log level %q: %v", cfg.Level, err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}

	logger, err := zapCfg.Build()
	if err != nil {
		log.Panicf("build logger failed: %v", err)
	}
	return logger
}
