package ioc

import (
	"log"

	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/pkg/secret"
	"github.com/spf13/viper"
)

func InitSecretCodec() *secret.Codec {
	var cfg config.SecretConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal secret config failed: %v", err)
	}

	codec, err := secret.NewCodec(cfg.HexKey)
	if err != nil {
		log.Panicf("create secret codec failed: %v", err)
	}
	return codec
}
