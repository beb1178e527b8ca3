package ioc

import (
	"log"

	"github.com/IBM/sarama"
	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/event"
	"github.com/spf13/viper"
)

func InitKafka() event.Producer {
	var cfg config.KafkaConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal kafka config failed: %v", err)
	}

	scfg := sarama.NewConfig()
	scfg.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(cfg.Addrs, scfg)
	if err != nil {
		log.Panicf("create kafka sync producer failed: %v", err)
	}
	return event.NewSaramaProducer(producer)
}
