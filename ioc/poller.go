package ioc

import (
	"log"
	"time"

	"github.com/codearena/contest_relay/config"
	"github.com/codearena/contest_relay/event"
	"github.com/codearena/contest_relay/hub"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/codearena/contest_relay/poller"
	"github.com/codearena/contest_relay/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func InitVerdictPoller(client judge.Client, store *service.VerdictStore, standingsSvc service.StandingsService, contestHub *hub.ContestHub, producer event.Producer, l *zap.Logger) *poller.VerdictPoller {
	var cfg config.PollerConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal poller config failed: %v", err)
	}

	p := poller.NewVerdictPoller(client, store, standingsSvc, contestHub, producer, l,
		time.Duration(cfg.IntervalSeconds)*time.Second,
		cfg.MaxAttempts)

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "contest_relay",
			Subsystem: "poller",
			Name:      "active_polls",
			Help:      "Number of in-flight verdict polls.",
		},
		func() float64 { return float64(p.ActiveCount()) },
	))

	return p
}
