package ioc

import (
	"log"
	"time"

	"github.com/codearena/contest_relay/cmd/cronjob/config"
	"github.com/codearena/contest_relay/job"
	"github.com/codearena/contest_relay/job/reconciler"
	"github.com/codearena/contest_relay/service"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func InitSubmissionReconciler(submissionSvc service.SubmissionService, l *zap.Logger) *job.JobConfig {
	var cfg config.SubmissionReconcilerConfig
	err := viper.UnmarshalKey(cfg.Key(), &cfg)
	if err != nil {
		log.Panicf("unmarshal submission reconciler config fail, err: %v", err)
	}

	r := reconciler.NewSubmissionReconciler(submissionSvc, l, time.Duration(cfg.StaleAfterMinutes)*time.Minute)
	jbCfg := &job.JobConfig{
		Name:        "滞留提交补偿",
		CronExpr:    cfg.CronExpr,
		JobFunc:     r.RunReconcile,
		Description: "对滞留在非终态的提交重新发起判题轮询",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
	return jbCfg
}
