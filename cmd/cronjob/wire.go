//go:build wireinject

package main

import (
	"github.com/codearena/contest_relay/cmd/cronjob/ioc"
	commonioc "github.com/codearena/contest_relay/ioc"
	"github.com/codearena/contest_relay/job"
	"github.com/codearena/contest_relay/poller"
	"github.com/codearena/contest_relay/service"
	"github.com/google/wire"
)

func InitScheduler() *job.CronScheduler {
	wire.Build(
		commonioc.InitDB,
		commonioc.InitLogger,
		commonioc.InitRedis,
		commonioc.InitJudgeClient,
		commonioc.InitSecretCodec,
		commonioc.InitContestHub,
		commonioc.InitVerdictPoller,
		ioc.InitNilKafka,

		service.NewGormCredentialStore,
		wire.Bind(new(service.CredentialStore), new(*service.GormCredentialStore)),
		service.NewCredentialService,
		service.NewVerdictStore,
		service.NewStandingsService,
		service.NewSubmissionService,
		wire.Bind(new(service.PollLauncher), new(*poller.VerdictPoller)),

		ioc.InitScheduler,
	)
	return &job.CronScheduler{}
}
