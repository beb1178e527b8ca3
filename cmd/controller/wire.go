//go:build wireinject

package main

import (
	"github.com/codearena/contest_relay/cmd/controller/ioc"
	commonioc "github.com/codearena/contest_relay/ioc"
	"github.com/codearena/contest_relay/poller"
	"github.com/codearena/contest_relay/service"
	"github.com/codearena/contest_relay/web"
	"github.com/google/wire"
)

func BuildDependency() *web.GinServer {
	wire.Build(
		commonioc.InitDB,
		commonioc.InitLogger,
		commonioc.InitRedis,
		commonioc.InitKafka,
		commonioc.InitJWTHandler,
		commonioc.InitJudgeClient,
		commonioc.InitSecretCodec,
		commonioc.InitContestHub,
		commonioc.InitVerdictPoller,
		commonioc.InitAdminUserIDs,

		service.NewGormCredentialStore,
		wire.Bind(new(service.CredentialStore), new(*service.GormCredentialStore)),
		service.NewCredentialService,
		service.NewVerdictStore,
		service.NewStandingsService,
		service.NewContestService,
		service.NewSubmissionService,
		wire.Bind(new(service.PollLauncher), new(*poller.VerdictPoller)),

		web.NewContestHandler,
		web.NewSubmissionHandler,
		web.NewStandingsHandler,
		web.NewAdminHandler,
		web.NewEventsHandler,
		web.NewHealthHandler,

		ioc.InitGinServer,
	)
	return &web.GinServer{}
}
