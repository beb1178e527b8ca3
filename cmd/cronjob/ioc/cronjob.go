package ioc

import (
	"github.com/codearena/contest_relay/job"
	"github.com/codearena/contest_relay/service"
	"go.uber.org/zap"
)

func InitScheduler(l *zap.Logger, submissionSvc service.SubmissionService) *job.CronScheduler {
	scheduler := job.NewCronScheduler(l)

	scheduler.AddJob(InitSubmissionReconciler(submissionSvc, l))

	return scheduler
}
