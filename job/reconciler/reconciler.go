package reconciler

import (
	"context"
	"time"

	"github.com/codearena/contest_relay/service"
	"go.uber.org/zap"
)

// SubmissionReconciler 进程重启会丢弃在途轮询, 周期性对滞留在
// PENDING/TESTING 的提交重新发起轮询
type SubmissionReconciler struct {
	submissionSvc service.SubmissionService
	log           *zap.Logger
	staleAfter    time.Duration
}

func NewSubmissionReconciler(submissionSvc service.SubmissionService, log *zap.Logger, staleAfter time.Duration) *SubmissionReconciler {
	return &SubmissionReconciler{
		submissionSvc: submissionSvc,
		log:           log,
		staleAfter:    staleAfter,
	}
}

// RunReconcile 运行一轮补偿
func (r *SubmissionReconciler) RunReconcile(ctx context.Context) error {
	r.log.Info("Starting submission reconcile job")

	relaunched, err := r.submissionSvc.ReconcileStale(ctx, r.staleAfter)
	if err != nil {
		return err
	}

	r.log.Info("Submission reconcile completed", zap.Int("relaunched", relaunched))
	return nil
}
