package service

import (
	"context"
	"fmt"

	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/poller"
	"gorm.io/gorm"
)

// VerdictStore 终态落库, 轮询侧与服务侧共用
type VerdictStore struct {
	db *gorm.DB
}

var _ poller.SubmissionStore = (*VerdictStore)(nil)

func NewVerdictStore(db *gorm.DB) *VerdictStore {
	return &VerdictStore{db: db}
}

// CommitVerdict 整行一次更新, 不存在部分可见的中间态
func (s *VerdictStore) CommitVerdict(ctx context.Context, submissionID uint64, verdict model.Verdict, testsPassed int, timeUsed, memoryUsed int64) error {
	err := s.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ?", submissionID).
		Updates(map[string]any{
			"verdict":      verdict,
			"tests_passed": testsPassed,
			"time_used":    timeUsed,
			"memory_used":  memoryUsed,
		}).Error
	if err != nil {
		return fmt.Errorf("CommitVerdict failed at update: %w", err)
	}
	return nil
}
