package common

import (
	"context"
	"fmt"

	"github.com/codearena/contest_relay/model"
	"gorm.io/gorm"
)

// FetchSubmissionLog 按提交时间分页读取提交记录, 不含源代码
func FetchSubmissionLog(db *gorm.DB, ctx context.Context, contestID uint64, page, limit int) ([]model.SubmissionSummary, error) {
	var subs []model.SubmissionSummary
	if err := db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("contest_id = ?", contestID).
		Order("submitted_at, id").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("fetch submission log failed: %w", err)
	}
	return subs, nil
}
