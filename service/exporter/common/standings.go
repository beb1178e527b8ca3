package common

import (
	"context"
	"fmt"

	"github.com/codearena/contest_relay/model"
	"gorm.io/gorm"
)

// FetchStandings 按名次分页读取已落库的榜单
func FetchStandings(db *gorm.DB, ctx context.Context, contestID uint64, page, limit int) ([]model.Standing, error) {
	var rows []model.Standing
	if err := db.WithContext(ctx).
		Model(&model.Standing{}).
		Where("contest_id = ?", contestID).
		Order("rank_no ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch standings failed: %w", err)
	}
	return rows, nil
}
