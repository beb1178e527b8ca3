package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/codearena/contest_relay/model"
	"gorm.io/gorm"
)

type ContestService interface {
	// GetContest 比赛详情, 状态由当前时间推导
	GetContest(ctx context.Context, contestID uint64) (*model.Contest, error)
	// CheckParticipant 校验用户是否已报名
	CheckParticipant(ctx context.Context, contestID, userID uint64) error
}

type ContestServiceImpl struct {
	db *gorm.DB
}

var _ ContestService = (*ContestServiceImpl)(nil)

func NewContestService(db *gorm.DB) ContestService {
	return &ContestServiceImpl{db: db}
}

func (s *ContestServiceImpl) GetContest(ctx context.Context, contestID uint64) (*model.Contest, error) {
	var contest model.Contest
	err := s.db.WithContext(ctx).Preload("Problems").Where("id = ?", contestID).First(&contest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("GetContest failed at find: %w", err)
	}
	return &contest, nil
}

func (s *ContestServiceImpl) CheckParticipant(ctx context.Context, contestID, userID uint64) error {
	var joined int64
	err := s.db.WithContext(ctx).Model(&model.ContestUser{}).
		Where("contest_id = ? AND user_id = ?", contestID, userID).
		Count(&joined).Error
	if err != nil {
		return fmt.Errorf("CheckParticipant failed at count: %w", err)
	}
	if joined == 0 {
		return ErrNotParticipant
	}
	return nil
}
