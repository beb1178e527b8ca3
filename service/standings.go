package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/service/exporter/factory"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/pkg404/gotools/retry"
	"github.com/to404hanga/pkg404/gotools/transform"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StandingsService interface {
	// Recompute 从提交历史全量重算榜单并落库
	Recompute(ctx context.Context, contestID uint64) ([]model.StandingRow, error)
	// GetStandings 读取榜单, 优先走快照缓存
	GetStandings(ctx context.Context, param *model.GetStandingsParam) (*model.GetStandingsResponse, error)
	// Export 导出榜单
	Export(ctx context.Context, param *model.ExportStandingsParam, w io.Writer) error
}

// StandingsServiceImpl 榜单服务实现, DB 为权威存储, Redis 仅作读快照
type StandingsServiceImpl struct {
	db              *gorm.DB
	rdb             redis.Cmdable
	log             *zap.Logger
	exporterFactory *factory.StandingsExporterFactory
}

var _ StandingsService = (*StandingsServiceImpl)(nil)

func NewStandingsService(db *gorm.DB, rdb redis.Cmdable, log *zap.Logger) StandingsService {
	return &StandingsServiceImpl{
		db:              db,
		rdb:             rdb,
		log:             log,
		exporterFactory: factory.NewStandingsExporterFactory(db, log),
	}
}

const (
	StandingsSnapshotKey = "standings:contest:%d"
	SnapshotExpiration   = 8 * time.Hour
)

// Recompute 全量重算: 任何终判都触发, 不做增量
// 并发重算互相覆盖, 最终落库的是较晚完成的那份, 行集上仍是某次完整计算的结果
func (s *StandingsServiceImpl) Recompute(ctx context.Context, contestID uint64) ([]model.StandingRow, error) {
	var contest model.Contest
	err := s.db.WithContext(ctx).Where("id = ?", contestID).First(&contest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("Recompute failed at get contest: %w", err)
	}

	var users []model.ContestUser
	err = s.db.WithContext(ctx).Where("contest_id = ?", contestID).Order("id").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("Recompute failed at get contest users: %w", err)
	}

	// 按提交时间升序取全部已接收的提交, 同一时刻按 id 保序
	var subs []model.Submission
	err = s.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("submitted_at, id").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("Recompute failed at get submissions: %w", err)
	}

	participants := transform.SliceFromSlice(users, func(_ int, u model.ContestUser) uint64 {
		return u.UserID
	})
	rows := computeStandings(&contest, participants, subs)

	if err = s.persist(ctx, contestID, rows); err != nil {
		return nil, fmt.Errorf("Recompute failed at persist standings: %w", err)
	}

	s.cacheSnapshot(ctx, contestID, rows)
	return rows, nil
}

// persist 逐用户整行替换
func (s *StandingsServiceImpl) persist(ctx context.Context, contestID uint64, rows []model.StandingRow) error {
	if len(rows) == 0 {
		return nil
	}
	standings := transform.SliceFromSlice(rows, func(_ int, row model.StandingRow) model.Standing {
		return model.Standing{
			ContestID:      contestID,
			UserID:         row.UserID,
			Rank:           row.Rank,
			ProblemsSolved: row.ProblemsSolved,
			TotalPenalty:   row.TotalPenalty,
			TotalPoints:    row.TotalPoints,
			Problems:       row.Problems,
		}
	})
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contest_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rank_no", "problems_solved", "total_penalty", "total_points", "problems", "updated_at"}),
	}).Create(&standings).Error
}

// cacheSnapshot 快照写入失败只降级, 不影响重算结果
func (s *StandingsServiceImpl) cacheSnapshot(ctx context.Context, contestID uint64, rows []model.StandingRow) {
	data, err := json.Marshal(rows)
	if err != nil {
		s.log.Error("marshal standings snapshot failed",
			zap.Uint64("contest_id", contestID),
			zap.Error(err))
		return
	}
	retry.Do(ctx, func() error {
		return s.rdb.Set(ctx, fmt.Sprintf(StandingsSnapshotKey, contestID), data, SnapshotExpiration).Err()
	}, retry.WithAsync(true), retry.WithCallback(func(err error) {
		s.log.Error("set standings snapshot to redis failed",
			zap.Uint64("contest_id", contestID),
			zap.Error(err))
	}))
}

// GetStandings 缓存命中直接返回, 未命中时触发一次重算回填
func (s *StandingsServiceImpl) GetStandings(ctx context.Context, param *model.GetStandingsParam) (*model.GetStandingsResponse, error) {
	snapshotKey := fmt.Sprintf(StandingsSnapshotKey, param.ContestID)

	data, err := s.rdb.Get(ctx, snapshotKey).Result()
	if err == nil {
		var rows []model.StandingRow
		if err = json.Unmarshal([]byte(data), &rows); err == nil {
			return &model.GetStandingsResponse{ContestID: param.ContestID, Rows: rows}, nil
		}
		s.log.Error("unmarshal standings snapshot failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Error(err))
	} else if err != redis.Nil {
		s.log.Error("get standings snapshot from redis failed",
			zap.Uint64("contest_id", param.ContestID),
			zap.Error(err))
	}

	rows, err := s.Recompute(ctx, param.ContestID)
	if err != nil {
		return nil, fmt.Errorf("GetStandings failed at recompute: %w", err)
	}
	return &model.GetStandingsResponse{ContestID: param.ContestID, Rows: rows}, nil
}

// Export 导出榜单到 w
func (s *StandingsServiceImpl) Export(ctx context.Context, param *model.ExportStandingsParam, w io.Writer) error {
	exp := s.exporterFactory.GetStandingsExporter(factory.StandingsExporterType(param.Format))
	if exp == nil {
		return fmt.Errorf("get standings exporter failed: exporter not found")
	}
	return exp.Export(ctx, param.ContestID, w)
}
