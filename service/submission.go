package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/codearena/contest_relay/poller"
	"github.com/codearena/contest_relay/service/exporter/factory"
	"github.com/to404hanga/pkg404/gotools/transform"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PollLauncher 判题后台轮询入口
type PollLauncher interface {
	Launch(task poller.Task)
}

type SubmissionService interface {
	// CreateSubmission 中继提交: 远程评测接收即落库 PENDING 并发起轮询
	CreateSubmission(ctx context.Context, param *model.CreateSubmissionParam) (*model.CreateSubmissionResponse, error)
	// GetSubmissionList 提交列表, 不含源代码
	GetSubmissionList(ctx context.Context, param *model.GetSubmissionListParam) (*model.GetSubmissionListResponse, error)
	// GetSubmissionByID 单条提交详情
	GetSubmissionByID(ctx context.Context, param *model.GetSubmissionParam) (*model.Submission, error)
	// GetLatestSubmission 本人在本场比赛最近一次提交, 不含源代码
	GetLatestSubmission(ctx context.Context, param *model.GetLatestSubmissionParam) (*model.SubmissionSummary, error)
	// Rejudge 重置终态并对同一远程提交重新轮询
	Rejudge(ctx context.Context, param *model.RejudgeParam) (*model.RejudgeResponse, error)
	// CommitVerdict 终态一次性落库
	CommitVerdict(ctx context.Context, submissionID uint64, verdict model.Verdict, testsPassed int, timeUsed, memoryUsed int64) error
	// ReconcileStale 对滞留在非终态的提交重新发起轮询, 返回补偿数量
	ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error)
	// ExportLog 导出比赛提交记录
	ExportLog(ctx context.Context, contestID uint64, w io.Writer) error
}

type SubmissionServiceImpl struct {
	*VerdictStore

	db              *gorm.DB
	credential      CredentialService
	client          judge.Client
	launcher        PollLauncher
	log             *zap.Logger
	exporterFactory *factory.ExporterFactory
}

var _ SubmissionService = (*SubmissionServiceImpl)(nil)
var _ poller.SubmissionStore = (*SubmissionServiceImpl)(nil)

func NewSubmissionService(db *gorm.DB, store *VerdictStore, credential CredentialService, client judge.Client, launcher PollLauncher, log *zap.Logger) SubmissionService {
	return &SubmissionServiceImpl{
		VerdictStore:    store,
		db:              db,
		credential:      credential,
		client:          client,
		launcher:        launcher,
		log:             log,
		exporterFactory: factory.NewExporterFactory(db, log),
	}
}

// CreateSubmission 逐级校验后中继到远程评测
// 远程接收成功但本地落库失败时, 该提交只存在于远程侧, 由人工对账处理
func (s *SubmissionServiceImpl) CreateSubmission(ctx context.Context, param *model.CreateSubmissionParam) (*model.CreateSubmissionResponse, error) {
	var contest model.Contest
	err := s.db.WithContext(ctx).Where("id = ?", param.ContestID).First(&contest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("CreateSubmission failed at get contest: %w", err)
	}

	now := time.Now()
	if contest.StatusAt(now) != model.ContestStatusRunning {
		return nil, ErrContestNotRunning
	}

	var joined int64
	err = s.db.WithContext(ctx).Model(&model.ContestUser{}).
		Where("contest_id = ? AND user_id = ?", param.ContestID, param.Operator).
		Count(&joined).Error
	if err != nil {
		return nil, fmt.Errorf("CreateSubmission failed at check participant: %w", err)
	}
	if joined == 0 {
		return nil, ErrNotParticipant
	}

	var problem model.ContestProblem
	err = s.db.WithContext(ctx).
		Where("contest_id = ? AND problem_code = ?", param.ContestID, param.ProblemCode).
		First(&problem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotInContest
		}
		return nil, fmt.Errorf("CreateSubmission failed at get problem: %w", err)
	}

	identity, err := s.credential.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	judgeSubmissionID, err := s.client.Submit(ctx, identity.Secret, problem.JudgeRef(), param.Code, param.LanguageID)
	if err != nil {
		return nil, fmt.Errorf("CreateSubmission failed at relay to judge: %w", err)
	}

	sub := model.Submission{
		ContestID:         param.ContestID,
		UserID:            param.Operator,
		ProblemCode:       param.ProblemCode,
		Code:              param.Code,
		Language:          param.Language,
		LanguageID:        param.LanguageID,
		JudgeSubmissionID: judgeSubmissionID,
		Verdict:           model.VerdictPending,
		SubmittedAt:       now,
	}
	if err = s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		s.log.Error("submission accepted by judge but insert failed",
			zap.Int64("judge_submission_id", judgeSubmissionID),
			zap.Uint64("user_id", param.Operator),
			zap.Error(err))
		return nil, fmt.Errorf("CreateSubmission failed at insert submission: %w", err)
	}

	s.launcher.Launch(poller.Task{
		SubmissionID:      sub.ID,
		ContestID:         sub.ContestID,
		UserID:            sub.UserID,
		ProblemCode:       sub.ProblemCode,
		SubmittedAt:       sub.SubmittedAt,
		Handle:            identity.Handle,
		JudgeSubmissionID: judgeSubmissionID,
	})

	return &model.CreateSubmissionResponse{
		ID:                sub.ID,
		ContestID:         sub.ContestID,
		ProblemCode:       sub.ProblemCode,
		Language:          sub.Language,
		JudgeSubmissionID: judgeSubmissionID,
		Verdict:           sub.Verdict,
		SubmittedAt:       sub.SubmittedAt,
	}, nil
}

func (s *SubmissionServiceImpl) GetSubmissionList(ctx context.Context, param *model.GetSubmissionListParam) (*model.GetSubmissionListResponse, error) {
	query := s.db.WithContext(ctx).Model(&model.Submission{}).
		Where("contest_id = ?", param.ContestID)
	if param.ProblemCode != "" {
		query = query.Where("problem_code = ?", param.ProblemCode)
	}
	if param.UserID != 0 {
		query = query.Where("user_id = ?", param.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("GetSubmissionList failed at count: %w", err)
	}

	limit := param.Limit
	if limit == 0 {
		limit = 50
	}

	var subs []model.Submission
	err := query.Order("submitted_at DESC, id DESC").Limit(limit).Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("GetSubmissionList failed at find: %w", err)
	}

	list := transform.SliceFromSlice(subs, func(_ int, sub model.Submission) model.SubmissionSummary {
		return model.SubmissionSummary{
			ID:                sub.ID,
			ContestID:         sub.ContestID,
			UserID:            sub.UserID,
			ProblemCode:       sub.ProblemCode,
			Language:          sub.Language,
			JudgeSubmissionID: sub.JudgeSubmissionID,
			Verdict:           sub.Verdict,
			TestsPassed:       sub.TestsPassed,
			TimeUsed:          sub.TimeUsed,
			MemoryUsed:        sub.MemoryUsed,
			SubmittedAt:       sub.SubmittedAt,
		}
	})
	return &model.GetSubmissionListResponse{List: list, Total: int(total)}, nil
}

func (s *SubmissionServiceImpl) GetSubmissionByID(ctx context.Context, param *model.GetSubmissionParam) (*model.Submission, error) {
	var sub model.Submission
	err := s.db.WithContext(ctx).Where("id = ?", param.SubmissionID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("GetSubmissionByID failed at find: %w", err)
	}
	return &sub, nil
}

func (s *SubmissionServiceImpl) GetLatestSubmission(ctx context.Context, param *model.GetLatestSubmissionParam) (*model.SubmissionSummary, error) {
	query := s.db.WithContext(ctx).
		Where("contest_id = ? AND user_id = ?", param.ContestID, param.Operator)
	if param.ProblemCode != "" {
		query = query.Where("problem_code = ?", param.ProblemCode)
	}

	var sub model.Submission
	err := query.Order("submitted_at DESC, id DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("GetLatestSubmission failed at find: %w", err)
	}

	return &model.SubmissionSummary{
		ID:                sub.ID,
		ContestID:         sub.ContestID,
		UserID:            sub.UserID,
		ProblemCode:       sub.ProblemCode,
		Language:          sub.Language,
		JudgeSubmissionID: sub.JudgeSubmissionID,
		Verdict:           sub.Verdict,
		TestsPassed:       sub.TestsPassed,
		TimeUsed:          sub.TimeUsed,
		MemoryUsed:        sub.MemoryUsed,
		SubmittedAt:       sub.SubmittedAt,
	}, nil
}

// Rejudge 不重新提交代码, 只对原远程提交重新拉取判题结果
// 已有轮询尚未结束时允许再起一轮, 两轮终态以最后落库者为准
func (s *SubmissionServiceImpl) Rejudge(ctx context.Context, param *model.RejudgeParam) (*model.RejudgeResponse, error) {
	var sub model.Submission
	err := s.db.WithContext(ctx).Where("id = ?", param.SubmissionID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("Rejudge failed at get submission: %w", err)
	}
	if sub.JudgeSubmissionID == 0 {
		return nil, ErrNoJudgeReference
	}

	identity, err := s.credential.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	// 一次更新回到 PENDING, 观测者不会看到半重置状态
	err = s.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ?", sub.ID).
		Updates(map[string]any{
			"verdict":      model.VerdictPending,
			"tests_passed": 0,
			"time_used":    0,
			"memory_used":  0,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("Rejudge failed at reset verdict: %w", err)
	}

	s.log.Info("submission rejudge requested",
		zap.Uint64("submission_id", sub.ID),
		zap.Int64("judge_submission_id", sub.JudgeSubmissionID),
		zap.Uint64("operator", param.Operator))

	s.launcher.Launch(poller.Task{
		SubmissionID:      sub.ID,
		ContestID:         sub.ContestID,
		UserID:            sub.UserID,
		ProblemCode:       sub.ProblemCode,
		SubmittedAt:       sub.SubmittedAt,
		Handle:            identity.Handle,
		JudgeSubmissionID: sub.JudgeSubmissionID,
	})

	return &model.RejudgeResponse{
		SubmissionID:      sub.ID,
		JudgeSubmissionID: sub.JudgeSubmissionID,
		Verdict:           model.VerdictPending,
	}, nil
}

// ReconcileStale 进程重启会丢弃在途轮询, 周期任务对滞留提交补偿
func (s *SubmissionServiceImpl) ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error) {
	identity, err := s.credential.Resolve(ctx)
	if err != nil {
		if errors.Is(err, ErrNoActiveIdentity) {
			// 无身份时无法轮询, 留到下个周期
			return 0, nil
		}
		return 0, fmt.Errorf("ReconcileStale failed at resolve identity: %w", err)
	}

	deadline := time.Now().Add(-olderThan)
	var subs []model.Submission
	err = s.db.WithContext(ctx).
		Where("verdict IN ?", []model.Verdict{model.VerdictPending, model.VerdictTesting}).
		Where("judge_submission_id <> 0").
		Where("submitted_at < ?", deadline).
		Find(&subs).Error
	if err != nil {
		return 0, fmt.Errorf("ReconcileStale failed at find stale submissions: %w", err)
	}

	for _, sub := range subs {
		s.launcher.Launch(poller.Task{
			SubmissionID:      sub.ID,
			ContestID:         sub.ContestID,
			UserID:            sub.UserID,
			ProblemCode:       sub.ProblemCode,
			SubmittedAt:       sub.SubmittedAt,
			Handle:            identity.Handle,
			JudgeSubmissionID: sub.JudgeSubmissionID,
		})
	}
	return len(subs), nil
}

// ExportLog 导出提交记录用于赛后仲裁
func (s *SubmissionServiceImpl) ExportLog(ctx context.Context, contestID uint64, w io.Writer) error {
	exp := s.exporterFactory.GetExporter(factory.CSVSubmissionLog)
	if exp == nil {
		return fmt.Errorf("get submission log exporter failed: exporter not found")
	}
	return exp.Export(ctx, contestID, w)
}
