package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/codearena/contest_relay/pkg/secret"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Identity 解密后的有效身份, 仅存在于内存
type Identity struct {
	Handle string
	Secret string
}

// CredentialStore 凭证单例存储
type CredentialStore interface {
	// GetActive 读取当前生效凭证, 不存在时返回 gorm.ErrRecordNotFound
	GetActive(ctx context.Context) (*model.JudgeCredential, error)
	// Replace 原子替换: 清空全部旧凭证后写入新凭证
	Replace(ctx context.Context, cred *model.JudgeCredential) error
	// Clear 清空全部凭证
	Clear(ctx context.Context) error
}

type GormCredentialStore struct {
	db *gorm.DB
}

var _ CredentialStore = (*GormCredentialStore)(nil)

func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

func (s *GormCredentialStore) GetActive(ctx context.Context) (*model.JudgeCredential, error) {
	var cred model.JudgeCredential
	err := s.db.WithContext(ctx).Order("id DESC").First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// Replace 同一事务内先删后插, 不存在两条同时生效的窗口
func (s *GormCredentialStore) Replace(ctx context.Context, cred *model.JudgeCredential) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.JudgeCredential{}).Error; err != nil {
			return fmt.Errorf("Replace failed at delete old credentials: %w", err)
		}
		if err := tx.Create(cred).Error; err != nil {
			return fmt.Errorf("Replace failed at create credential: %w", err)
		}
		return nil
	})
}

func (s *GormCredentialStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&model.JudgeCredential{}).Error
}

type CredentialService interface {
	// Resolve 解密当前生效身份, 每次提交/重判前调用
	Resolve(ctx context.Context) (*Identity, error)
	// Link 校验并绑定新凭证, 旧凭证全部失效
	Link(ctx context.Context, param *model.LinkCredentialParam) (*model.LinkCredentialResponse, error)
	// Unlink 解除绑定
	Unlink(ctx context.Context) error
	// Status 当前绑定状态, 不含明文凭证
	Status(ctx context.Context) (*model.CredentialStatusResponse, error)
}

type CredentialServiceImpl struct {
	store  CredentialStore
	codec  *secret.Codec
	client judge.Client
	log    *zap.Logger
}

var _ CredentialService = (*CredentialServiceImpl)(nil)

func NewCredentialService(store CredentialStore, codec *secret.Codec, client judge.Client, log *zap.Logger) CredentialService {
	return &CredentialServiceImpl{
		store:  store,
		codec:  codec,
		client: client,
		log:    log,
	}
}

// Resolve 无生效凭证时返回 ErrNoActiveIdentity, 密文损坏时返回 secret.ErrCorruptSecret
func (s *CredentialServiceImpl) Resolve(ctx context.Context) (*Identity, error) {
	cred, err := s.store.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveIdentity
		}
		return nil, fmt.Errorf("Resolve failed at get active credential: %w", err)
	}

	plain, err := s.codec.Open(cred.EncryptedSecret)
	if err != nil {
		s.log.Error("decrypt credential failed",
			zap.Uint64("credential_id", cred.ID),
			zap.String("handle", cred.Handle),
			zap.Error(err))
		return nil, err
	}

	return &Identity{Handle: cred.Handle, Secret: plain}, nil
}

// Link 先远程校验再落库, 校验失败不影响现有绑定
func (s *CredentialServiceImpl) Link(ctx context.Context, param *model.LinkCredentialParam) (*model.LinkCredentialResponse, error) {
	handle, err := s.client.ValidateCookies(ctx, param.Secret)
	if err != nil {
		return nil, fmt.Errorf("Link failed at validate cookies: %w", err)
	}

	sealed, err := s.codec.Seal(param.Secret)
	if err != nil {
		return nil, fmt.Errorf("Link failed at seal secret: %w", err)
	}

	now := time.Now()
	cred := &model.JudgeCredential{
		Handle:          handle,
		EncryptedSecret: sealed,
		LinkedBy:        param.Operator,
		ValidatedAt:     now,
	}
	if err = s.store.Replace(ctx, cred); err != nil {
		return nil, fmt.Errorf("Link failed at replace credential: %w", err)
	}

	s.log.Info("judge credential linked",
		zap.String("handle", handle),
		zap.Uint64("linked_by", param.Operator))

	return &model.LinkCredentialResponse{Handle: handle, ValidatedAt: now}, nil
}

func (s *CredentialServiceImpl) Unlink(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("Unlink failed at clear credentials: %w", err)
	}
	s.log.Info("judge credential unlinked")
	return nil
}

func (s *CredentialServiceImpl) Status(ctx context.Context) (*model.CredentialStatusResponse, error) {
	cred, err := s.store.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.CredentialStatusResponse{Linked: false}, nil
		}
		return nil, fmt.Errorf("Status failed at get active credential: %w", err)
	}
	return &model.CredentialStatusResponse{
		Linked:      true,
		Handle:      cred.Handle,
		LinkedBy:    cred.LinkedBy,
		ValidatedAt: &cred.ValidatedAt,
	}, nil
}
