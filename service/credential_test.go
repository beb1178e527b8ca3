package service

import (
	"context"
	"testing"

	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/judge"
	"github.com/codearena/contest_relay/pkg/secret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testCodecKey = "97bd75cc3a85d3cf7d38be0b5bd17b7bb25a0b2a1c4bd459e11ad524a2a8f8f8"

type fakeCredentialStore struct {
	cred     *model.JudgeCredential
	replaced int
	cleared  int
}

func (s *fakeCredentialStore) GetActive(_ context.Context) (*model.JudgeCredential, error) {
	if s.cred == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cred, nil
}

func (s *fakeCredentialStore) Replace(_ context.Context, cred *model.JudgeCredential) error {
	s.cred = cred
	s.replaced++
	return nil
}

func (s *fakeCredentialStore) Clear(_ context.Context) error {
	s.cred = nil
	s.cleared++
	return nil
}

type fakeJudgeClient struct {
	judge.Client
	handle      string
	validateErr error
}

func (c *fakeJudgeClient) ValidateCookies(_ context.Context, _ string) (string, error) {
	if c.validateErr != nil {
		return "", c.validateErr
	}
	return c.handle, nil
}

func newTestCodec(t *testing.T) *secret.Codec {
	t.Helper()
	codec, err := secret.NewCodec(testCodecKey)
	require.NoError(t, err)
	return codec
}

func TestResolveNoActiveIdentity(t *testing.T) {
	svc := NewCredentialService(&fakeCredentialStore{}, newTestCodec(t), &fakeJudgeClient{}, zap.NewNop())

	_, err := svc.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveIdentity)
}

func TestLinkThenResolve(t *testing.T) {
	store := &fakeCredentialStore{}
	codec := newTestCodec(t)
	svc := NewCredentialService(store, codec, &fakeJudgeClient{handle: "tourist"}, zap.NewNop())

	resp, err := svc.Link(context.Background(), &model.LinkCredentialParam{
		CommonParam: model.CommonParam{Operator: 1},
		Secret:      "JSESSIONID=abc; 39ce7=xyz",
	})
	require.NoError(t, err)
	assert.Equal(t, "tourist", resp.Handle)
	assert.Equal(t, 1, store.replaced)

	// 落库的是密文
	require.NotNil(t, store.cred)
	assert.NotContains(t, store.cred.EncryptedSecret, "JSESSIONID")
	assert.Equal(t, uint64(1), store.cred.LinkedBy)

	identity, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tourist", identity.Handle)
	assert.Equal(t, "JSESSIONID=abc; 39ce7=xyz", identity.Secret)
}

func TestLinkRejectsInvalidCookies(t *testing.T) {
	store := &fakeCredentialStore{}
	svc := NewCredentialService(store, newTestCodec(t), &fakeJudgeClient{validateErr: judge.ErrInvalidCookies}, zap.NewNop())

	_, err := svc.Link(context.Background(), &model.LinkCredentialParam{Secret: "garbage"})
	assert.ErrorIs(t, err, judge.ErrInvalidCookies)
	// 校验失败不落库
	assert.Equal(t, 0, store.replaced)
}

func TestResolveCorruptSecret(t *testing.T) {
	store := &fakeCredentialStore{cred: &model.JudgeCredential{
		ID:              1,
		Handle:          "tourist",
		EncryptedSecret: "not-hex-at-all",
	}}
	svc := NewCredentialService(store, newTestCodec(t), &fakeJudgeClient{}, zap.NewNop())

	_, err := svc.Resolve(context.Background())
	assert.ErrorIs(t, err, secret.ErrCorruptSecret)
}

func TestUnlinkAndStatus(t *testing.T) {
	store := &fakeCredentialStore{}
	svc := NewCredentialService(store, newTestCodec(t), &fakeJudgeClient{handle: "tourist"}, zap.NewNop())

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Linked)

	_, err = svc.Link(context.Background(), &model.LinkCredentialParam{Secret: "cookie"})
	require.NoError(t, err)

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Linked)
	assert.Equal(t, "tourist", status.Handle)
	require.NotNil(t, status.ValidatedAt)

	require.NoError(t, svc.Unlink(context.Background()))
	assert.Equal(t, 1, store.cleared)

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Linked)
}
