package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/pkg/gintool"
	"github.com/codearena/contest_relay/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubmissionService struct {
	service.SubmissionService

	sub *model.Submission
}

func (s *stubSubmissionService) GetSubmissionByID(_ context.Context, _ *model.GetSubmissionParam) (*model.Submission, error) {
	return s.sub, nil
}

func newSubmissionEngine(adminIDs AdminUserIDs) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := &stubSubmissionService{sub: &model.Submission{
		ID:      1,
		UserID:  5,
		Code:    "print(42)",
		Verdict: model.VerdictOK,
	}}
	engine := gin.New()
	NewSubmissionHandler(svc, adminIDs, zap.NewNop()).Register(engine)
	return engine
}

func getSubmissionAs(t *testing.T, engine *gin.Engine, operator string) *gintool.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/GetSubmission/1", nil)
	req.Header.Set("X-User-ID", operator)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp gintool.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestGetSubmissionOwnerCanRead(t *testing.T) {
	engine := newSubmissionEngine(AdminUserIDs{42})

	resp := getSubmissionAs(t, engine, "5")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotNil(t, resp.Data)
}

func TestGetSubmissionAdminCanRead(t *testing.T) {
	engine := newSubmissionEngine(AdminUserIDs{42})

	resp := getSubmissionAs(t, engine, "42")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotNil(t, resp.Data)
}

func TestGetSubmissionStrangerRejected(t *testing.T) {
	engine := newSubmissionEngine(AdminUserIDs{42})

	resp := getSubmissionAs(t, engine, "7")

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Nil(t, resp.Data)
}
