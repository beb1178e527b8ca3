package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newAdminEngine(adminIDs []uint64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewAdminMiddlewareBuilder(adminIDs, zap.NewNop()).CheckAdmin())
	engine.GET("/admin/GetCredentialStatus", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/GetStandings", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestCheckAdminAllowsListedOperator(t *testing.T) {
	engine := newAdminEngine([]uint64{42})

	req := httptest.NewRequest(http.MethodGet, "/admin/GetCredentialStatus", nil)
	req.Header.Set("X-User-ID", "42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckAdminRejectsUnlistedOperator(t *testing.T) {
	engine := newAdminEngine([]uint64{42})

	req := httptest.NewRequest(http.MethodGet, "/admin/GetCredentialStatus", nil)
	req.Header.Set("X-User-ID", "7")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckAdminRejectsMissingOperator(t *testing.T) {
	engine := newAdminEngine([]uint64{42})

	req := httptest.NewRequest(http.MethodGet, "/admin/GetCredentialStatus", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckAdminIgnoresOtherPaths(t *testing.T) {
	engine := newAdminEngine([]uint64{42})

	req := httptest.NewRequest(http.MethodGet, "/GetStandings", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
