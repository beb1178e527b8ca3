package judge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codearena/contest_relay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewHTTPClient(srv.URL, 5*time.Second), srv
}

func TestSubmitOK(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cf/submit", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"success":true,"submission_id":363219620}`))
	})
	defer srv.Close()

	id, err := c.Submit(context.Background(), "cookies", "4/A", "int main(){}", "54")
	require.NoError(t, err)
	assert.Equal(t, int64(363219620), id)
}

func TestSubmitStaleIdentity(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := c.Submit(context.Background(), "cookies", "4/A", "x", "54")
	assert.ErrorIs(t, err, ErrStaleIdentity)
}

func TestSubmitUnavailable(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := c.Submit(context.Background(), "cookies", "4/A", "x", "54")
	assert.ErrorIs(t, err, ErrJudgeUnavailable)
}

func TestVerdictTesting(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cf/verdict/tourist/42", r.URL.Path)
		w.Write([]byte(`{"verdict":"TESTING","testsPassed":3,"timeMs":0,"memoryBytes":0}`))
	})
	defer srv.Close()

	res, err := c.Verdict(context.Background(), "tourist", 42)
	require.NoError(t, err)
	assert.False(t, res.Terminal())
	assert.Equal(t, 3, res.TestsPassed)
}

func TestVerdictTerminal(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"verdict":"OK","testsPassed":40,"timeMs":155,"memoryBytes":2048000}`))
	})
	defer srv.Close()

	res, err := c.Verdict(context.Background(), "tourist", 42)
	require.NoError(t, err)
	assert.True(t, res.Terminal())
	assert.Equal(t, model.VerdictOK, res.Verdict)
	assert.Equal(t, int64(155), res.TimeMs)
}

func TestValidateCookies(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cf/validate-cookies", r.URL.Path)
		w.Write([]byte(`{"valid":true,"handle":"tourist"}`))
	})
	defer srv.Close()

	handle, err := c.ValidateCookies(context.Background(), "JSESSIONID=abc")
	require.NoError(t, err)
	assert.Equal(t, "tourist", handle)
}

func TestValidateCookiesRejected(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := c.ValidateCookies(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidCookies)
}
