package judge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/codearena/contest_relay/model"
)

var (
	// ErrStaleIdentity 远程评测侧判定会话失效
	ErrStaleIdentity = errors.New("judge: identity rejected by remote judge")
	// ErrInvalidCookies 绑定校验未通过
	ErrInvalidCookies = errors.New("judge: cookies invalid or expired")
	// ErrJudgeUnavailable 远程评测服务不可用
	ErrJudgeUnavailable = errors.New("judge: service unavailable")
)

// VerdictResult 单次轮询结果, Verdict 为空或 TESTING 表示尚未终判
type VerdictResult struct {
	Verdict     model.Verdict `json:"verdict"`
	TestsPassed int           `json:"testsPassed"`
	TimeMs      int64         `json:"timeMs"`
	MemoryBytes int64         `json:"memoryBytes"`
}

// Terminal 是否已拿到终态
func (r *VerdictResult) Terminal() bool {
	return r.Verdict.Terminal()
}

// Client 远程评测中继服务的请求/响应契约, 协议细节(页面抓取/CSRF)由中继服务屏蔽
type Client interface {
	// Submit 提交代码, 返回远程评测侧的提交 ID
	Submit(ctx context.Context, cookies, problemRef, sourceCode, languageID string) (int64, error)
	// Verdict 查询一次判题结果
	Verdict(ctx context.Context, handle string, judgeSubmissionID int64) (*VerdictResult, error)
	// ValidateCookies 校验凭证并返回其对应的 handle, 仅绑定时调用
	ValidateCookies(ctx context.Context, cookies string) (string, error)
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type submitRequest struct {
	Cookies     string `json:"cookies"`
	ProblemCode string `json:"problem_code"`
	SourceCode  string `json:"source_code"`
	LanguageID  string `json:"language_id"`
}

type submitResponse struct {
	Success      bool   `json:"success"`
	SubmissionID *int64 `json:"submission_id"`
}

func (c *HTTPClient) Submit(ctx context.Context, cookies, problemRef, sourceCode, languageID string) (int64, error) {
	body, err := c.postJSON(ctx, "/cf/submit", submitRequest{
		Cookies:     cookies,
		ProblemCode: problemRef,
		SourceCode:  sourceCode,
		LanguageID:  languageID,
	}, ErrStaleIdentity)
	if err != nil {
		return 0, err
	}

	var resp submitResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("Submit failed at unmarshal response: %w", err)
	}
	if !resp.Success || resp.SubmissionID == nil {
		return 0, fmt.Errorf("Submit failed at locate submission id: %w", ErrJudgeUnavailable)
	}
	return *resp.SubmissionID, nil
}

func (c *HTTPClient) Verdict(ctx context.Context, handle string, judgeSubmissionID int64) (*VerdictResult, error) {
	url := fmt.Sprintf("%s/cf/verdict/%s/%d", c.baseURL, handle, judgeSubmissionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("Verdict failed at build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Verdict failed at do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Verdict failed at status %d: %w", resp.StatusCode, ErrJudgeUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Verdict failed at read body: %w", err)
	}

	var result VerdictResult
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("Verdict failed at unmarshal response: %w", err)
	}
	return &result, nil
}

type validateRequest struct {
	Cookies string `json:"cookies"`
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	Handle string `json:"handle"`
}

func (c *HTTPClient) ValidateCookies(ctx context.Context, cookies string) (string, error) {
	body, err := c.postJSON(ctx, "/cf/validate-cookies", validateRequest{Cookies: cookies}, ErrInvalidCookies)
	if err != nil {
		return "", err
	}

	var resp validateResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("ValidateCookies failed at unmarshal response: %w", err)
	}
	if !resp.Valid || resp.Handle == "" {
		return "", ErrInvalidCookies
	}
	return resp.Handle, nil
}

// postJSON 统一 POST 语义: 401 映射到 unauthorizedErr, 其他非 2xx 映射到 ErrJudgeUnavailable
func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any, unauthorizedErr error) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("postJSON failed at marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("postJSON failed at build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("postJSON failed at do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("postJSON failed at read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, unauthorizedErr
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("postJSON failed at status %d: %w", resp.StatusCode, ErrJudgeUnavailable)
	}
	return body, nil
}
