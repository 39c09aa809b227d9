package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driven"
	"github.com/monaruku/tokpost-cli/internal/logger"
)

// Fixed provider endpoints.
const (
	// DefaultAuthBaseURL is the consent-screen page.
	DefaultAuthBaseURL = "https://www.tiktok.com/v2/auth/authorize/"
	// DefaultAPIBaseURL is the open API root.
	DefaultAPIBaseURL = "https://open.tiktokapis.com/v2"

	tokenPath       = "/oauth/token/"
	revokePath      = "/oauth/revoke/"
	userInfoPath    = "/user/info/"
	creatorInfoPath = "/post/publish/creator_info/query/"
	videoInitPath   = "/post/publish/video/init/"
	statusFetchPath = "/post/publish/status/fetch/"
)

// maxErrorBodyBytes caps how much of an unparseable error body is
// carried in an HTTPError.
const maxErrorBodyBytes = 2048

// Ensure Client implements both driven ports.
var (
	_ driven.OAuthClient = (*Client)(nil)
	_ driven.PostClient  = (*Client)(nil)
)

// Client talks to the TikTok open API. It holds no credential state;
// bearer tokens are passed per call.
type Client struct {
	clientKey    string
	clientSecret string
	authBaseURL  string
	apiBaseURL   string
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Useful for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIBaseURL overrides the open API root. Useful for tests.
func WithAPIBaseURL(base string) Option {
	return func(c *Client) { c.apiBaseURL = strings.TrimRight(base, "/") }
}

// WithAuthBaseURL overrides the consent-screen page URL.
func WithAuthBaseURL(base string) Option {
	return func(c *Client) { c.authBaseURL = base }
}

// NewClient creates a client for the given application credentials.
func NewClient(clientKey, clientSecret string, opts ...Option) *Client {
	c := &Client{
		clientKey:    clientKey,
		clientSecret: clientSecret,
		authBaseURL:  DefaultAuthBaseURL,
		apiBaseURL:   DefaultAPIBaseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiError is the structured error envelope on open API responses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	LogID   string `json:"log_id"`
}

// isError reports a present, non-"ok" code. The provider uses "ok"
// on success envelopes.
func (e *apiError) isError() bool {
	return e.Code != "" && e.Code != string(domain.ErrCodeOK)
}

// postForm sends a form-encoded POST and returns the response body.
// Transport failures become NetworkError; the status is returned for
// the caller to interpret.
func (c *Client) postForm(ctx context.Context, endpoint, rawURL string, data url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(data.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	return c.do(endpoint, req)
}

// postJSON sends a JSON POST with bearer auth and returns the body.
func (c *Client) postJSON(ctx context.Context, endpoint, rawURL, accessToken string, payload any) (int, []byte, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.do(endpoint, req)
}

// getJSON sends a GET with bearer auth and returns the body.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL, accessToken string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.do(endpoint, req)
}

func (c *Client) do(endpoint string, req *http.Request) (int, []byte, error) {
	logger.Debug("tiktok: %s %s", req.Method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &domain.NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &domain.NetworkError{Endpoint: endpoint, Err: err}
	}
	return resp.StatusCode, body, nil
}

// decodeError turns a non-2xx response into a ProviderError when the
// body parses, and an HTTPError carrying the raw status otherwise.
// Best effort only: an unparseable body never causes a secondary
// failure.
func decodeError(endpoint string, status int, body []byte) error {
	// Open API envelope: {"error": {"code": ..., "message": ...}}
	var envelope struct {
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return &domain.ProviderError{
			Endpoint:    endpoint,
			StatusCode:  status,
			Code:        domain.ErrorCode(envelope.Error.Code),
			Description: envelope.Error.Message,
			LogID:       envelope.Error.LogID,
		}
	}

	// OAuth form endpoints: {"error": "...", "error_description": "..."}
	var oauthErr struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &oauthErr); err == nil && oauthErr.Error != "" {
		return &domain.ProviderError{
			Endpoint:    endpoint,
			StatusCode:  status,
			Code:        domain.ErrorCode(oauthErr.Error),
			Description: oauthErr.Description,
		}
	}

	raw := strings.TrimSpace(string(body))
	if len(raw) > maxErrorBodyBytes {
		raw = raw[:maxErrorBodyBytes]
	}
	return &domain.HTTPError{Endpoint: endpoint, StatusCode: status, Body: raw}
}

// envelopeError surfaces an error code the provider put inside a 2xx
// envelope.
func envelopeError(endpoint string, status int, e apiError) error {
	if !e.isError() {
		return nil
	}
	return &domain.ProviderError{
		Endpoint:    endpoint,
		StatusCode:  status,
		Code:        domain.ErrorCode(e.Code),
		Description: e.Message,
		LogID:       e.LogID,
	}
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
