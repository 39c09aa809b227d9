package tiktok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", "test-secret", WithAPIBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

// TestBuildAuthorizationURL tests deterministic URL construction with a fresh nonce
func TestBuildAuthorizationURL(t *testing.T) {
	c := NewClient("test-key", "test-secret")

	rawURL, req, err := c.BuildAuthorizationURL("https://example.com/cb", []string{"user.info.basic", "video.publish"})
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	q := parsed.Query()

	assert.Equal(t, "test-key", q.Get("client_key"))
	assert.Equal(t, "https://example.com/cb", q.Get("redirect_uri"))
	assert.Equal(t, "user.info.basic,video.publish", q.Get("scope"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, req.State, q.Get("state"))
	assert.GreaterOrEqual(t, len(req.State), 20, "state nonce must be at least 20 characters")
}

// TestBuildAuthorizationURL_FreshNonce tests that two calls differ only in state
func TestBuildAuthorizationURL_FreshNonce(t *testing.T) {
	c := NewClient("test-key", "test-secret")

	url1, req1, err := c.BuildAuthorizationURL("https://example.com/cb", nil)
	require.NoError(t, err)
	url2, req2, err := c.BuildAuthorizationURL("https://example.com/cb", nil)
	require.NoError(t, err)

	assert.NotEqual(t, req1.State, req2.State, "nonce must differ across calls")

	p1, _ := url.Parse(url1)
	p2, _ := url.Parse(url2)
	q1, q2 := p1.Query(), p2.Query()
	q1.Del("state")
	q2.Del("state")
	assert.Equal(t, q1.Encode(), q2.Encode(), "non-nonce fields must be identical for the same input")
}

// TestBuildAuthorizationURL_NotConfigured tests the missing client key case
func TestBuildAuthorizationURL_NotConfigured(t *testing.T) {
	c := NewClient("", "")

	_, _, err := c.BuildAuthorizationURL("https://example.com/cb", nil)

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

// TestExchangeCode tests a successful code exchange
func TestExchangeCode(t *testing.T) {
	var gotForm url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token/", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "act.example",
			"expires_in": 86400,
			"open_id": "open-123",
			"refresh_token": "rft.example",
			"scope": "user.info.basic,video.publish",
			"token_type": "Bearer"
		}`))
	}))

	cred, err := c.ExchangeCode(context.Background(), "auth-code", "https://example.com/cb")
	require.NoError(t, err)

	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "test-key", gotForm.Get("client_key"))
	assert.Equal(t, "test-secret", gotForm.Get("client_secret"))
	assert.Equal(t, "auth-code", gotForm.Get("code"))
	assert.Equal(t, "https://example.com/cb", gotForm.Get("redirect_uri"))

	assert.Equal(t, "act.example", cred.AccessToken)
	assert.Equal(t, "rft.example", cred.RefreshToken)
	assert.Equal(t, "open-123", cred.OpenID)
	assert.WithinDuration(t, time.Now().Add(86400*time.Second), cred.Expiry, 5*time.Second)
}

// TestExchangeCode_ProviderError tests the structured error path
func TestExchangeCode_ProviderError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_grant", "error_description": "Authorization code expired."}`))
	}))

	_, err := c.ExchangeCode(context.Background(), "stale-code", "https://example.com/cb")
	require.Error(t, err)

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, domain.ErrorCode("invalid_grant"), provErr.Code)
	assert.Equal(t, "Authorization code expired.", provErr.Description)
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
}

// TestExchangeCode_UnparseableBody tests the HTTP-status fallback
func TestExchangeCode_UnparseableBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := c.ExchangeCode(context.Background(), "code", "https://example.com/cb")
	require.Error(t, err)

	var httpErr *domain.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
}

// TestExchangeCode_NetworkError tests that transport failures are
// distinguished from provider errors
func TestExchangeCode_NetworkError(t *testing.T) {
	c := NewClient("test-key", "test-secret",
		WithAPIBaseURL("http://127.0.0.1:1"),
		WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))

	_, err := c.ExchangeCode(context.Background(), "code", "https://example.com/cb")

	assert.True(t, domain.IsNetwork(err), "connection failure must surface as NetworkError")
}

// TestRefresh tests the refresh grant and rotated token capture
func TestRefresh(t *testing.T) {
	var gotForm url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "act.new",
			"expires_in": 86400,
			"refresh_token": "rft.rotated",
			"token_type": "Bearer"
		}`))
	}))

	cred, err := c.Refresh(context.Background(), "rft.old")
	require.NoError(t, err)

	assert.Equal(t, "refresh_token", gotForm.Get("grant_type"))
	assert.Equal(t, "rft.old", gotForm.Get("refresh_token"))
	assert.Equal(t, "act.new", cred.AccessToken)
	assert.Equal(t, "rft.rotated", cred.RefreshToken)
}

// TestRefresh_OmittedRefreshToken tests that an omitted rotation leaves
// the field empty for the caller to retain the previous token
func TestRefresh_OmittedRefreshToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access_token": "act.new", "expires_in": 86400}`))
	}))

	cred, err := c.Refresh(context.Background(), "rft.old")
	require.NoError(t, err)

	assert.Empty(t, cred.RefreshToken)
}

// TestRevoke tests a successful revocation
func TestRevoke(t *testing.T) {
	var gotForm url.Values
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/revoke/", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		_, _ = w.Write([]byte(`{}`))
	}))

	err := c.Revoke(context.Background(), "act.example")
	require.NoError(t, err)

	assert.Equal(t, "act.example", gotForm.Get("token"))
	assert.Equal(t, "test-key", gotForm.Get("client_key"))
}

// TestRevoke_Error tests that revocation failures carry the provider description
func TestRevoke_Error(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_request", "error_description": "Token not found."}`))
	}))

	err := c.Revoke(context.Background(), "act.unknown")
	require.Error(t, err)

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "Token not found.", provErr.Description)
}

// TestGetUserInfo tests the bearer-authenticated profile fetch
func TestGetUserInfo(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/info/", r.URL.Path)
		require.Equal(t, "Bearer act.example", r.Header.Get("Authorization"))
		require.Contains(t, r.URL.Query().Get("fields"), "display_name")

		_, _ = w.Write([]byte(`{
			"data": {"user": {
				"open_id": "open-123",
				"display_name": "Demo Creator",
				"avatar_url": "https://cdn.example.com/avatar.jpg"
			}},
			"error": {"code": "ok", "message": ""}
		}`))
	}))

	profile, err := c.GetUserInfo(context.Background(), "act.example")
	require.NoError(t, err)

	assert.Equal(t, "Demo Creator", profile.DisplayName)
	assert.Equal(t, "https://cdn.example.com/avatar.jpg", profile.AvatarURL)
}

// TestGetUserInfo_EnvelopeError tests an error code inside a 2xx envelope
func TestGetUserInfo_EnvelopeError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": {},
			"error": {"code": "access_token_invalid", "message": "The access token is invalid."}
		}`))
	}))

	_, err := c.GetUserInfo(context.Background(), "act.stale")
	require.Error(t, err)

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, domain.ErrorCode("access_token_invalid"), provErr.Code)
}

// TestGetCreatorInfo tests the creator capability snapshot fetch
func TestGetCreatorInfo(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/post/publish/creator_info/query/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		_, _ = w.Write([]byte(`{
			"data": {
				"creator_nickname": "Demo Creator",
				"creator_avatar_url": "https://cdn.example.com/avatar.jpg",
				"privacy_level_options": ["PUBLIC_TO_EVERYONE", "MUTUAL_FOLLOW_FRIENDS", "SELF_ONLY"],
				"comment_disabled": false,
				"duet_disabled": true,
				"stitch_disabled": false,
				"max_video_post_duration_sec": 600
			},
			"error": {"code": "ok", "message": ""}
		}`))
	}))

	creator, err := c.GetCreatorInfo(context.Background(), "act.example")
	require.NoError(t, err)

	assert.Equal(t, "Demo Creator", creator.Nickname)
	assert.True(t, creator.DuetDisabled)
	assert.InDelta(t, 600, creator.MaxVideoDurationSec, 0.0001)
	assert.True(t, creator.AllowsPrivacy(domain.PrivacyPublic))
	assert.False(t, creator.AllowsPrivacy(domain.PrivacyFollowers))
}

// TestGenerateState tests nonce length and uniqueness
func TestGenerateState(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := GenerateState()
		assert.GreaterOrEqual(t, len(s), 20)
		assert.False(t, seen[s], "state nonce repeated")
		seen[s] = true
	}
}
