package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// tokenResponse is the body of the token and refresh endpoints.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	OpenID           string `json:"open_id"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	Scope            string `json:"scope"`
	TokenType        string `json:"token_type"`

	// Error fields the provider may put in the body.
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// BuildAuthorizationURL constructs the consent-screen URL. Pure, no
// I/O; the state nonce is freshly generated per call and returned on
// the request for the callback side to verify against.
func (c *Client) BuildAuthorizationURL(redirectURI string, scopes []string) (string, *domain.AuthorizationRequest, error) {
	if c.clientKey == "" {
		return "", nil, domain.ErrNotConfigured
	}
	if len(scopes) == 0 {
		scopes = domain.DefaultScopes
	}

	req := &domain.AuthorizationRequest{
		ClientKey:    c.clientKey,
		RedirectURI:  redirectURI,
		Scopes:       scopes,
		State:        GenerateState(),
		ResponseType: "code",
	}

	params := url.Values{
		"client_key":    {req.ClientKey},
		"redirect_uri":  {req.RedirectURI},
		"scope":         {req.ScopeString()},
		"response_type": {req.ResponseType},
		"state":         {req.State},
	}
	return c.authBaseURL + "?" + params.Encode(), req, nil
}

// ExchangeCode swaps an authorization code for tokens. The result is
// returned for the caller to persist; the client stores nothing.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.Credential, error) {
	if c.clientKey == "" || c.clientSecret == "" {
		return nil, domain.ErrNotConfigured
	}

	data := url.Values{}
	data.Set("client_key", c.clientKey)
	data.Set("client_secret", c.clientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", redirectURI)

	return c.requestToken(ctx, "code exchange", data)
}

// Refresh obtains a new access token from a refresh token. A rotated
// refresh token in the response replaces the old one; an omitted one
// is left for the caller to retain.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.Credential, error) {
	if c.clientKey == "" || c.clientSecret == "" {
		return nil, domain.ErrNotConfigured
	}

	data := url.Values{}
	data.Set("client_key", c.clientKey)
	data.Set("client_secret", c.clientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	return c.requestToken(ctx, "token refresh", data)
}

func (c *Client) requestToken(ctx context.Context, endpoint string, data url.Values) (*domain.Credential, error) {
	status, body, err := c.postForm(ctx, endpoint, c.apiBaseURL+tokenPath, data)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, decodeError(endpoint, status, body)
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode token response: %w", endpoint, err)
	}
	if resp.AccessToken == "" {
		// The provider reports some token failures inside a 2xx body.
		return nil, decodeError(endpoint, status, body)
	}

	return &domain.Credential{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		OpenID:       resp.OpenID,
		Scope:        resp.Scope,
		Expiry:       time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// Revoke invalidates the access token with the provider.
func (c *Client) Revoke(ctx context.Context, accessToken string) error {
	const endpoint = "token revoke"

	if c.clientKey == "" || c.clientSecret == "" {
		return domain.ErrNotConfigured
	}

	data := url.Values{}
	data.Set("client_key", c.clientKey)
	data.Set("client_secret", c.clientSecret)
	data.Set("token", accessToken)

	status, body, err := c.postForm(ctx, endpoint, c.apiBaseURL+revokePath, data)
	if err != nil {
		return err
	}
	if !is2xx(status) {
		return decodeError(endpoint, status, body)
	}
	return nil
}

// userInfoFields are the profile fields requested from the user-info
// endpoint.
const userInfoFields = "open_id,union_id,avatar_url,display_name"

// GetUserInfo fetches the account snapshot.
func (c *Client) GetUserInfo(ctx context.Context, accessToken string) (*domain.UserProfile, error) {
	const endpoint = "user info"

	rawURL := c.apiBaseURL + userInfoPath + "?fields=" + url.QueryEscape(userInfoFields)
	status, body, err := c.getJSON(ctx, endpoint, rawURL, accessToken)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, decodeError(endpoint, status, body)
	}

	var resp struct {
		Data struct {
			User domain.UserProfile `json:"user"`
		} `json:"data"`
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	if err := envelopeError(endpoint, status, resp.Error); err != nil {
		return nil, err
	}
	return &resp.Data.User, nil
}

// GetCreatorInfo fetches the creator's posting capabilities. The
// provider limits this endpoint to 20 requests per minute per token;
// the client does not throttle, callers serialise.
func (c *Client) GetCreatorInfo(ctx context.Context, accessToken string) (*domain.CreatorProfile, error) {
	const endpoint = "creator info"

	status, body, err := c.postJSON(ctx, endpoint, c.apiBaseURL+creatorInfoPath, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, decodeError(endpoint, status, body)
	}

	var resp struct {
		Data  domain.CreatorProfile `json:"data"`
		Error apiError              `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	if err := envelopeError(endpoint, status, resp.Error); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
