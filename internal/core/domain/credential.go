package domain

import (
	"strings"
	"time"
)

// Credential represents stored OAuth tokens for the TikTok open API.
type Credential struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens. May be empty:
	// a refresh response is allowed to omit a rotated refresh token.
	RefreshToken string `json:"refresh_token,omitempty"`
	// OpenID is the provider-assigned account identifier.
	OpenID string `json:"open_id,omitempty"`
	// Scope is the comma-joined scope string granted by the provider.
	Scope string `json:"scope,omitempty"`
	// Expiry is the absolute time the access token expires.
	Expiry time.Time `json:"expiry"`
}

// IsValid returns true if the credential carries an access token
// that has not yet expired. A partial or expired credential is
// treated the same as an absent one.
func (c *Credential) IsValid() bool {
	if c == nil || c.AccessToken == "" {
		return false
	}
	return time.Now().Before(c.Expiry)
}

// Merge fills fields a token response is allowed to omit from the
// previous credential. A refresh that returns no rotated refresh
// token keeps the old one; an omitted scope is treated as
// scope-preserving.
func (c *Credential) Merge(prev *Credential) {
	if prev == nil {
		return
	}
	if c.RefreshToken == "" {
		c.RefreshToken = prev.RefreshToken
	}
	if c.Scope == "" {
		c.Scope = prev.Scope
	}
	if c.OpenID == "" {
		c.OpenID = prev.OpenID
	}
}

// AuthorizationRequest holds the parameters for the provider's consent
// screen. It is constructed per login attempt and never persisted.
type AuthorizationRequest struct {
	// ClientKey is the application's client key.
	ClientKey string
	// RedirectURI is where the provider sends the user back.
	RedirectURI string
	// Scopes are the requested permission scopes.
	Scopes []string
	// State is a random nonce echoed back on the callback so the
	// caller can correlate it with this request.
	State string
	// ResponseType is always "code" for the authorization code flow.
	ResponseType string
}

// ScopeString returns the comma-joined scope parameter as the
// provider expects it.
func (r *AuthorizationRequest) ScopeString() string {
	return strings.Join(r.Scopes, ",")
}

// DefaultScopes are the scopes needed to read account info and
// publish videos.
var DefaultScopes = []string{"user.info.basic", "video.publish"}

// UserProfile is the account snapshot returned by the user-info endpoint.
type UserProfile struct {
	// OpenID is the provider-assigned account identifier.
	OpenID string `json:"open_id"`
	// UnionID identifies the user across apps of the same developer.
	UnionID string `json:"union_id,omitempty"`
	// DisplayName is the profile name.
	DisplayName string `json:"display_name"`
	// AvatarURL points at the profile image.
	AvatarURL string `json:"avatar_url"`
}
