package driven

import (
	"context"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// OAuthClient talks to the provider's fixed OAuth endpoint set. It
// fetches and normalises; it never persists and never retries. Retry
// policy belongs to the publish orchestrator alone.
type OAuthClient interface {
	// BuildAuthorizationURL constructs the consent-screen URL with a
	// freshly generated random state nonce. Pure, no I/O; the returned
	// request carries the nonce for callback correlation.
	BuildAuthorizationURL(redirectURI string, scopes []string) (string, *domain.AuthorizationRequest, error)

	// ExchangeCode swaps an authorization code for tokens. The caller
	// persists the result; fetching and storing are separate concerns.
	ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.Credential, error)

	// Refresh obtains a new access token. The response may omit a
	// rotated refresh token; the caller retains the prior one then.
	Refresh(ctx context.Context, refreshToken string) (*domain.Credential, error)

	// Revoke invalidates the access token with the provider.
	Revoke(ctx context.Context, accessToken string) error

	// GetUserInfo fetches the account snapshot.
	GetUserInfo(ctx context.Context, accessToken string) (*domain.UserProfile, error)

	// GetCreatorInfo fetches the creator's posting capabilities.
	// The provider rate-limits this to 20 requests per minute per
	// token; the client does not throttle, callers must.
	GetCreatorInfo(ctx context.Context, accessToken string) (*domain.CreatorProfile, error)
}
