package driving

import (
	"context"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// AuthService owns the OAuth token lifecycle: acquiring, persisting,
// refreshing and revoking the stored credential.
type AuthService interface {
	// BeginLogin returns the consent-screen URL and the authorization
	// request carrying the state nonce to verify the callback against.
	BeginLogin(redirectURI string) (string, *domain.AuthorizationRequest, error)

	// CompleteLogin exchanges the callback code for tokens and
	// persists them.
	CompleteLogin(ctx context.Context, code, redirectURI string) (*domain.Credential, error)

	// AccessToken returns a valid bearer token, refreshing the stored
	// credential when it is close to expiry and a refresh token is
	// available. Returns domain.ErrNotAuthenticated when no live
	// credential is stored.
	AccessToken(ctx context.Context) (string, error)

	// IsAuthenticated reports whether a usable credential is stored.
	IsAuthenticated(ctx context.Context) bool

	// Logout revokes the access token with the provider and clears
	// the stored credential.
	Logout(ctx context.Context) error

	// UserInfo fetches the account snapshot for the stored credential.
	UserInfo(ctx context.Context) (*domain.UserProfile, error)

	// CreatorInfo fetches the creator's posting capabilities,
	// serialising calls to stay inside the provider's 20/min limit.
	CreatorInfo(ctx context.Context) (*domain.CreatorProfile, error)
}
