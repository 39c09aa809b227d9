package services

import (
	"context"
	"fmt"
	"time"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driven"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driving"
	"github.com/monaruku/tokpost-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// CreatorInfoGate serialises creator-info calls to stay inside the
// provider's per-token rate limit.
type CreatorInfoGate interface {
	Wait(ctx context.Context) error
}

// AuthService manages the OAuth token lifecycle against the provider.
type AuthService struct {
	store  driven.CredentialStore
	client driven.OAuthClient
	gate   CreatorInfoGate
	scopes []string
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithLoginScopes overrides the scopes requested at login. Empty means
// the default scope set.
func WithLoginScopes(scopes []string) AuthOption {
	return func(s *AuthService) {
		s.scopes = scopes
	}
}

// NewAuthService creates a new auth service. gate may be nil, in which
// case creator-info calls are not throttled locally.
func NewAuthService(store driven.CredentialStore, client driven.OAuthClient, gate CreatorInfoGate, opts ...AuthOption) *AuthService {
	s := &AuthService{
		store:  store,
		client: client,
		gate:   gate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginLogin returns the consent-screen URL.
func (s *AuthService) BeginLogin(redirectURI string) (string, *domain.AuthorizationRequest, error) {
	return s.client.BuildAuthorizationURL(redirectURI, s.scopes)
}

// CompleteLogin exchanges the callback code for tokens and persists them.
func (s *AuthService) CompleteLogin(ctx context.Context, code, redirectURI string) (*domain.Credential, error) {
	cred, err := s.client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, *cred); err != nil {
		return nil, fmt.Errorf("persisting credential: %w", err)
	}
	logger.Debug("auth: logged in as %s", cred.OpenID)
	return cred, nil
}

// refreshMargin is how close to expiry a token may get before it is
// refreshed proactively. The store clears expired state on read, so
// refresh must happen while the credential is still live.
const refreshMargin = 5 * time.Minute

// AccessToken returns a valid bearer token, refreshing the stored
// credential when it is close to expiry and a refresh token exists.
func (s *AuthService) AccessToken(ctx context.Context) (string, error) {
	cred, err := s.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", domain.ErrNotAuthenticated
	}

	if time.Until(cred.Expiry) < refreshMargin && cred.RefreshToken != "" {
		refreshed, err := s.RefreshWith(ctx, cred)
		if err == nil {
			return refreshed.AccessToken, nil
		}
		// The current token is still live; use it and let the next
		// call retry the refresh.
		logger.Warn("auth: token refresh failed: %v", err)
	}

	return cred.AccessToken, nil
}

// RefreshWith refreshes the stored credential using the given refresh
// token and persists the result. Fields the provider omits from the
// refresh response are carried over from the prior credential.
func (s *AuthService) RefreshWith(ctx context.Context, prev *domain.Credential) (*domain.Credential, error) {
	if prev == nil || prev.RefreshToken == "" {
		return nil, domain.ErrNotAuthenticated
	}
	cred, err := s.client.Refresh(ctx, prev.RefreshToken)
	if err != nil {
		return nil, err
	}
	cred.Merge(prev)
	if err := s.store.Save(ctx, *cred); err != nil {
		return nil, fmt.Errorf("persisting refreshed credential: %w", err)
	}
	logger.Debug("auth: refreshed access token")
	return cred, nil
}

// IsAuthenticated reports whether a usable credential is stored.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.store.IsValid(ctx)
}

// Logout revokes the access token with the provider and clears the
// stored credential. A failed revocation leaves the credential in
// place so the user can retry.
func (s *AuthService) Logout(ctx context.Context) error {
	cred, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	if cred == nil {
		return domain.ErrNotAuthenticated
	}
	if err := s.client.Revoke(ctx, cred.AccessToken); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return s.store.Clear(ctx)
}

// UserInfo fetches the account snapshot for the stored credential.
func (s *AuthService) UserInfo(ctx context.Context) (*domain.UserProfile, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.GetUserInfo(ctx, token)
}

// CreatorInfo fetches the creator's posting capabilities, waiting on
// the rate gate first.
func (s *AuthService) CreatorInfo(ctx context.Context) (*domain.CreatorProfile, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if s.gate != nil {
		if err := s.gate.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return s.client.GetCreatorInfo(ctx, token)
}
