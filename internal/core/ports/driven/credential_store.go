package driven

import (
	"context"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// CredentialStore persists the single stored credential: access token,
// refresh token and absolute expiry. The store owns the credential
// exclusively; no other component retains a copy across calls.
type CredentialStore interface {
	// Save persists the credential, overwriting any prior one.
	Save(ctx context.Context, cred domain.Credential) error

	// Get returns the stored credential if it is valid, nil otherwise.
	// An expired or partial credential is cleared as a side effect:
	// every read also garbage-collects stale state.
	Get(ctx context.Context) (*domain.Credential, error)

	// IsValid reports whether a valid credential is stored, clearing
	// stale state the same way Get does.
	IsValid(ctx context.Context) bool

	// Clear removes all persisted fields unconditionally.
	Clear(ctx context.Context) error
}
