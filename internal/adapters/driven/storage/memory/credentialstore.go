// Package memory provides in-memory store implementations used by
// tests and by the service layer's own unit tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of
// driven.CredentialStore for testing.
type CredentialStore struct {
	mu   sync.RWMutex
	cred *domain.Credential

	// Now lets tests control the clock. Defaults to time.Now.
	Now func() time.Time
}

// NewCredentialStore creates a new in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{Now: time.Now}
}

// Save persists the credential, overwriting any prior one.
func (s *CredentialStore) Save(_ context.Context, cred domain.Credential) error {
	if cred.AccessToken == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	return nil
}

// Get returns the stored credential if valid, clearing stale state
// as a side effect.
func (s *CredentialStore) Get(_ context.Context) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil, nil
	}
	if s.cred.AccessToken == "" || !s.Now().Before(s.cred.Expiry) {
		s.cred = nil
		return nil, nil
	}
	cp := *s.cred
	return &cp, nil
}

// IsValid reports whether a valid credential is stored.
func (s *CredentialStore) IsValid(ctx context.Context) bool {
	cred, err := s.Get(ctx)
	return err == nil && cred != nil
}

// Clear removes the stored credential.
func (s *CredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
