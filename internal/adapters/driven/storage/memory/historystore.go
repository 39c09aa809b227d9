package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.PublishHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of
// driven.PublishHistoryStore for testing.
type HistoryStore struct {
	mu       sync.RWMutex
	attempts map[string]domain.PublishAttempt
}

// NewHistoryStore creates a new in-memory publish history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		attempts: make(map[string]domain.PublishAttempt),
	}
}

// Record stores the attempt, updating status and fail reason when the
// ID already exists.
func (s *HistoryStore) Record(_ context.Context, attempt domain.PublishAttempt) error {
	if attempt.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.attempts[attempt.ID]; ok {
		prev.PublishID = attempt.PublishID
		prev.Status = attempt.Status
		prev.FailReason = attempt.FailReason
		s.attempts[attempt.ID] = prev
		return nil
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	s.attempts[attempt.ID] = attempt
	return nil
}

// List returns the most recent attempts, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.PublishAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PublishAttempt, 0, len(s.attempts))
	for _, a := range s.attempts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
