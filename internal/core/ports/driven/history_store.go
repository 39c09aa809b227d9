package driven

import (
	"context"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// PublishHistoryStore records the local outcome of publish attempts.
type PublishHistoryStore interface {
	// Record stores the attempt. Re-recording the same ID updates the
	// stored status and fail reason.
	Record(ctx context.Context, attempt domain.PublishAttempt) error

	// List returns the most recent attempts, newest first, up to limit.
	// A non-positive limit returns all attempts.
	List(ctx context.Context, limit int) ([]domain.PublishAttempt, error)
}
