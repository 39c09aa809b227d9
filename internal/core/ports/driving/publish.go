package driving

import (
	"context"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// PublishOutcome is the result of a completed publish attempt.
type PublishOutcome struct {
	// Job is the terminal job state.
	Job domain.PublishJob
	// Notices are user-visible adjustments made before submission,
	// such as a forced privacy-level substitution.
	Notices []string
}

// PublishService validates, submits and polls a publish attempt to a
// terminal state.
type PublishService interface {
	// Publish runs the full init-then-poll workflow for one request.
	// videoDurationSec is the caller-measured source duration; it is
	// checked locally against the creator's maximum before any
	// network call. Only one publish attempt should be in flight at a
	// time; the caller serialises submissions.
	Publish(ctx context.Context, req domain.PublishRequest, videoDurationSec float64) (*PublishOutcome, error)

	// History lists locally recorded publish attempts, newest first.
	History(ctx context.Context, limit int) ([]domain.PublishAttempt, error)
}
