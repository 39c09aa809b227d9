package driven

import (
	"context"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// PostClient drives the provider's asynchronous publish pipeline.
// It holds no state across calls; the bearer token is passed per call.
type PostClient interface {
	// InitVideoPost submits a pull-by-URL publish job and returns the
	// provider's opaque publish id. Known provider error codes are
	// mapped to specific user-facing reasons; unknown ones carry the
	// raw status and body.
	InitVideoPost(ctx context.Context, accessToken string, req domain.PublishRequest) (*domain.PublishJob, error)

	// FetchStatus reads the current state of a publish job.
	FetchStatus(ctx context.Context, accessToken, publishID string) (*domain.PublishJob, error)
}
