package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driven"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driving"
	"github.com/monaruku/tokpost-cli/internal/logger"
)

// Ensure PublishService implements the interface.
var _ driving.PublishService = (*PublishService)(nil)

const (
	// defaultMaxStatusChecks bounds the polling loop. One extra
	// unconditional fetch runs after the loop.
	defaultMaxStatusChecks = 10
	// defaultPollInterval is the delay before each status poll.
	defaultPollInterval = 2 * time.Second
)

// PublishService runs the full validate, submit and poll workflow for
// a single video publish attempt.
type PublishService struct {
	auth    driving.AuthService
	posts   driven.PostClient
	history driven.PublishHistoryStore

	maxStatusChecks int
	pollInterval    time.Duration

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// PublishOption configures a PublishService.
type PublishOption func(*PublishService)

// WithPollInterval overrides the delay between status polls.
func WithPollInterval(d time.Duration) PublishOption {
	return func(s *PublishService) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithMaxStatusChecks overrides the polling attempt bound.
func WithMaxStatusChecks(n int) PublishOption {
	return func(s *PublishService) {
		if n > 0 {
			s.maxStatusChecks = n
		}
	}
}

// NewPublishService creates a new publish service. history may be nil,
// in which case attempts are not recorded locally.
func NewPublishService(auth driving.AuthService, posts driven.PostClient, history driven.PublishHistoryStore, opts ...PublishOption) *PublishService {
	s := &PublishService{
		auth:            auth,
		posts:           posts,
		history:         history,
		maxStatusChecks: defaultMaxStatusChecks,
		pollInterval:    defaultPollInterval,
		sleep:           sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Publish validates the request against the creator's capabilities,
// submits it exactly once, then polls until the job reaches a terminal
// state or the status-check budget runs out.
//
// A job that ends in FAILED is a successful orchestration: the outcome
// carries the terminal state and the caller inspects Job.Status. An
// error return means the job was never submitted, or its final state
// could not be determined.
func (s *PublishService) Publish(ctx context.Context, req domain.PublishRequest, videoDurationSec float64) (*driving.PublishOutcome, error) {
	logger.Section("publish")

	creator, err := s.auth.CreatorInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching creator info: %w", err)
	}

	var notices []string
	notices = append(notices, req.ApplyCreatorRestrictions(creator)...)

	if req.BrandedContent {
		level, notice, err := domain.ResolveBrandedPrivacy(req.PrivacyLevel, creator)
		if err != nil {
			return nil, err
		}
		if notice != "" {
			notices = append(notices, notice)
		}
		req.PrivacyLevel = level
	}

	if err := req.Validate(creator, videoDurationSec); err != nil {
		return nil, err
	}

	token, err := s.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	attemptID := uuid.NewString()
	s.record(ctx, domain.PublishAttempt{
		ID:           attemptID,
		Title:        req.Title,
		PrivacyLevel: req.PrivacyLevel,
		VideoURL:     req.VideoURL,
		Status:       domain.StatusPending,
		CreatedAt:    time.Now().UTC(),
	})

	job, err := s.posts.InitVideoPost(ctx, token, req)
	if err != nil {
		return nil, err
	}
	logger.Info("publish: submitted, publish id %s", job.PublishID)
	s.record(ctx, domain.PublishAttempt{
		ID:           attemptID,
		PublishID:    job.PublishID,
		Title:        req.Title,
		PrivacyLevel: req.PrivacyLevel,
		VideoURL:     req.VideoURL,
		Status:       job.Status,
	})

	final, err := s.awaitTerminal(ctx, token, job.PublishID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.PublishAttempt{
		ID:           attemptID,
		PublishID:    final.PublishID,
		Title:        req.Title,
		PrivacyLevel: req.PrivacyLevel,
		VideoURL:     req.VideoURL,
		Status:       final.Status,
		FailReason:   final.FailReason,
	})

	return &driving.PublishOutcome{Job: *final, Notices: notices}, nil
}

// awaitTerminal polls the job status until it is terminal. Transient
// fetch errors are retried; they consume an attempt but never abort
// the loop. After the budget is spent one last unconditional fetch
// runs, so a job that has just finished is still reported.
func (s *PublishService) awaitTerminal(ctx context.Context, token, publishID string) (*domain.PublishJob, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxStatusChecks; attempt++ {
		job, err := s.posts.FetchStatus(ctx, token, publishID)
		if err != nil {
			lastErr = err
			logger.Debug("publish: status check %d/%d failed: %v", attempt, s.maxStatusChecks, err)
		} else {
			logger.Debug("publish: status check %d/%d: %s", attempt, s.maxStatusChecks, job.Status)
			if job.Status.IsTerminal() {
				return job, nil
			}
		}

		if attempt < s.maxStatusChecks {
			if err := s.sleep(ctx, s.pollInterval); err != nil {
				return nil, err
			}
		}
	}

	// Final unconditional fetch outside the budget.
	job, err := s.posts.FetchStatus(ctx, token, publishID)
	if err == nil && job.Status.IsTerminal() {
		return job, nil
	}

	exhausted := &domain.StatusCheckExhaustedError{
		PublishID: publishID,
		Attempts:  s.maxStatusChecks + 1,
	}
	if lastErr != nil {
		logger.Warn("publish: last status error: %v", lastErr)
	}
	return nil, exhausted
}

// record writes a history row, logging rather than failing on error:
// local bookkeeping never blocks the publish itself.
func (s *PublishService) record(ctx context.Context, attempt domain.PublishAttempt) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, attempt); err != nil {
		logger.Warn("publish: recording history: %v", err)
	}
}

// History lists locally recorded publish attempts, newest first.
func (s *PublishService) History(ctx context.Context, limit int) ([]domain.PublishAttempt, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}
