package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monaruku/tokpost-cli/internal/adapters/driven/config/file"
	"github.com/monaruku/tokpost-cli/internal/core/domain"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driving"
)

// --- Test doubles for the driving ports ---

type stubAuthService struct {
	authenticated bool
	profile       *domain.UserProfile
	creator       *domain.CreatorProfile
	logoutErr     error
	logoutCalls   int
}

func (s *stubAuthService) BeginLogin(redirectURI string) (string, *domain.AuthorizationRequest, error) {
	return "https://example.com/authorize", &domain.AuthorizationRequest{State: "state"}, nil
}

func (s *stubAuthService) CompleteLogin(_ context.Context, _, _ string) (*domain.Credential, error) {
	return &domain.Credential{AccessToken: "act"}, nil
}

func (s *stubAuthService) AccessToken(_ context.Context) (string, error) {
	if !s.authenticated {
		return "", domain.ErrNotAuthenticated
	}
	return "act", nil
}

func (s *stubAuthService) IsAuthenticated(_ context.Context) bool { return s.authenticated }

func (s *stubAuthService) Logout(_ context.Context) error {
	s.logoutCalls++
	if s.logoutErr != nil {
		return s.logoutErr
	}
	if !s.authenticated {
		return domain.ErrNotAuthenticated
	}
	s.authenticated = false
	return nil
}

func (s *stubAuthService) UserInfo(_ context.Context) (*domain.UserProfile, error) {
	if !s.authenticated {
		return nil, domain.ErrNotAuthenticated
	}
	if s.profile == nil {
		return nil, errors.New("no profile")
	}
	return s.profile, nil
}

func (s *stubAuthService) CreatorInfo(_ context.Context) (*domain.CreatorProfile, error) {
	if !s.authenticated {
		return nil, domain.ErrNotAuthenticated
	}
	if s.creator == nil {
		return nil, errors.New("no creator")
	}
	return s.creator, nil
}

type stubPublishService struct {
	outcome  *driving.PublishOutcome
	err      error
	attempts []domain.PublishAttempt
	lastReq  domain.PublishRequest
}

func (s *stubPublishService) Publish(_ context.Context, req domain.PublishRequest, _ float64) (*driving.PublishOutcome, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func (s *stubPublishService) History(_ context.Context, limit int) ([]domain.PublishAttempt, error) {
	if limit > 0 && len(s.attempts) > limit {
		return s.attempts[:limit], nil
	}
	return s.attempts, nil
}

// setupTestServices wires stub services into the command tree and
// returns them with a cleanup restoring the previous wiring.
func setupTestServices(t *testing.T) (*stubAuthService, *stubPublishService, func()) {
	t.Helper()

	prevAuth, prevPublish, prevConfig := authService, publishService, configStore

	auth := &stubAuthService{authenticated: true}
	publish := &stubPublishService{}
	cfg, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating config store: %v", err)
	}
	SetDependencies(Dependencies{Auth: auth, Publish: publish, Config: cfg})

	return auth, publish, func() {
		authService, publishService, configStore = prevAuth, prevPublish, prevConfig
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "tokpost", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "login")
	assert.Contains(t, commandNames, "logout")
	assert.Contains(t, commandNames, "whoami")
	assert.Contains(t, commandNames, "creator")
	assert.Contains(t, commandNames, "post")
	assert.Contains(t, commandNames, "history")
	assert.Contains(t, commandNames, "config")
	assert.Contains(t, commandNames, "version")
}
