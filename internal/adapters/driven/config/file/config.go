// Package file loads and saves the tokpost configuration as a TOML
// file in the user's config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// Config is the on-disk tokpost configuration.
type Config struct {
	// ClientKey is the application's client key issued by the provider.
	ClientKey string `toml:"client_key"`
	// ClientSecret is the application's client secret.
	ClientSecret string `toml:"client_secret"`
	// Scopes are the OAuth scopes requested at login. Empty means the
	// default scope set.
	Scopes []string `toml:"scopes,omitempty"`
	// RedirectPort is the loopback port for the login callback.
	// Zero means pick a free port.
	RedirectPort int `toml:"redirect_port,omitempty"`
	// PollMaxAttempts bounds the publish status polling loop.
	PollMaxAttempts int `toml:"poll_max_attempts,omitempty"`
	// PollIntervalMs is the delay between status polls.
	PollIntervalMs int `toml:"poll_interval_ms,omitempty"`
	// DataDir overrides the default database directory.
	DataDir string `toml:"data_dir,omitempty"`
}

// IsConfigured reports whether the credentials needed to talk to the
// provider are present.
func (c *Config) IsConfigured() bool {
	return c.ClientKey != "" && c.ClientSecret != ""
}

// Store is a TOML-file-backed configuration store.
type Store struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.tokpost/config.toml.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".tokpost")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get returns a copy of the current configuration.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Set replaces the configuration and persists immediately.
func (s *Store) Set(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	return s.save()
}

// Update applies fn to the configuration under the lock and persists
// the result.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.config)
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Restricted permissions: the file holds the client secret.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. A missing file leaves
// the zero config in place.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.config = Config{}
			return nil
		}
		return err
	}

	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.config = loaded
	return nil
}

// Require returns the configuration, or domain.ErrNotConfigured when
// the client credentials are missing.
func (s *Store) Require() (Config, error) {
	cfg := s.Get()
	if !cfg.IsConfigured() {
		return Config{}, domain.ErrNotConfigured
	}
	return cfg, nil
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}
