// Package sqlite persists the stored credential and the local publish
// history in a SQLite database under the tokpost data directory.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/monaruku/tokpost-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/monaruku/tokpost-cli/internal/core/domain"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driven"
	"github.com/monaruku/tokpost-cli/internal/logger"
)

// Store is a SQLite-backed storage providing the credential and
// publish-history store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.tokpost/data/tokpost.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tokpost", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "tokpost.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CredentialStore returns a CredentialStore interface backed by this store.
func (s *Store) CredentialStore() driven.CredentialStore {
	return &credentialStore{store: s}
}

// PublishHistoryStore returns a PublishHistoryStore interface backed by this store.
func (s *Store) PublishHistoryStore() driven.PublishHistoryStore {
	return &publishHistoryStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// =============================================================================
// CredentialStore Implementation
// =============================================================================

type credentialStore struct {
	store *Store
}

var _ driven.CredentialStore = (*credentialStore)(nil)

// Save persists the credential, overwriting any prior one.
func (s *credentialStore) Save(ctx context.Context, cred domain.Credential) error {
	if cred.AccessToken == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO credential (id, access_token, refresh_token, open_id, scope, expires_at_ms, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			open_id = excluded.open_id,
			scope = excluded.scope,
			expires_at_ms = excluded.expires_at_ms,
			updated_at = excluded.updated_at
	`, cred.AccessToken, cred.RefreshToken, cred.OpenID, cred.Scope,
		cred.Expiry.UnixMilli(), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// Get returns the stored credential if valid. An expired or partial
// row is deleted as a side effect so every read also garbage-collects
// stale state.
func (s *credentialStore) Get(ctx context.Context) (*domain.Credential, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, open_id, scope, expires_at_ms
		FROM credential WHERE id = 1
	`)

	var cred domain.Credential
	var expiresAtMs int64
	if err := row.Scan(&cred.AccessToken, &cred.RefreshToken, &cred.OpenID,
		&cred.Scope, &expiresAtMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning credential: %w", err)
	}
	cred.Expiry = time.UnixMilli(expiresAtMs)

	if !cred.IsValid() {
		logger.Debug("storage: clearing stale credential")
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &cred, nil
}

// IsValid reports whether a valid credential is stored, clearing
// stale state the same way Get does.
func (s *credentialStore) IsValid(ctx context.Context) bool {
	cred, err := s.Get(ctx)
	return err == nil && cred != nil
}

// Clear removes the stored credential unconditionally.
func (s *credentialStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM credential WHERE id = 1"); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}
	return nil
}

// =============================================================================
// PublishHistoryStore Implementation
// =============================================================================

type publishHistoryStore struct {
	store *Store
}

var _ driven.PublishHistoryStore = (*publishHistoryStore)(nil)

// Record stores or updates a publish attempt.
func (s *publishHistoryStore) Record(ctx context.Context, attempt domain.PublishAttempt) error {
	if attempt.ID == "" {
		return domain.ErrInvalidInput
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO publish_attempts (id, publish_id, title, privacy_level, video_url, status, fail_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			publish_id = excluded.publish_id,
			status = excluded.status,
			fail_reason = excluded.fail_reason
	`, attempt.ID, attempt.PublishID, attempt.Title, string(attempt.PrivacyLevel),
		attempt.VideoURL, string(attempt.Status), attempt.FailReason, attempt.CreatedAt)

	if err != nil {
		return fmt.Errorf("recording publish attempt: %w", err)
	}
	return nil
}

// List returns the most recent attempts, newest first.
func (s *publishHistoryStore) List(ctx context.Context, limit int) ([]domain.PublishAttempt, error) {
	query := `
		SELECT id, publish_id, title, privacy_level, video_url, status, fail_reason, created_at
		FROM publish_attempts ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing publish attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.PublishAttempt
	for rows.Next() {
		var a domain.PublishAttempt
		var privacy, status string
		if err := rows.Scan(&a.ID, &a.PublishID, &a.Title, &privacy,
			&a.VideoURL, &status, &a.FailReason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning publish attempt: %w", err)
		}
		a.PrivacyLevel = domain.PrivacyLevel(privacy)
		a.Status = domain.JobStatus(status)
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publish attempts: %w", err)
	}

	return attempts, nil
}
