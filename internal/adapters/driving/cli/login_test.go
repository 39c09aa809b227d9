package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// TestLoginCmd_NotConfigured tests that login refuses to start the
// browser flow before client credentials are set
func TestLoginCmd_NotConfigured(t *testing.T) {
	auth, _, cleanup := setupTestServices(t)
	defer cleanup()
	auth.authenticated = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"login"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.Contains(t, err.Error(), "tokpost config set")
}

// TestLoginCmd_AlreadyLoggedIn tests the short-circuit for an existing session
func TestLoginCmd_AlreadyLoggedIn(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"login"})
	defer func() { rootCmd.SetArgs(nil) }()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Already logged in")
}
