package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSetCmd_StoresCredentials(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set",
		"--client-key", "awkey",
		"--client-secret", "shh",
	})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Configuration saved")

	cfg := configStore.Get()
	assert.Equal(t, "awkey", cfg.ClientKey)
	assert.Equal(t, "shh", cfg.ClientSecret)
}

func TestConfigSetCmd_UpdatesPolling(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"config", "set",
		"--poll-interval-ms", "3000",
		"--poll-max-attempts", "5",
	})
	defer func() { rootCmd.SetArgs(nil) }()

	require.NoError(t, rootCmd.Execute())

	cfg := configStore.Get()
	assert.Equal(t, 3000, cfg.PollIntervalMs)
	assert.Equal(t, 5, cfg.PollMaxAttempts)
}

func TestConfigShowCmd_MasksSecret(t *testing.T) {
	_, _, cleanup := setupTestServices(t)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"config", "set",
		"--client-key", "awkey",
		"--client-secret", "supersecret123",
	})
	require.NoError(t, rootCmd.Execute())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() { rootCmd.SetArgs(nil) }()

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "awkey")
	assert.NotContains(t, out, "supersecret123")
	assert.Contains(t, out, "supe...t123")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", maskSecret(""))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "abcd...wxyz", maskSecret("abcdefgh-stuvwxyz"))
}

func TestSplitScopes(t *testing.T) {
	assert.Equal(t, []string{"user.info.basic", "video.publish"},
		splitScopes("user.info.basic, video.publish"))
	assert.Nil(t, splitScopes(""))
	assert.Nil(t, splitScopes(" , "))
}
