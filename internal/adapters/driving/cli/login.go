package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/monaruku/tokpost-cli/internal/adapters/driving/oauth"
	"github.com/monaruku/tokpost-cli/internal/logger"
)

// loginTimeout bounds the wait for the browser round trip.
const loginTimeout = 3 * time.Minute

var loginNoBrowser bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize tokpost with your TikTok account",
	Long: `Authorize tokpost with your TikTok account.

Opens the TikTok consent screen in your browser and waits for the
redirect on a local port. The resulting tokens are stored locally;
run 'tokpost logout' to revoke them.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false,
		"Print the authorization URL instead of opening a browser")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	ctx := context.Background()

	if authService.IsAuthenticated(ctx) {
		cmd.Println("Already logged in. Run 'tokpost logout' first to switch accounts.")
		return nil
	}

	cfg, err := configStore.Require()
	if err != nil {
		return fmt.Errorf("client credentials missing, run 'tokpost config set' first: %w", err)
	}
	port := cfg.RedirectPort
	if port == 0 {
		p, err := oauth.FindAvailablePort(8910, 8999)
		if err != nil {
			return fmt.Errorf("finding callback port: %w", err)
		}
		port = p
	}
	redirectURI := fmt.Sprintf("http://localhost:%d/callback", port)

	authURL, authReq, err := authService.BeginLogin(redirectURI)
	if err != nil {
		return err
	}

	server := oauth.NewCallbackServer(port, authReq.State)
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting callback server: %w", err)
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Warn("stopping callback server: %v", err)
		}
	}()

	if loginNoBrowser {
		cmd.Println("Open this URL in your browser to authorize:")
		cmd.Println()
		cmd.Println("  " + authURL)
	} else {
		cmd.Println("Opening your browser for TikTok authorization...")
		if err := oauth.OpenBrowser(authURL); err != nil {
			logger.Warn("opening browser: %v", err)
			cmd.Println("Could not open a browser. Open this URL manually:")
			cmd.Println()
			cmd.Println("  " + authURL)
		}
	}
	cmd.Println()
	cmd.Println("Waiting for authorization...")

	code, err := server.WaitForCode(loginTimeout)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	cred, err := authService.CompleteLogin(ctx, code, redirectURI)
	if err != nil {
		return err
	}

	cmd.Println()
	if profile, err := authService.UserInfo(ctx); err == nil {
		cmd.Printf("Logged in as %s.\n", profile.DisplayName)
	} else {
		logger.Debug("fetching user info after login: %v", err)
		cmd.Printf("Logged in (open id %s).\n", cred.OpenID)
	}
	return nil
}
