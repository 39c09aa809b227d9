package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the stored TikTok tokens",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if authService == nil {
			return errors.New("auth service not configured")
		}

		err := authService.Logout(context.Background())
		if errors.Is(err, domain.ErrNotAuthenticated) {
			cmd.Println("Not logged in.")
			return nil
		}
		if err != nil {
			return err
		}

		cmd.Println("Logged out. The access token has been revoked.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
