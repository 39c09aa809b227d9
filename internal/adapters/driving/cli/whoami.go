package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authorized TikTok account",
	RunE:  runWhoami,
}

var creatorCmd = &cobra.Command{
	Use:   "creator",
	Short: "Show the account's posting capabilities",
	Long: `Show the account's posting capabilities.

Fetches a fresh creator snapshot from TikTok: the privacy levels you
may post with, which interactions are disabled in your app settings,
and the maximum video duration for your account.`,
	RunE: runCreator,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(creatorCmd)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	profile, err := authService.UserInfo(context.Background())
	if errors.Is(err, domain.ErrNotAuthenticated) {
		cmd.Println("Not logged in. Run 'tokpost login' first.")
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Printf("Display name: %s\n", profile.DisplayName)
	cmd.Printf("Open ID:      %s\n", profile.OpenID)
	if profile.UnionID != "" {
		cmd.Printf("Union ID:     %s\n", profile.UnionID)
	}
	if profile.AvatarURL != "" {
		cmd.Printf("Avatar:       %s\n", profile.AvatarURL)
	}
	return nil
}

func runCreator(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	creator, err := authService.CreatorInfo(context.Background())
	if errors.Is(err, domain.ErrNotAuthenticated) {
		cmd.Println("Not logged in. Run 'tokpost login' first.")
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Printf("Creator:            %s (@%s)\n", creator.Nickname, creator.Username)
	cmd.Println("Available privacy levels:")
	for _, level := range creator.PrivacyLevelOptions {
		cmd.Printf("  - %s\n", level.Description())
	}
	cmd.Printf("Comments disabled:  %v\n", creator.CommentDisabled)
	cmd.Printf("Duet disabled:      %v\n", creator.DuetDisabled)
	cmd.Printf("Stitch disabled:    %v\n", creator.StitchDisabled)
	cmd.Printf("Max video duration: %.0fs\n", creator.MaxVideoDurationSec)
	return nil
}
