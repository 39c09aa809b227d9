// Package cli implements the tokpost command tree. Commands hold no
// business logic; they parse flags, call the driving ports and render
// results.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/monaruku/tokpost-cli/internal/adapters/driven/config/file"
	"github.com/monaruku/tokpost-cli/internal/core/ports/driving"
	"github.com/monaruku/tokpost-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by main before Execute.
var (
	authService    driving.AuthService
	publishService driving.PublishService
	configStore    *file.Store
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tokpost",
	Short: "Publish videos to TikTok from the command line",
	Long: `tokpost publishes videos to TikTok by URL.

Point it at a video that is already hosted somewhere (a CDN, object
storage, your own server) and it submits a pull-by-URL publish job,
then polls until TikTok reports a terminal state.

Getting started:
  tokpost config set --client-key YOUR_KEY     # store app credentials
  tokpost login                                # authorize via browser
  tokpost post --url https://cdn.example.com/clip.mp4 --title "My clip" --privacy public`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Dependencies carries the wired services from main into the command tree.
type Dependencies struct {
	Auth    driving.AuthService
	Publish driving.PublishService
	Config  *file.Store
}

// SetDependencies injects the services the commands run against.
func SetDependencies(deps Dependencies) {
	authService = deps.Auth
	publishService = deps.Publish
	configStore = deps.Config
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
