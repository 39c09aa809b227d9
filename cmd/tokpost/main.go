// Command tokpost publishes videos to TikTok by URL from the terminal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/monaruku/tokpost-cli/internal/adapters/driven/config/file"
	"github.com/monaruku/tokpost-cli/internal/adapters/driven/storage/sqlite"
	"github.com/monaruku/tokpost-cli/internal/adapters/driven/tiktok"
	"github.com/monaruku/tokpost-cli/internal/adapters/driving/cli"
	"github.com/monaruku/tokpost-cli/internal/core/services"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg := configStore.Get()

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening local storage: %w", err)
	}
	defer store.Close()

	client := tiktok.NewClient(cfg.ClientKey, cfg.ClientSecret)

	authService := services.NewAuthService(
		store.CredentialStore(), client, tiktok.NewCreatorInfoLimiter(),
		services.WithLoginScopes(cfg.Scopes))

	var publishOpts []services.PublishOption
	if cfg.PollIntervalMs > 0 {
		publishOpts = append(publishOpts,
			services.WithPollInterval(time.Duration(cfg.PollIntervalMs)*time.Millisecond))
	}
	if cfg.PollMaxAttempts > 0 {
		publishOpts = append(publishOpts,
			services.WithMaxStatusChecks(cfg.PollMaxAttempts))
	}
	publishService := services.NewPublishService(
		authService, client, store.PublishHistoryStore(), publishOpts...)

	cli.SetVersion(version)
	cli.SetDependencies(cli.Dependencies{
		Auth:    authService,
		Publish: publishService,
		Config:  configStore,
	})
	return cli.Execute()
}
