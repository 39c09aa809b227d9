package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/monaruku/tokpost-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tokpost configuration",
	Long: `Manage tokpost configuration.

tokpost needs the client key and client secret of your TikTok
developer app. Create one at https://developers.tiktok.com/ with the
Content Posting API product enabled and Direct Post configured.`,
}

// Flags for config set.
var (
	configClientKey    string
	configClientSecret string
	configScopes       string
	configRedirectPort int
	configPollInterval int
	configPollAttempts int
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long: `Set configuration values.

The client secret is prompted for without echo when --client-secret
is not given.

Examples:
  tokpost config set --client-key awabc123
  tokpost config set --poll-interval-ms 3000`,
	RunE: runConfigSet,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

func init() {
	configSetCmd.Flags().StringVar(&configClientKey, "client-key", "", "TikTok app client key")
	configSetCmd.Flags().StringVar(&configClientSecret, "client-secret", "",
		"TikTok app client secret (prompted for if omitted alongside --client-key)")
	configSetCmd.Flags().StringVar(&configScopes, "scopes", "",
		"OAuth scopes, comma-separated (empty uses the defaults)")
	configSetCmd.Flags().IntVar(&configRedirectPort, "redirect-port", 0,
		"Fixed port for the login callback (0 picks a free one)")
	configSetCmd.Flags().IntVar(&configPollInterval, "poll-interval-ms", 0,
		"Delay between publish status polls")
	configSetCmd.Flags().IntVar(&configPollAttempts, "poll-max-attempts", 0,
		"Maximum number of publish status polls")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	// Setting a new client key without a secret prompts for one.
	if configClientKey != "" && configClientSecret == "" {
		cmd.Print("Client secret: ")
		configClientSecret = readSecret()
		cmd.Println()
		if configClientSecret == "" {
			return errors.New("a client secret is required")
		}
	}

	err := configStore.Update(func(c *file.Config) {
		if configClientKey != "" {
			c.ClientKey = configClientKey
		}
		if configClientSecret != "" {
			c.ClientSecret = configClientSecret
		}
		if cmd.Flags().Changed("scopes") {
			c.Scopes = splitScopes(configScopes)
		}
		if cmd.Flags().Changed("redirect-port") {
			c.RedirectPort = configRedirectPort
		}
		if cmd.Flags().Changed("poll-interval-ms") {
			c.PollIntervalMs = configPollInterval
		}
		if cmd.Flags().Changed("poll-max-attempts") {
			c.PollMaxAttempts = configPollAttempts
		}
	})
	if err != nil {
		return err
	}

	cmd.Printf("Configuration saved to %s\n", configStore.Path())
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg := configStore.Get()
	cmd.Printf("Config file:       %s\n", configStore.Path())
	cmd.Printf("Client key:        %s\n", orUnset(cfg.ClientKey))
	cmd.Printf("Client secret:     %s\n", maskSecret(cfg.ClientSecret))
	if len(cfg.Scopes) > 0 {
		cmd.Printf("Scopes:            %s\n", strings.Join(cfg.Scopes, ","))
	} else {
		cmd.Println("Scopes:            (defaults)")
	}
	if cfg.RedirectPort != 0 {
		cmd.Printf("Redirect port:     %d\n", cfg.RedirectPort)
	}
	if cfg.PollIntervalMs != 0 {
		cmd.Printf("Poll interval:     %dms\n", cfg.PollIntervalMs)
	}
	if cfg.PollMaxAttempts != 0 {
		cmd.Printf("Poll max attempts: %d\n", cfg.PollMaxAttempts)
	}
	return nil
}

func splitScopes(s string) []string {
	var scopes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			scopes = append(scopes, part)
		}
	}
	return scopes
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
