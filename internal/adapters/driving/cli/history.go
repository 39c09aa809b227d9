package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past publish attempts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if publishService == nil {
			return errors.New("publish service not configured")
		}

		attempts, err := publishService.History(context.Background(), historyLimit)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			cmd.Println("No publish attempts recorded yet.")
			return nil
		}

		for _, a := range attempts {
			line := a.CreatedAt.Local().Format("2006-01-02 15:04") + "  " + string(a.Status)
			if a.Title != "" {
				line += "  " + a.Title
			}
			cmd.Println(line)
			if a.PublishID != "" {
				cmd.Printf("    publish id: %s\n", a.PublishID)
			}
			if a.FailReason != "" {
				cmd.Printf("    fail reason: %s\n", a.FailReason)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of attempts to show")
	rootCmd.AddCommand(historyCmd)
}
