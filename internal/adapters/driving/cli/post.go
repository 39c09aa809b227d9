package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// Flags for post.
var (
	postURL            string
	postTitle          string
	postPrivacy        string
	postDisableDuet    bool
	postDisableStitch  bool
	postDisableComment bool
	postBrandOrganic   bool
	postBrandedContent bool
	postDisclosure     bool
	postCoverMs        int
	postDuration       float64
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a video to TikTok by URL",
	Long: `Publish a video to TikTok by URL.

The video must be hosted on a URL TikTok can reach (your domain must
be verified in the TikTok developer portal). tokpost submits a
pull-by-URL publish job and polls until TikTok reports a terminal
state.

Examples:
  tokpost post --url https://cdn.example.com/clip.mp4 --title "My clip" --privacy public

  # Promotional content for your own brand, private upload
  tokpost post --url https://cdn.example.com/ad.mp4 --privacy private \
    --disclosure --brand-organic

  # Paid partnership; private posting is not allowed and the level is
  # upgraded automatically
  tokpost post --url https://cdn.example.com/ad.mp4 --privacy followers \
    --disclosure --branded-content`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().StringVar(&postURL, "url", "", "URL of the video to publish (required)")
	postCmd.Flags().StringVar(&postTitle, "title", "", "Caption for the post")
	postCmd.Flags().StringVar(&postPrivacy, "privacy", "",
		"Privacy level: public, friends, followers or private (required)")
	postCmd.Flags().BoolVar(&postDisableDuet, "disable-duet", false, "Disallow duets")
	postCmd.Flags().BoolVar(&postDisableStitch, "disable-stitch", false, "Disallow stitches")
	postCmd.Flags().BoolVar(&postDisableComment, "disable-comment", false, "Disallow comments")
	postCmd.Flags().BoolVar(&postBrandOrganic, "brand-organic", false,
		"Content promotes your own brand")
	postCmd.Flags().BoolVar(&postBrandedContent, "branded-content", false,
		"Content promotes a third party (paid partnership)")
	postCmd.Flags().BoolVar(&postDisclosure, "disclosure", false,
		"Content is commercial and must carry a disclosure label")
	postCmd.Flags().IntVar(&postCoverMs, "cover-ms", 0,
		"Timestamp in milliseconds to take the cover frame from")
	postCmd.Flags().Float64Var(&postDuration, "duration", 0,
		"Video duration in seconds, checked against your account limit")
	_ = postCmd.MarkFlagRequired("url")
	_ = postCmd.MarkFlagRequired("privacy")
	rootCmd.AddCommand(postCmd)
}

// parsePrivacy maps the flag value onto the wire-level privacy enum.
func parsePrivacy(s string) (domain.PrivacyLevel, error) {
	switch strings.ToLower(s) {
	case "public":
		return domain.PrivacyPublic, nil
	case "friends":
		return domain.PrivacyFriends, nil
	case "followers":
		return domain.PrivacyFollowers, nil
	case "private":
		return domain.PrivacyPrivate, nil
	default:
		return "", fmt.Errorf("unknown privacy level %q (use public, friends, followers or private)", s)
	}
}

func runPost(cmd *cobra.Command, _ []string) error {
	if publishService == nil {
		return errors.New("publish service not configured")
	}
	if authService == nil || !authService.IsAuthenticated(context.Background()) {
		return errors.New("not logged in, run 'tokpost login' first")
	}

	privacy, err := parsePrivacy(postPrivacy)
	if err != nil {
		return err
	}

	req := domain.PublishRequest{
		Title:                postTitle,
		PrivacyLevel:         privacy,
		DisableDuet:          postDisableDuet,
		DisableStitch:        postDisableStitch,
		DisableComment:       postDisableComment,
		BrandOrganic:         postBrandOrganic,
		BrandedContent:       postBrandedContent,
		CommercialDisclosure: postDisclosure,
		CoverTimestampMs:     postCoverMs,
		VideoURL:             postURL,
	}

	cmd.Println("Submitting publish job...")
	outcome, err := publishService.Publish(context.Background(), req, postDuration)
	if err != nil {
		var exhausted *domain.StatusCheckExhaustedError
		if errors.As(err, &exhausted) {
			cmd.Println("Status checks exhausted. Your video may still be processing; check the TikTok app later.")
			cmd.Printf("Publish id: %s\n", exhausted.PublishID)
			return err
		}
		return err
	}

	for _, notice := range outcome.Notices {
		cmd.Printf("Note: %s\n", notice)
	}

	switch outcome.Job.Status {
	case domain.StatusComplete:
		cmd.Println("Published! Open the TikTok app to see your video.")
	case domain.StatusFailed:
		cmd.Printf("Publishing failed: %s\n", outcome.Job.FailReason)
		return fmt.Errorf("publishing failed: %s", outcome.Job.FailReason)
	default:
		cmd.Printf("Job ended in state %s\n", outcome.Job.Status)
	}
	return nil
}
