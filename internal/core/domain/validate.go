package domain

import "fmt"

// Validate checks the local preconditions for a publish attempt.
// No network call may be made while any of these fail. The boundary
// duration (exactly the creator's maximum) is accepted.
func (r *PublishRequest) Validate(creator *CreatorProfile, videoDurationSec float64) error {
	if creator == nil {
		return &ValidationError{Field: "creator", Reason: "creator information not available"}
	}
	if r.PrivacyLevel == "" {
		return &ValidationError{Field: "privacy_level", Reason: "a privacy level must be selected"}
	}
	if !r.PrivacyLevel.IsValid() {
		return &ValidationError{
			Field:  "privacy_level",
			Reason: fmt.Sprintf("unknown privacy level %q", string(r.PrivacyLevel)),
		}
	}
	if !creator.AllowsPrivacy(r.PrivacyLevel) {
		return &ValidationError{
			Field:  "privacy_level",
			Reason: fmt.Sprintf("privacy level %s is not available for this account", r.PrivacyLevel.Description()),
		}
	}
	if r.VideoURL == "" {
		return &ValidationError{Field: "video_url", Reason: "a source video URL is required"}
	}
	if creator.MaxVideoDurationSec > 0 && videoDurationSec > creator.MaxVideoDurationSec {
		return &ValidationError{
			Field: "video_duration",
			Reason: fmt.Sprintf("video of %.3fs exceeds the account maximum of %.0fs",
				videoDurationSec, creator.MaxVideoDurationSec),
		}
	}
	if r.CommercialDisclosure && !r.BrandOrganic && !r.BrandedContent {
		return &ValidationError{
			Field:  "commercial_disclosure",
			Reason: "indicate whether the content promotes yourself, a third party, or both",
		}
	}
	return nil
}

// ResolveBrandedPrivacy enforces that branded content is never posted
// privately. When the requested level is private it is upgraded to
// FOLLOWERS if the creator is offered that tier, otherwise to PUBLIC,
// and a user-visible notice describing the substitution is returned.
// When neither tier is available the request is rejected locally.
func ResolveBrandedPrivacy(requested PrivacyLevel, creator *CreatorProfile) (PrivacyLevel, string, error) {
	if requested != PrivacyPrivate {
		return requested, "", nil
	}
	if creator.AllowsPrivacy(PrivacyFollowers) {
		return PrivacyFollowers,
			"Privacy level automatically changed to 'Followers' as branded content cannot be private.", nil
	}
	if creator.AllowsPrivacy(PrivacyPublic) {
		return PrivacyPublic,
			"Privacy level automatically changed to 'Public' as branded content cannot be private.", nil
	}
	return "", "", &ValidationError{
		Field:  "privacy_level",
		Reason: "branded content cannot be private and no non-private tier is available for this account",
	}
}

// ApplyCreatorRestrictions forces the disable toggles the creator's
// app settings already impose and returns a notice for each forced
// change. The provider rejects requests that enable an interaction
// the creator has turned off.
func (r *PublishRequest) ApplyCreatorRestrictions(creator *CreatorProfile) []string {
	var notices []string
	if creator.CommentDisabled && !r.DisableComment {
		r.DisableComment = true
		notices = append(notices, "Comments are disabled in your app settings and will stay off for this post.")
	}
	if creator.DuetDisabled && !r.DisableDuet {
		r.DisableDuet = true
		notices = append(notices, "Duet is disabled in your app settings and will stay off for this post.")
	}
	if creator.StitchDisabled && !r.DisableStitch {
		r.DisableStitch = true
		notices = append(notices, "Stitch is disabled in your app settings and will stay off for this post.")
	}
	return notices
}
