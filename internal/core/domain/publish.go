package domain

import "time"

// PrivacyLevel is the audience a published video is visible to.
// Values match the provider's wire representation.
type PrivacyLevel string

// Privacy levels a creator may be offered.
const (
	// PrivacyPublic makes the video visible to everyone.
	PrivacyPublic PrivacyLevel = "PUBLIC_TO_EVERYONE"
	// PrivacyFriends restricts the video to mutual followers.
	PrivacyFriends PrivacyLevel = "MUTUAL_FOLLOW_FRIENDS"
	// PrivacyFollowers restricts the video to the creator's followers.
	PrivacyFollowers PrivacyLevel = "FOLLOWER_OF_CREATOR"
	// PrivacyPrivate makes the video visible to the creator only.
	PrivacyPrivate PrivacyLevel = "SELF_ONLY"
)

// IsValid returns true if the privacy level is recognised.
func (p PrivacyLevel) IsValid() bool {
	switch p {
	case PrivacyPublic, PrivacyFriends, PrivacyFollowers, PrivacyPrivate:
		return true
	default:
		return false
	}
}

// String returns the wire representation.
func (p PrivacyLevel) String() string {
	return string(p)
}

// Description returns a human-readable label for the level.
func (p PrivacyLevel) Description() string {
	switch p {
	case PrivacyPublic:
		return "Public - Everyone"
	case PrivacyFriends:
		return "Friends - Mutual followers only"
	case PrivacyFollowers:
		return "Followers - Followers only"
	case PrivacyPrivate:
		return "Private - Only me"
	default:
		return string(p)
	}
}

// CreatorProfile is a read-only snapshot of the creator's posting
// capabilities, fetched fresh per publish attempt and never cached
// beyond it.
type CreatorProfile struct {
	// Nickname is the creator's display name.
	Nickname string `json:"creator_nickname"`
	// Username is the creator's handle.
	Username string `json:"creator_username"`
	// AvatarURL points at the creator's profile image.
	AvatarURL string `json:"creator_avatar_url"`
	// PrivacyLevelOptions are the levels the creator may post with,
	// in the order the provider returned them.
	PrivacyLevelOptions []PrivacyLevel `json:"privacy_level_options"`
	// CommentDisabled reports that comments are off in the creator's
	// app settings; requests must then disable comments.
	CommentDisabled bool `json:"comment_disabled"`
	// DuetDisabled reports that duets are off in the creator's app settings.
	DuetDisabled bool `json:"duet_disabled"`
	// StitchDisabled reports that stitches are off in the creator's app settings.
	StitchDisabled bool `json:"stitch_disabled"`
	// MaxVideoDurationSec is the longest video the creator may post.
	MaxVideoDurationSec float64 `json:"max_video_post_duration_sec"`
}

// AllowsPrivacy returns true if the creator may post with the given level.
func (c *CreatorProfile) AllowsPrivacy(level PrivacyLevel) bool {
	for _, opt := range c.PrivacyLevelOptions {
		if opt == level {
			return true
		}
	}
	return false
}

// DefaultCoverTimestampMs is the video frame used as the cover when
// the caller does not pick one.
const DefaultCoverTimestampMs = 1000

// PublishRequest describes one pull-by-URL publish attempt. It is
// constructed once per attempt and immutable after submission.
type PublishRequest struct {
	// Title is the video caption.
	Title string
	// PrivacyLevel is the audience for the video.
	PrivacyLevel PrivacyLevel
	// DisableDuet prevents other users from duetting the video.
	DisableDuet bool
	// DisableStitch prevents other users from stitching the video.
	DisableStitch bool
	// DisableComment turns comments off on the video.
	DisableComment bool
	// BrandOrganic marks the video as promoting the creator's own brand.
	BrandOrganic bool
	// BrandedContent marks the video as a paid partnership.
	// Branded content must not be posted privately.
	BrandedContent bool
	// CommercialDisclosure reports that the user opened the commercial
	// disclosure controls; at least one of BrandOrganic or
	// BrandedContent must then be set.
	CommercialDisclosure bool
	// CoverTimestampMs selects the cover frame. Zero means
	// DefaultCoverTimestampMs.
	CoverTimestampMs int
	// VideoURL is the publicly reachable source the provider pulls from.
	VideoURL string
}

// JobStatus is the state of a remote publish job.
type JobStatus string

// Publish job states. Complete and Failed are terminal.
const (
	// StatusPending means the job is queued but not yet processing.
	StatusPending JobStatus = "PENDING"
	// StatusProcessing means the provider is downloading or
	// transcoding the video.
	StatusProcessing JobStatus = "PROCESSING_DOWNLOAD"
	// StatusComplete means the video is published.
	StatusComplete JobStatus = "PUBLISH_COMPLETE"
	// StatusFailed means the provider gave up on the job.
	StatusFailed JobStatus = "FAILED"
)

// IsTerminal returns true if no further transition can occur.
func (s JobStatus) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// PublishJob is the observed state of a remote publish job. It is
// created when the init call returns an id and mutated only by polling.
type PublishJob struct {
	// PublishID is the provider's opaque job identifier.
	PublishID string `json:"publish_id"`
	// Status is the last observed job state.
	Status JobStatus `json:"status"`
	// FailReason is the provider's reason when Status is FAILED.
	FailReason string `json:"fail_reason,omitempty"`
}

// PublishAttempt is the locally recorded outcome of a publish attempt.
type PublishAttempt struct {
	// ID is the local record identifier (UUID).
	ID string
	// PublishID is the provider's job identifier, empty when the
	// init call itself failed.
	PublishID string
	// Title is the caption the attempt was submitted with.
	Title string
	// PrivacyLevel the attempt was submitted with.
	PrivacyLevel PrivacyLevel
	// VideoURL the provider was asked to pull from.
	VideoURL string
	// Status is the terminal (or last observed) job state.
	Status JobStatus
	// FailReason is the provider's reason when the attempt failed.
	FailReason string
	// CreatedAt is when the attempt was submitted.
	CreatedAt time.Time
}
