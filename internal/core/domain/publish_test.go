package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreator() *CreatorProfile {
	return &CreatorProfile{
		Nickname: "creator",
		PrivacyLevelOptions: []PrivacyLevel{
			PrivacyPublic, PrivacyFriends, PrivacyFollowers, PrivacyPrivate,
		},
		MaxVideoDurationSec: 600,
	}
}

func testRequest() PublishRequest {
	return PublishRequest{
		Title:        "my video",
		PrivacyLevel: PrivacyPublic,
		VideoURL:     "https://cdn.example.com/clip.mp4",
	}
}

// TestPublishRequest_Validate_OK tests a request passing all preconditions
func TestPublishRequest_Validate_OK(t *testing.T) {
	req := testRequest()

	assert.NoError(t, req.Validate(testCreator(), 60))
}

// TestPublishRequest_Validate_NoCreator tests that a missing creator profile is rejected
func TestPublishRequest_Validate_NoCreator(t *testing.T) {
	req := testRequest()

	err := req.Validate(nil, 60)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

// TestPublishRequest_Validate_NoPrivacyLevel tests the missing privacy selection
func TestPublishRequest_Validate_NoPrivacyLevel(t *testing.T) {
	req := testRequest()
	req.PrivacyLevel = ""

	err := req.Validate(testCreator(), 60)

	require.Error(t, err)
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "privacy_level", v.Field)
}

// TestPublishRequest_Validate_PrivacyNotOffered tests a level the creator cannot use
func TestPublishRequest_Validate_PrivacyNotOffered(t *testing.T) {
	creator := testCreator()
	creator.PrivacyLevelOptions = []PrivacyLevel{PrivacyPrivate}
	req := testRequest()

	err := req.Validate(creator, 60)

	assert.True(t, IsValidation(err))
}

// TestPublishRequest_Validate_DurationBoundary tests that exactly the maximum is accepted
func TestPublishRequest_Validate_DurationBoundary(t *testing.T) {
	req := testRequest()

	assert.NoError(t, req.Validate(testCreator(), 600))
}

// TestPublishRequest_Validate_DurationExceeded tests rejection just past the maximum
func TestPublishRequest_Validate_DurationExceeded(t *testing.T) {
	req := testRequest()

	err := req.Validate(testCreator(), 600.001)

	require.Error(t, err)
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "video_duration", v.Field)
}

// TestPublishRequest_Validate_DisclosureWithoutBrand tests commercial disclosure
// with neither brand option selected
func TestPublishRequest_Validate_DisclosureWithoutBrand(t *testing.T) {
	req := testRequest()
	req.CommercialDisclosure = true

	err := req.Validate(testCreator(), 60)

	require.Error(t, err)
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "commercial_disclosure", v.Field)
}

// TestResolveBrandedPrivacy_NonPrivate tests that non-private levels pass through
func TestResolveBrandedPrivacy_NonPrivate(t *testing.T) {
	level, notice, err := ResolveBrandedPrivacy(PrivacyPublic, testCreator())

	require.NoError(t, err)
	assert.Equal(t, PrivacyPublic, level)
	assert.Empty(t, notice)
}

// TestResolveBrandedPrivacy_UpgradeToFollowers tests the FOLLOWERS-first upgrade
func TestResolveBrandedPrivacy_UpgradeToFollowers(t *testing.T) {
	level, notice, err := ResolveBrandedPrivacy(PrivacyPrivate, testCreator())

	require.NoError(t, err)
	assert.Equal(t, PrivacyFollowers, level)
	assert.Contains(t, notice, "Followers")
}

// TestResolveBrandedPrivacy_UpgradeToPublic tests the PUBLIC fallback when
// the creator has no followers tier
func TestResolveBrandedPrivacy_UpgradeToPublic(t *testing.T) {
	creator := testCreator()
	creator.PrivacyLevelOptions = []PrivacyLevel{PrivacyPublic, PrivacyPrivate}

	level, notice, err := ResolveBrandedPrivacy(PrivacyPrivate, creator)

	require.NoError(t, err)
	assert.Equal(t, PrivacyPublic, level)
	assert.Contains(t, notice, "Public")
}

// TestResolveBrandedPrivacy_NoTierAvailable tests local rejection when no
// non-private tier exists
func TestResolveBrandedPrivacy_NoTierAvailable(t *testing.T) {
	creator := testCreator()
	creator.PrivacyLevelOptions = []PrivacyLevel{PrivacyPrivate}

	_, _, err := ResolveBrandedPrivacy(PrivacyPrivate, creator)

	assert.True(t, IsValidation(err))
}

// TestPublishRequest_ApplyCreatorRestrictions tests forced disable toggles
func TestPublishRequest_ApplyCreatorRestrictions(t *testing.T) {
	creator := testCreator()
	creator.CommentDisabled = true
	creator.StitchDisabled = true
	req := testRequest()

	notices := req.ApplyCreatorRestrictions(creator)

	assert.True(t, req.DisableComment)
	assert.True(t, req.DisableStitch)
	assert.False(t, req.DisableDuet)
	assert.Len(t, notices, 2)

	// Re-applying yields no further notices.
	assert.Empty(t, req.ApplyCreatorRestrictions(creator))
}

// TestJobStatus_IsTerminal tests terminal-state detection
func TestJobStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusComplete.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, JobStatus("SOMETHING_ELSE").IsTerminal())
}

// TestErrorCode_UserMessage_Known tests that known provider codes map to
// specific user-facing text
func TestErrorCode_UserMessage_Known(t *testing.T) {
	assert.Contains(t, ErrCodeTooManyPosts.UserMessage(), "limit of posts")
	assert.Contains(t, ErrCodeBannedFromPosting.UserMessage(), "banned")
	assert.Contains(t, ErrCodeActiveUserCap.UserMessage(), "quota")
	assert.Contains(t, ErrCodeUnauditedClient.UserMessage(), "Unaudited")
}

// TestErrorCode_UserMessage_Unknown tests the explicit unknown fallback
func TestErrorCode_UserMessage_Unknown(t *testing.T) {
	assert.Empty(t, ErrorCode("some_new_code").UserMessage())
}

// TestProviderError_Error_KnownCode tests that a known code surfaces its
// specific message rather than the generic HTTP text
func TestProviderError_Error_KnownCode(t *testing.T) {
	err := &ProviderError{
		Endpoint:   "video init",
		StatusCode: 400,
		Code:       ErrCodeTooManyPosts,
	}

	assert.Contains(t, err.Error(), "limit of posts")
	assert.NotContains(t, err.Error(), "400")
}

// TestProviderError_Error_UnknownCode tests the raw fallback for unknown codes
func TestProviderError_Error_UnknownCode(t *testing.T) {
	err := &ProviderError{
		Endpoint:    "video init",
		StatusCode:  403,
		Code:        "mystery_code",
		Description: "something went wrong",
	}

	assert.Contains(t, err.Error(), "mystery_code")
	assert.Contains(t, err.Error(), "403")
}
