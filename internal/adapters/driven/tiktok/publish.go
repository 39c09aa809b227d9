package tiktok

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/monaruku/tokpost-cli/internal/core/domain"
)

// videoInitRequest is the wire payload of the video init endpoint:
// post metadata plus a pull-by-URL source descriptor.
type videoInitRequest struct {
	PostInfo   postInfo   `json:"post_info"`
	SourceInfo sourceInfo `json:"source_info"`
}

type postInfo struct {
	Title                 string `json:"title"`
	PrivacyLevel          string `json:"privacy_level"`
	DisableDuet           bool   `json:"disable_duet"`
	DisableComment        bool   `json:"disable_comment"`
	DisableStitch         bool   `json:"disable_stitch"`
	VideoCoverTimestampMs int    `json:"video_cover_timestamp_ms"`
	BrandOrganicToggle    bool   `json:"brand_organic_toggle"`
	BrandContentToggle    bool   `json:"brand_content_toggle"`
}

type sourceInfo struct {
	Source   string `json:"source"`
	VideoURL string `json:"video_url"`
}

// sourcePullFromURL asks the provider to fetch the video itself
// rather than accept a direct upload.
const sourcePullFromURL = "PULL_FROM_URL"

// InitVideoPost submits a pull-by-URL publish job. Known provider
// error codes surface as their specific user-facing reasons via the
// ProviderError code mapping; unknown ones keep the raw status and
// description.
func (c *Client) InitVideoPost(ctx context.Context, accessToken string, req domain.PublishRequest) (*domain.PublishJob, error) {
	const endpoint = "video init"

	cover := req.CoverTimestampMs
	if cover <= 0 {
		cover = domain.DefaultCoverTimestampMs
	}

	payload := videoInitRequest{
		PostInfo: postInfo{
			Title:                 req.Title,
			PrivacyLevel:          req.PrivacyLevel.String(),
			DisableDuet:           req.DisableDuet,
			DisableComment:        req.DisableComment,
			DisableStitch:         req.DisableStitch,
			VideoCoverTimestampMs: cover,
			BrandOrganicToggle:    req.BrandOrganic,
			BrandContentToggle:    req.BrandedContent,
		},
		SourceInfo: sourceInfo{
			Source:   sourcePullFromURL,
			VideoURL: req.VideoURL,
		},
	}

	status, body, err := c.postJSON(ctx, endpoint, c.apiBaseURL+videoInitPath, accessToken, payload)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, decodeError(endpoint, status, body)
	}

	var resp struct {
		Data struct {
			PublishID string `json:"publish_id"`
		} `json:"data"`
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	if err := envelopeError(endpoint, status, resp.Error); err != nil {
		return nil, err
	}
	if resp.Data.PublishID == "" {
		return nil, &domain.HTTPError{Endpoint: endpoint, StatusCode: status, Body: "response carried no publish_id"}
	}

	return &domain.PublishJob{
		PublishID: resp.Data.PublishID,
		Status:    domain.StatusPending,
	}, nil
}

// FetchStatus reads the current state of a publish job.
func (c *Client) FetchStatus(ctx context.Context, accessToken, publishID string) (*domain.PublishJob, error) {
	const endpoint = "status fetch"

	payload := map[string]string{"publish_id": publishID}
	status, body, err := c.postJSON(ctx, endpoint, c.apiBaseURL+statusFetchPath, accessToken, payload)
	if err != nil {
		return nil, err
	}
	if !is2xx(status) {
		return nil, decodeError(endpoint, status, body)
	}

	var resp struct {
		Data struct {
			Status     string `json:"status"`
			FailReason string `json:"fail_reason"`
		} `json:"data"`
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	if err := envelopeError(endpoint, status, resp.Error); err != nil {
		return nil, err
	}
	if resp.Data.Status == "" {
		return nil, &domain.HTTPError{Endpoint: endpoint, StatusCode: status, Body: "response carried no status"}
	}

	return &domain.PublishJob{
		PublishID:  publishID,
		Status:     domain.JobStatus(resp.Data.Status),
		FailReason: resp.Data.FailReason,
	}, nil
}
