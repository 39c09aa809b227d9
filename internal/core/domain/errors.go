package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthenticated indicates no valid credential is stored.
	// Log in before calling token-bearing endpoints.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotConfigured indicates the client key or secret is missing.
	ErrNotConfigured = errors.New("client credentials not configured")
)

// ValidationError is a local precondition failure. It never reaches
// the network: a request failing validation is rejected before any
// provider call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Field, e.Reason)
}

// IsValidation checks if the error is a local validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// NetworkError is a transport failure: the request never produced a
// provider response.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProviderError is a non-2xx provider response with a parseable
// structured body. Code carries the provider's error code.
type ProviderError struct {
	Endpoint    string
	StatusCode  int
	Code        ErrorCode
	Description string
	LogID       string
}

func (e *ProviderError) Error() string {
	if msg := e.Code.UserMessage(); msg != "" {
		return msg
	}
	if e.Description != "" {
		return fmt.Sprintf("%s: %s (%s, HTTP %d)", e.Endpoint, e.Description, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: provider error %s (HTTP %d)", e.Endpoint, e.Code, e.StatusCode)
}

// HTTPError is a non-2xx provider response whose body could not be
// parsed. Only the raw status and body are available.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.StatusCode)
}

// IsNetwork checks if the error is a transport failure with no
// provider response.
func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}

// StatusCheckExhaustedError means the poll loop gave up without
// observing a terminal status. The video may still be processing on
// the provider's side.
type StatusCheckExhaustedError struct {
	PublishID string
	Attempts  int
}

func (e *StatusCheckExhaustedError) Error() string {
	return fmt.Sprintf(
		"status check gave up after %d attempts for publish %s: the video may still be processing, check the app later",
		e.Attempts, e.PublishID)
}

// ErrorCode is a provider error code from a publish or token
// response body. Unknown codes are carried verbatim and map to no
// user message.
type ErrorCode string

// Provider error codes with dedicated user-facing messages.
const (
	// ErrCodeOK is the provider's code for a successful response.
	ErrCodeOK ErrorCode = "ok"
	// ErrCodeTooManyPosts means the daily posting limit is reached.
	ErrCodeTooManyPosts ErrorCode = "spam_risk_too_many_posts"
	// ErrCodeBannedFromPosting means the account is banned from posting.
	ErrCodeBannedFromPosting ErrorCode = "spam_risk_user_banned_from_posting"
	// ErrCodeActiveUserCap means the app's daily publishing quota is used up.
	ErrCodeActiveUserCap ErrorCode = "reached_active_user_cap"
	// ErrCodeUnauditedClient means an unaudited app may only post privately.
	ErrCodeUnauditedClient ErrorCode = "unaudited_client_can_only_post_to_private_accounts"
)

// UserMessage returns the actionable text for a known code, or the
// empty string for unknown codes so callers fall back to the raw
// status and description.
func (c ErrorCode) UserMessage() string {
	switch c {
	case ErrCodeTooManyPosts:
		return "You have reached the limit of posts you can make in a day. Please try again tomorrow."
	case ErrCodeBannedFromPosting:
		return "You have been banned from posting. Please contact TikTok support for more information."
	case ErrCodeActiveUserCap:
		return "Daily publishing quota reached: the maximum number of users allowed to publish content " +
			"via this application today has been reached. Please try again tomorrow when the quota resets."
	case ErrCodeUnauditedClient:
		return "Unaudited client can only post to private accounts. Please choose 'Private - Only Me' as the privacy level."
	default:
		return ""
	}
}
