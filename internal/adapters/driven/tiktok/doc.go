// Package tiktok implements the driven OAuth and post clients against
// the TikTok open API's fixed endpoint set.
//
// The package normalises failures into the domain error taxonomy:
// transport failures become domain.NetworkError, non-2xx responses
// with a parseable structured body become domain.ProviderError, and
// anything else becomes domain.HTTPError. Nothing here retries;
// retry policy lives in the publish orchestrator.
package tiktok
