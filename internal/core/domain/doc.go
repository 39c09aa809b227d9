// Package domain defines the core business entities for tokpost.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credential: Stored OAuth tokens with an absolute expiry
//   - AuthorizationRequest: Parameters for the provider's consent screen
//   - CreatorProfile: Per-session snapshot of posting capabilities
//   - PublishRequest: Immutable description of a single publish attempt
//   - PublishJob: Remote publish pipeline state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
