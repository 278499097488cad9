// Package handlers defines the HTTP-layer error codes used across the JSON
// endpoints.
//
// These symbolic constants are mapped to HTTP responses via the fail() helper
// and give clients a stable, machine-readable taxonomy that supplements the
// human-readable message.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes (bad_request, not_found, ...) mirror common HTTP status
//     semantics.
//   - Every JSON error response carries both an HTTP status and one of these
//     codes; handlers pick the most specific match.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeCreateFailed = "create_failed"
	ErrCodeUpdateFailed = "update_failed"
	ErrCodeDeleteFailed = "delete_failed"
	ErrCodeListFailed   = "list_failed"
)
