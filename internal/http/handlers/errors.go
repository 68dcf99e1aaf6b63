// Package handlers defines the error codes carried in every ErrorResponse.
//
// Codes are lowercase snake_case and stable across releases; the frontend
// branches on them (login_failed drives the login form message, unauthorized
// triggers the redirect to login, upstream_error shows the retry banner).
// The generic set mirrors HTTP status semantics; the rest name failures a
// status alone cannot convey, like validation_failed distinguishing a field
// rule violation from a malformed request on a 400:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "validation_failed",
//	  "message": "datelineClosing must be YYYY-MM-DD"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeLoginFailed      = "login_failed"
	ErrCodeUpstreamError    = "upstream_error"
	ErrCodeSaveFailed       = "save_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
