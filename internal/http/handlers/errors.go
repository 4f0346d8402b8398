// Package handlers defines HTTP-layer error codes used by the JSON endpoints.
//
// Codes are lowercase snake_case and stable: back-office clients branch on
// them. The public contact endpoint answers in its own
// {"success": …, "errors": …} shape and does not use these codes except for
// transport-level failures (oversized body, rate limiting).
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "document not found"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeTooLarge         = "payload_too_large"

	// Domain-specific:
	ErrCodeValidation      = "validation_failed"
	ErrCodeUnsupportedFile = "unsupported_file_type"
	ErrCodeListFailed      = "list_failed"
	ErrCodeUpdateFailed    = "update_failed"
	ErrCodeUploadFailed    = "upload_failed"
	ErrCodeDownloadFailed  = "download_failed"
)

// msgInternal is the only message a 500 response carries.
const msgInternal = "internal server error"
