package dto

import "net/http"

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
//
// The API deliberately collapses every domain refusal to 400: from a
// caller's point of view a rejected command is a rejected command, whether
// the reason was a missing request, a stale version, or a business rule.
// Resource-not-found and concurrency conflicts are not distinguished by
// status. Only non-domain failures render 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Shared sentinels
	"NOT_FOUND":     http.StatusBadRequest,
	"INVALID_INPUT": http.StatusBadRequest,

	// Anticipation request lifecycle
	"INVALID_CREATOR":           http.StatusBadRequest,
	"BELOW_MINIMUM_AMOUNT":      http.StatusBadRequest,
	"INVALID_FEE_RATE":          http.StatusBadRequest,
	"DUPLICATE_PENDING_REQUEST": http.StatusBadRequest,
	"INVALID_TRANSITION":        http.StatusBadRequest,

	// Infrastructure-surfaced domain refusals
	"VERSION_CONFLICT": http.StatusBadRequest,
	"CLEANUP_DISABLED": http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for a domain error code. Codes not
// in the table still render 400: reaching here means the error was a
// DomainError, and those never expose server faults.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
