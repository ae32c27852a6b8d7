package dto

import (
	"net/http"
	"strings"
)

// Error codes
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation = "ERR_VALIDATION"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"

	// ErrCodeInvalidInput is used for input that parses but makes no sense
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidItemName is used when an item name is blank
	ErrCodeInvalidItemName = "ERR_INVALID_ITEM_NAME"
	// ErrCodeInvalidJSON is used when the body is not valid JSON
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"

	// ErrCodeUnauthorized is used when a gate rejects the passphrase
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"

	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"

	// ErrCodeInvalidState is used when an operation is invalid for the session's state,
	// e.g. the order document before recommendations were applied
	ErrCodeInvalidState = "ERR_INVALID_STATE"

	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"

	// ErrCodeRenderFailed is used when the document renderer failed
	ErrCodeRenderFailed = "ERR_RENDER_FAILED"
	// ErrCodeRenderTimeout is used when the document renderer timed out
	ErrCodeRenderTimeout = "ERR_RENDER_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:         http.StatusInternalServerError,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidItemName: http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRenderFailed:    http.StatusBadGateway,
	ErrCodeRenderTimeout:   http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status for an error code.
// Unknown codes answer 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[NormalizeErrorCode(code)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode converts a domain error code ("NOT_FOUND") to its API form ("ERR_NOT_FOUND")
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
