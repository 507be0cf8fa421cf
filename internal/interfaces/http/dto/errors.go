package dto

import "net/http"

// Error codes produced by the HTTP layer itself
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMIT_EXCEEDED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes missing from the map fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	CodeBadRequest:     http.StatusBadRequest,
	CodeValidation:     http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_ADDRESS":  http.StatusBadRequest,
	"INVALID_CEP":      http.StatusBadRequest,
	"INVALID_QUANTITY": http.StatusBadRequest,

	CodeUnauthorized:      http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	CodeForbidden:         http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	CodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"ACCOUNT_LOCKED": http.StatusLocked,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,

	"PAYMENT_REJECTED": http.StatusPaymentRequired,

	"CEP_LOOKUP_FAILED":           http.StatusBadGateway,
	"PAYMENT_GATEWAY_UNAVAILABLE": http.StatusBadGateway,

	CodeRateLimited: http.StatusTooManyRequests,

	CodeInternal:              http.StatusInternalServerError,
	"TOKEN_GENERATION_FAILED": http.StatusInternalServerError,
	"LOGOUT_FAILED":           http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
