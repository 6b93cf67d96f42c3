package dto

import (
	"net/http"

	"github.com/companies-office/backend/internal/domain/shared"
)

// Edge-only error codes with no domain counterpart
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// State-machine violations surface as 409, not 422: a transfer against a
// TRANSFERRED allocation is a conflict with the ledger's current state.
var ErrorCodeHTTPStatus = map[string]int{
	shared.ErrCodeNotFound:            http.StatusNotFound,
	shared.ErrCodeValidation:          http.StatusBadRequest,
	shared.ErrCodeBusinessRule:        http.StatusConflict,
	shared.ErrCodeInvalidState:        http.StatusConflict,
	shared.ErrCodeAlreadyExists:       http.StatusConflict,
	shared.ErrCodeConcurrencyConflict: http.StatusConflict,
	shared.ErrCodeUnauthorized:        http.StatusUnauthorized,
	shared.ErrCodeForbidden:           http.StatusForbidden,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall through to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
