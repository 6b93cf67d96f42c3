package dto

import "time"

// ErrorResponse is the wire shape of every error leaving the API. Success
// responses return the resource representation directly, without an envelope.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	RequestID string    `json:"request_id,omitempty"`
}

// NewErrorResponse builds an error response for the given code, deriving the
// HTTP status from the code mapping.
func NewErrorResponse(code, message, path, requestID string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    GetHTTPStatus(code),
		Error:     code,
		Message:   message,
		Path:      path,
		RequestID: requestID,
	}
}

// IDRequest binds an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
