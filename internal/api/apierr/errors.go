package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tiletally/tiletally-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeWrongStage      = "WRONG_STAGE"
	CodeInvalidPoints   = "INVALID_POINTS"
	CodeInvalidAvatar   = "INVALID_AVATAR"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrWrongStage):
		return &httpError{http.StatusConflict, APIError{CodeWrongStage, "Operation is not valid in the current stage"}}
	case errors.Is(err, model.ErrInvalidPoints):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPoints, "Points must be a finite number"}}
	case errors.Is(err, model.ErrInvalidAvatar):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAvatar, "Avatar must be one of the palette symbols"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
