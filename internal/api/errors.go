package api

import (
	"encoding/json"
	"net/http"

	"becat/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error          string             `json:"error"`
	Code           string             `json:"code,omitempty"`
	Details        interface{}        `json:"details,omitempty"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
	}

	// If it's a BecatError, include additional information
	if becErr, ok := err.(*errors.BecatError); ok {
		resp.Code = string(becErr.Code)
		resp.Details = becErr.Details
		resp.SuggestedFixes = becErr.SuggestedFixes
	} else {
		resp.Code = string(errors.InternalError)
	}

	json.NewEncoder(w).Encode(resp)
}

// WriteBecatError writes a BecatError with automatic status code mapping
func WriteBecatError(w http.ResponseWriter, err *errors.BecatError) {
	status := MapErrorToStatus(err.Code)
	WriteError(w, err, status)
}

// MapErrorToStatus maps becat error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ShellUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.Timeout:
		return http.StatusGatewayTimeout // 504
	case errors.RequestInvalid:
		return http.StatusBadRequest // 400
	case errors.AgentNotFound:
		return http.StatusNotFound // 404
	case errors.HistoryUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.InvocationFailed, errors.OutputParseFailed, errors.InternalError:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, map[string]string{"error": message}, http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteJSON(w, map[string]string{"error": message}, http.StatusNotFound)
}

// InternalError writes a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string, err error) {
	WriteError(w, &errors.BecatError{
		Code:    errors.InternalError,
		Message: message,
	}, http.StatusInternalServerError)
}
