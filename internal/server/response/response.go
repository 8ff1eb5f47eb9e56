// Package response provides the JSON envelope used by every API endpoint:
// a data field on success and an error field on failure.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/shelfmap/pkg/errors"
)

// Response is the standard API response body.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is an API error with a machine-readable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, an encoding error has nowhere to go.
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail("UNAUTHORIZED", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail("RATE_LIMITED", "Rate limit exceeded", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail("SERVICE_UNAVAILABLE", "Service unavailable", message))
}

// GatewayTimeout writes a 504 error response.
func GatewayTimeout(w http.ResponseWriter, message string) {
	JSON(w, http.StatusGatewayTimeout, Fail("TIMEOUT", "Upstream timed out", message))
}

// ErrorFromType maps typed errors to HTTP responses. Validation errors name
// the offending parameter and source errors name the dataset in details.
func ErrorFromType(w http.ResponseWriter, err error) {
	var verr *errors.ValidationError
	var serr *errors.SourceError
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, Fail("INVALID_PARAMETER", err.Error(), verr.Field))
	case errors.Is(err, errors.ErrNotLoaded):
		JSON(w, http.StatusServiceUnavailable, Fail("CATALOG_NOT_LOADED", "Catalog not loaded", err.Error()))
	case errors.As(err, &serr):
		JSON(w, errors.HTTPStatus(err), Fail("SOURCE_UNAVAILABLE", "Dataset unavailable", serr.Source))
	default:
		switch errors.HTTPStatus(err) {
		case http.StatusNotFound:
			NotFound(w, err.Error(), "")
		case http.StatusBadRequest:
			BadRequest(w, err.Error(), "")
		case http.StatusTooManyRequests:
			RateLimited(w, err.Error())
		case http.StatusServiceUnavailable:
			ServiceUnavailable(w, err.Error())
		case http.StatusGatewayTimeout:
			GatewayTimeout(w, err.Error())
		default:
			InternalError(w, err)
		}
	}
}
