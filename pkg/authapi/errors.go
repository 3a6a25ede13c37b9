package authapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the error payload every endpoint returns on failure. The
// StatusCode travels in the HTTP response only, never in the body.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WithDescription returns a copy of e carrying a request-specific
// description so the package-level sentinels stay immutable.
func (e *APIError) WithDescription(format string, args ...any) *APIError {
	return &APIError{
		StatusCode:  e.StatusCode,
		Code:        e.Code,
		Description: fmt.Sprintf(format, args...),
	}
}

// Predefined errors shared by the server handlers and the client.
var (
	ErrInvalidIdentifier = &APIError{StatusCode: http.StatusBadRequest, Code: "INVALID_IDENTIFIER"}
	ErrAlreadyExists     = &APIError{StatusCode: http.StatusConflict, Code: "ALREADY_EXISTS"}
	ErrNotFound          = &APIError{StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
	ErrBadRequest        = &APIError{StatusCode: http.StatusBadRequest, Code: "BAD_REQUEST"}
	ErrForbidden         = &APIError{StatusCode: http.StatusForbidden, Code: "FORBIDDEN"}
	ErrUnauthorized      = &APIError{StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED"}
	ErrCrypto            = &APIError{StatusCode: http.StatusBadRequest, Code: "CRYPTO_ERROR"}
	ErrUnknown           = &APIError{StatusCode: http.StatusInternalServerError, Code: "UNKNOWN"}
)

// WriteError renders err as a JSON error response. Non-APIError values are
// masked behind ErrUnknown so internal details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*APIError)
	if !ok {
		apiErr = ErrUnknown
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(apiErr.StatusCode)
	_ = json.NewEncoder(w).Encode(apiErr)
}
