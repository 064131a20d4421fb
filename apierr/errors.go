package apierr

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Taxonomy kinds. Every failure raised anywhere in the service is marked
// with exactly one of these sentinels; nothing else ever decides a status code.
var (
	ErrBadRequest   = newSentinel(CodeBadRequest, "invalid request")
	ErrUnauthorized = newSentinel(CodeUnauthorized, "authentication required")
	ErrForbidden    = newSentinel(CodeForbidden, "insufficient permissions")
	ErrNotFound     = newSentinel(CodeNotFound, "resource not found")
	ErrConflict     = newSentinel(CodeConflict, "resource already exists")
	ErrInternal     = newSentinel(CodeInternal, "internal error")
)

const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInternal     = "internal_error"
)

var sentinels = []*APIError{
	ErrBadRequest,
	ErrUnauthorized,
	ErrForbidden,
	ErrNotFound,
	ErrConflict,
	ErrInternal,
}

var statusCodes = map[string]int{
	CodeBadRequest:   http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeConflict:     http.StatusConflict,
	CodeInternal:     http.StatusInternalServerError,
}

// APIError carries a stable machine-readable code and a default
// user-facing message for its kind.
type APIError struct {
	Code    string
	Message string
	Err     error
}

func newSentinel(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

func (e *APIError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches APIErrors by code so wrapped and marked errors compare
// against the sentinels.
func (e *APIError) Is(target error) bool {
	if target == nil {
		return false
	}
	t, ok := target.(*APIError)
	if !ok {
		return errors.Is(e.Err, target)
	}
	return e.Code == t.Code
}

// HTTPStatusFromErr maps an error to its wire status. Anything not marked
// with a taxonomy sentinel is an internal failure.
func HTTPStatusFromErr(err error) int {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return statusCodes[s.Code]
		}
	}
	return http.StatusInternalServerError
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
