package apierr

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const detailPrefix = "__details__:"

// ErrorBuilder provides a fluent interface for building taxonomy errors.
// It does not implement the error interface on purpose: Mark must be the
// last call in the chain so every built error carries exactly one kind.
type ErrorBuilder struct {
	err error
}

// NewError starts a builder chain from a fresh internal message.
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a builder chain from an existing error.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessage adds internal context to the error. Never shown to callers.
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint sets the user-visible message rendered in the response envelope.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is WithHint with formatting.
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithDetails attaches field-level sub-messages rendered as the envelope's
// errors list. Order is preserved.
func (b *ErrorBuilder) WithDetails(details []string) *ErrorBuilder {
	if len(details) == 0 {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, detailPrefix+"%s", errors.Safe(strings.Join(details, "\n")))
	return b
}

// Mark stamps the error with a taxonomy sentinel and ends the chain.
func (b *ErrorBuilder) Mark(reference error) error {
	return errors.Mark(b.err, reference)
}

// DisplayMessage returns the user-visible message for an error: the first
// hint when one was attached, otherwise the default message of its kind.
func DisplayMessage(err error) string {
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Message
		}
	}
	return "unexpected error"
}

// Details extracts the field-level sub-messages attached via WithDetails.
func Details(err error) []string {
	details := []string{}
	for _, payload := range errors.GetAllSafeDetails(err) {
		for _, d := range payload.SafeDetails {
			if strings.HasPrefix(d, detailPrefix) {
				details = append(details, strings.Split(d[len(detailPrefix):], "\n")...)
			}
		}
	}
	return details
}
