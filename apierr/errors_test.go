package apierr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestMarkAndMatch(t *testing.T) {
	err := NewError("duplicate invoice number").
		WithHint("invoice number INV-1 already exists").
		Mark(ErrConflict)

	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	inner := WithError(fmt.Errorf("row missing")).Mark(ErrNotFound)
	outer := errors.WithMessage(inner, "while loading invoice")

	assert.True(t, IsNotFound(outer), "kind survives wrapping on the way up")
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErr(outer))
}

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "Bad Request", err: NewError("x").Mark(ErrBadRequest), expected: http.StatusBadRequest},
		{name: "Unauthorized", err: NewError("x").Mark(ErrUnauthorized), expected: http.StatusUnauthorized},
		{name: "Forbidden", err: NewError("x").Mark(ErrForbidden), expected: http.StatusForbidden},
		{name: "Not Found", err: NewError("x").Mark(ErrNotFound), expected: http.StatusNotFound},
		{name: "Conflict", err: NewError("x").Mark(ErrConflict), expected: http.StatusConflict},
		{name: "Internal", err: NewError("x").Mark(ErrInternal), expected: http.StatusInternalServerError},
		{name: "Unmarked", err: errors.New("anything"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestDisplayMessage(t *testing.T) {
	t.Run("Hint Wins", func(t *testing.T) {
		err := NewError("internal detail").WithHint("user facing message").Mark(ErrBadRequest)
		assert.Equal(t, "user facing message", DisplayMessage(err))
	})

	t.Run("Falls Back To Kind Message", func(t *testing.T) {
		err := NewError("internal detail").Mark(ErrNotFound)
		assert.Equal(t, "resource not found", DisplayMessage(err))
	})

	t.Run("Unmarked Is Generic", func(t *testing.T) {
		assert.Equal(t, "unexpected error", DisplayMessage(errors.New("boom")))
	})
}

func TestDetails(t *testing.T) {
	t.Run("Preserves Order", func(t *testing.T) {
		err := NewError("validation").
			WithDetails([]string{"first", "second", "third"}).
			Mark(ErrBadRequest)
		assert.Equal(t, []string{"first", "second", "third"}, Details(err))
	})

	t.Run("Empty Without Details", func(t *testing.T) {
		err := NewError("x").Mark(ErrBadRequest)
		assert.Empty(t, Details(err))
		assert.NotNil(t, Details(err))
	})
}
