package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/agentstation/shelfmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("book", "9780134685991")
		assert.Equal(t, `book "9780134685991" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("detail: %w", pkgerrors.NewNotFoundError("book", "x"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
		assert.False(t, pkgerrors.IsValidationError(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("page_size", -1, "must be positive")
		assert.Equal(t, "validation failed for field page_size: must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad query"}
		assert.Equal(t, "validation failed: bad query", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"rate limited", http.StatusTooManyRequests, pkgerrors.ErrRateLimited},
		{"missing sheet", http.StatusNotFound, pkgerrors.ErrNotFound},
		{"server down", http.StatusBadGateway, pkgerrors.ErrSourceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("primary", tt.status, http.StatusText(tt.status))
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.Contains(t, err.Error(), "primary")
		})
	}

	t.Run("rate limit helper", func(t *testing.T) {
		err := pkgerrors.NewAPIError("primary", http.StatusTooManyRequests, "slow down")
		assert.True(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsRateLimited(pkgerrors.NewAPIError("primary", http.StatusNotFound, "")))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection reset")
		err := &pkgerrors.APIError{Source: "secondary", Message: "request failed", Err: base}
		assert.ErrorIs(t, err, base)
		assert.Equal(t, "API error from secondary: request failed", err.Error())
	})
}

func TestSourceError(t *testing.T) {
	base := pkgerrors.NewAPIError("secondary", 500, "boom")
	err := pkgerrors.NewSourceError("secondary", "https://example.com/sheet.csv", base)

	assert.True(t, pkgerrors.IsSourceUnavailable(err))
	var apiErr *pkgerrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "secondary dataset")
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("csv", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("get", "preference", "theme", nil))

	base := errors.New("disk full")
	err := pkgerrors.WrapIO("write", "/tmp/prefs.yaml", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "write /tmp/prefs.yaml: disk full", err.Error())

	perr := pkgerrors.NewParseError("csv", "primary", "bare quote", nil)
	perr.Line = 7
	assert.Equal(t, "failed to parse csv primary:7: bare quote", perr.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{pkgerrors.NewNotFoundError("book", "1"), http.StatusNotFound},
		{pkgerrors.NewValidationError("year", "x", "bad"), http.StatusBadRequest},
		{pkgerrors.ErrNotLoaded, http.StatusServiceUnavailable},
		{pkgerrors.NewSourceError("primary", "u", errors.New("x")), http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pkgerrors.HTTPStatus(tt.err), "%v", tt.err)
	}
}
