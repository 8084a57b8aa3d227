package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	sentinel := NewValidationError("bad input")
	cause := errors.New("db down")

	wrapped := fmt.Errorf("context: %w", sentinel.Wrap(cause))

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
}

func TestHTTPStatusDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))

	appErr, ok := As(NewTooManyRequests("slow down"))
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPCode)
}

func TestDistinctMessagesDoNotMatch(t *testing.T) {
	a := NewValidationError("a")
	b := NewValidationError("b")
	assert.False(t, errors.Is(a, b))
}
