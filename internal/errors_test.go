package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mnes/internal"
)

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		require.True(t, internal.IsHTTPError(internal.ErrNotFound("not found")))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", internal.ErrBadRequest("bad")))
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(errors.New("something went wrong")))
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrapped HTTPError preserves fields", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("mnes: input is empty")
		httpErr := internal.ErrUnprocessable("name is empty",
			internal.WithErrorCode("empty_input"),
			internal.WithRequestID("req-1"),
			internal.WithError(cause),
		)
		err := fmt.Errorf("handler: %w", httpErr)

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusUnprocessableEntity, got.StatusCode())
		require.Equal(t, "Unprocessable Entity", got.StatusText())
		require.Equal(t, "name is empty", got.Error())
		require.Equal(t, "empty_input", got.ErrorCode)
		require.Equal(t, "req-1", got.RequestID)
		require.ErrorIs(t, err, cause)
	})

	t.Run("unrelated error returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("plain error")))
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

func TestErrorConstructors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *internal.HTTPError
		code int
	}{
		{internal.ErrBadRequest("x"), http.StatusBadRequest},
		{internal.ErrNotFound("x"), http.StatusNotFound},
		{internal.ErrMethodNotAllowed("x"), http.StatusMethodNotAllowed},
		{internal.ErrRequestTooLarge("x"), http.StatusRequestEntityTooLarge},
		{internal.ErrUnprocessable("x"), http.StatusUnprocessableEntity},
		{internal.ErrInternal("x"), http.StatusInternalServerError},
		{internal.ErrServiceUnavailable("x"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		require.Equal(t, tc.code, tc.err.Code)
	}
}
