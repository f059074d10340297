package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("taken"), http.StatusConflict},
		{NotFound("missing"), http.StatusNotFound},
		{Authentication("nope"), http.StatusUnauthorized},
		{Expired("too late"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		require.Equal(t, tc.status, HTTPStatus(tc.err), "err=%v", tc.err)
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("while logging in: %w", NotFound("User not found"))
	require.Equal(t, KindNotFound, KindOf(err))
	require.True(t, Is(err, KindNotFound))
	require.Equal(t, "User not found", Message(err))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("failed to store OTP", cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to store OTP", Message(err))
	require.Contains(t, err.Error(), "connection refused")
}

func TestUntypedErrorMessageIsGeneric(t *testing.T) {
	require.Equal(t, "Internal Server Error", Message(errors.New("sql: no rows")))
}
