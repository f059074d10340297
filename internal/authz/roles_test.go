package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"user", "admin", "rider", "driver"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		require.True(t, r.Valid())
	}

	for _, s := range []string{"", "superuser", "User", "ADMIN"} {
		_, err := ParseRole(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestOneOf(t *testing.T) {
	require.True(t, RoleDriver.OneOf(RoleDriver, RoleAdmin))
	require.False(t, RoleRider.OneOf(RoleDriver, RoleAdmin))
	require.False(t, RoleUser.OneOf())
}
