package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashNeverSerialized(t *testing.T) {
	u := &User{ID: 1, UserName: "alice", Email: "alice@x.test", PasswordHash: "$2a$10$secret"}
	b, err := json.Marshal(u)
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret")
	require.NotContains(t, string(b), "password_hash")
}

func TestProfilePatchMerge(t *testing.T) {
	u := &User{
		FullName:   "Alice Mensah",
		UserName:   "alice",
		YearGroup:  "2005",
		Occupation: "Engineer",
		About:      "old about",
	}

	occupation := "Architect"
	about := ""
	patch := &ProfilePatch{
		Occupation: &occupation,
		About:      &about, // explicit empty value still applies
	}
	patch.Merge(u)

	require.Equal(t, "Architect", u.Occupation)
	require.Equal(t, "", u.About)
	require.Equal(t, "Alice Mensah", u.FullName)
	require.Equal(t, "2005", u.YearGroup)
}

func TestPublicProfileSubset(t *testing.T) {
	u := &User{
		FullName:     "Alice Mensah",
		UserName:     "alice",
		Email:        "alice@x.test",
		PasswordHash: "hash",
		YearGroup:    "2005",
	}
	p := u.Public()
	require.Equal(t, "alice", p.UserName)
	require.Equal(t, "2005", p.YearGroup)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.NotContains(t, string(b), "alice@x.test")
	require.NotContains(t, string(b), "hash")
}
