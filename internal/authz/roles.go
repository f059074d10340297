package authz

import "fmt"

// Role is the closed set of account roles. Route guards test membership
// explicitly; free-form role strings are rejected at parse time.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
)

var allRoles = map[Role]struct{}{
	RoleUser:   {},
	RoleAdmin:  {},
	RoleRider:  {},
	RoleDriver: {},
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := allRoles[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

// OneOf reports whether r is in the allowed set.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
