package domain

import "strings"

// Role selects which menu an account gets.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole accepts a role name in any case.
func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	}
	return "", false
}

// Account is a console login. An empty PasswordHash means no password prompt.
type Account struct {
	Name         string
	Role         Role
	PasswordHash string
}
