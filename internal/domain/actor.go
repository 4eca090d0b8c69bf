package domain

import (
	"fmt"
	"strings"
)

// Role is the wire value stored on profiles and carried in access tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleHandyman Role = "handyman"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleHandyman, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool    { return a.Role == RoleAdmin }
func (a Actor) IsHandyman() bool { return a.Role == RoleHandyman }
func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }
