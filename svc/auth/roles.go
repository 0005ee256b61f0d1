package auth

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Role is a closed enumeration encoded as an integer on the wire and in
// storage.
type Role int

const (
	RoleStudent Role = 1
	RoleStaff   Role = 2
	RoleAdmin   Role = 3
)

func (r Role) Valid() bool {
	return r >= RoleStudent && r <= RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleStaff:
		return "staff"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// RoleSet is an ascending, duplicate-free set of valid roles.
type RoleSet []Role

// NewRoleSet validates roles and returns them sorted and de-duplicated.
func NewRoleSet(roles ...Role) (RoleSet, error) {
	set := make(RoleSet, 0, len(roles))
	for _, r := range roles {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidRole, int(r))
		}
		set = append(set, r)
	}
	slices.Sort(set)
	return slices.Compact(set), nil
}

// MustRoleSet is NewRoleSet for constant input.
func MustRoleSet(roles ...Role) RoleSet {
	set, err := NewRoleSet(roles...)
	if err != nil {
		panic(err)
	}
	return set
}

func (s RoleSet) Has(r Role) bool {
	return slices.Contains(s, r)
}

// Single returns the only role of a one-element set.
func (s RoleSet) Single() (Role, bool) {
	if len(s) != 1 {
		return 0, false
	}
	return s[0], true
}

// UnmarshalJSON accepts an integer array and normalizes it.
func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var raw []Role
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set, err := NewRoleSet(raw...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
