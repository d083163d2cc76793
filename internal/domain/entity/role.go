package entity

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

// Role is a membership a Person holds.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole maps a submitted role name to a Role. Blank input yields the
// patient role.
func ParseRole(name string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(name))) {
	case "", RolePatient:
		return RolePatient, true
	case RoleDoctor:
		return RoleDoctor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// RoleSet is the set of roles held by a Person. It is persisted as a
// comma-separated, sorted string.
type RoleSet []Role

func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.Add(r)
	}
	return s
}

func (s RoleSet) Has(role Role) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// Add returns the set with role included.
func (s RoleSet) Add(role Role) RoleSet {
	if role == "" || s.Has(role) {
		return s
	}
	out := append(append(RoleSet{}, s...), role)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// Value implements driver.Valuer
func (s RoleSet) Value() (driver.Value, error) {
	return strings.Join(s.Strings(), ","), nil
}

// Scan implements sql.Scanner
func (s *RoleSet) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("failed to scan RoleSet value: %v", value)
	}

	var set RoleSet
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			set = set.Add(Role(part))
		}
	}
	*s = set
	return nil
}
