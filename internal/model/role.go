package model

import (
	"fmt"
	"strings"
)

// Role specifies customer role known by the listing
type Role string

const (
	// RoleAdmin means administrator customer
	RoleAdmin Role = "ADMIN"
	// RoleManager means manager customer
	RoleManager Role = "MANAGER"
)

// RoleOptions are roles offered for selection, in display order
var RoleOptions = []Role{RoleAdmin, RoleManager}

// ParseRole canonicalises role to its upper case form
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, opt := range RoleOptions {
		if r == opt {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Label returns role name as shown to the user, i.e. Admin
func (r Role) Label() string {
	if r == "" {
		return ""
	}
	lower := strings.ToLower(string(r))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func (r Role) String() string {
	return string(r)
}

// RoleFilter is optional server-side role restriction, nil role means no restriction
type RoleFilter struct {
	Role *Role
}

// NoRoleFilter returns filter without restriction
func NoRoleFilter() RoleFilter {
	return RoleFilter{}
}

// RoleFilterOf returns filter restricted to provided role
func RoleFilterOf(r Role) RoleFilter {
	return RoleFilter{Role: &r}
}

// IsSet reports whether role restriction is present
func (f RoleFilter) IsSet() bool {
	return f.Role != nil
}

// Equal reports whether both filters restrict by the same role
func (f RoleFilter) Equal(other RoleFilter) bool {
	if f.Role == nil || other.Role == nil {
		return f.Role == nil && other.Role == nil
	}
	return *f.Role == *other.Role
}

// Key is stable identifier of filter, used for caching and request coalescing
func (f RoleFilter) Key() string {
	if f.Role == nil {
		return "all"
	}
	return "role:" + string(*f.Role)
}

// Variables builds GraphQL filter variable, i.e. {"role":{"eq":"ADMIN"}}.
// Nil is returned when no restriction is set, so the variable can be omitted.
func (f RoleFilter) Variables() map[string]any {
	if f.Role == nil {
		return nil
	}
	return map[string]any{
		"role": map[string]any{"eq": string(*f.Role)},
	}
}
