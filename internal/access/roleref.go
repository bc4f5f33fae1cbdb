package access

import (
	"encoding/json"

	"openconext.org/invite/internal/authority"
)

// RoleRef is the tagged union of the two role shapes the engine accepts: a
// plain role, or a user-role wrapping one. Callers unwrap once at entry
// instead of shape-sniffing per call site.
type RoleRef struct {
	IsUserRole bool
	Authority  authority.Authority
	role       *Role
}

// PlainRole wraps a bare role.
func PlainRole(r *Role) RoleRef {
	return RoleRef{role: r}
}

// WrappedRole wraps a user role, carrying its granted authority.
func WrappedRole(ur *UserRole) RoleRef {
	if ur == nil {
		return RoleRef{IsUserRole: true}
	}
	return RoleRef{IsUserRole: true, Authority: ur.Authority, role: ur.Role}
}

// Unwrap returns the underlying role for either variant.
func (r RoleRef) Unwrap() *Role {
	return r.role
}

// UnmarshalJSON decodes either shape: an object with a nested "role" is a
// user-role wrapper, anything else a plain role.
func (r *RoleRef) UnmarshalJSON(data []byte) error {
	var probe struct {
		Role      *Role               `json:"role"`
		Authority authority.Authority `json:"authority"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Role != nil {
		r.IsUserRole = true
		r.Authority = probe.Authority
		r.role = probe.Role
		return nil
	}
	var role Role
	if err := json.Unmarshal(data, &role); err != nil {
		return err
	}
	r.role = &role
	return nil
}

// MarshalJSON emits the underlying role; the wrapper is an input shape only.
func (r RoleRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.role)
}
