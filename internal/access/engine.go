package access

import (
	"openconext.org/invite/internal/authority"
)

// HighestAuthority resolves the single effective authority of a user. With
// forceApplications set, an institution admin with no scoped applications is
// demoted to whatever their user roles grant; display badges pass false to
// show INSTITUTION_ADMIN regardless.
func HighestAuthority(user *User, forceApplications bool) authority.Authority {
	if user == nil {
		return authority.Guest
	}
	if user.SuperUser {
		return authority.SuperUser
	}
	if user.InstitutionAdmin && (!forceApplications || len(user.Applications) > 0) {
		return authority.InstitutionAdmin
	}
	highest := authority.Guest
	for _, ur := range user.UserRoles {
		if ur == nil || !authority.Valid(ur.Authority) {
			continue
		}
		if authority.Compare(ur.Authority, highest) < 0 {
			highest = ur.Authority
		}
	}
	return highest
}

// IsUserAllowed reports whether the user's effective authority is at least
// minimal. An unrecognised minimal value is an InvalidAuthorityError, never a
// false result: callers must not confuse "not allowed" with a bad constant.
func IsUserAllowed(minimal authority.Authority, user *User) (bool, error) {
	if !authority.Valid(minimal) {
		return false, &authority.InvalidAuthorityError{Value: string(minimal)}
	}
	return userAllowed(minimal, user), nil
}

// userAllowed is the internal form for call sites using the package
// constants, where validation cannot fail.
func userAllowed(minimal authority.Authority, user *User) bool {
	if user == nil {
		return false
	}
	if user.SuperUser {
		return true
	}
	return authority.Compare(HighestAuthority(user, true), minimal) <= 0
}

// AllowedAuthoritiesForInvitation determines which authority levels the user
// may offer when composing an invitation for the selected roles. Selecting
// roles narrows the result: the weakest grant the user holds across the
// selection caps what a single invitation may delegate.
func AllowedAuthoritiesForInvitation(user *User, selectedRoles []RoleRef) []authority.Authority {
	if user == nil {
		return []authority.Authority{}
	}
	if user.SuperUser {
		// No organization scope to anchor an institution-admin grant.
		return authoritiesExcept(authority.InstitutionAdmin)
	}
	if user.InstitutionAdmin && len(user.Applications) > 0 {
		// Institution admins with scoped applications may offer anything
		// below SUPER_USER, regardless of the selected roles. Intentionally
		// more permissive than the inviter branch; preserved as observed.
		return authoritiesExcept(authority.SuperUser)
	}
	if !userAllowed(authority.Inviter, user) {
		return []authority.Authority{}
	}
	if len(selectedRoles) == 0 {
		return authoritiesBelow(HighestAuthority(user, true))
	}

	// The least privileged grant among the selected roles is the binding
	// constraint; roles the user does not hold count as GUEST.
	least := authority.SuperUser
	for _, ref := range selectedRoles {
		granted := authority.Guest
		if role := ref.Unwrap(); role != nil {
			if ur := userRoleFor(user, role.ID); ur != nil {
				granted = ur.Authority
			}
		}
		if authority.Compare(granted, least) > 0 {
			least = granted
		}
	}
	return authoritiesBelow(least)
}

// AllowedToRenewUserRole governs edit, renew and delete rights on an
// existing user role. deleteAction only activates the self-service branch;
// every other rule is shared between renew and delete. targetGuestRole is
// sugar for evaluating the target as if its authority were GUEST.
func AllowedToRenewUserRole(user *User, target *UserRole, deleteAction, targetGuestRole bool) bool {
	if user == nil || target == nil {
		return false
	}
	if user.SuperUser {
		return true
	}
	if deleteAction && target.UserInfo != nil && user.ID != "" && user.ID == target.UserInfo.ID {
		// Users may always remove their own membership.
		return true
	}

	effective := target.Authority
	if targetGuestRole {
		effective = authority.Guest
	}
	rule, ok := renewRules[effective]
	if !ok {
		return false
	}
	return rule(user, ownershipFlags(user, target.Role, effective))
}

// AllowedToDeleteInvitation reports whether the user may revoke a pending
// invitation: either they issued it to themselves, or they could revoke
// every grant it offers. Partial authority over the bundled roles is not
// sufficient.
func AllowedToDeleteInvitation(user *User, invitation *Invitation) bool {
	if user == nil || invitation == nil {
		return false
	}
	if invitation.UserID != "" && invitation.UserID == user.ID {
		return true
	}
	for _, ref := range invitation.Roles {
		target := &UserRole{Authority: invitation.IntendedAuthority, Role: ref.Unwrap()}
		if !AllowedToRenewUserRole(user, target, false, false) {
			return false
		}
	}
	return true
}

// AllowedToEditRole reports whether the user may edit a role definition.
func AllowedToEditRole(user *User, role *Role) bool {
	if user == nil || role == nil {
		return false
	}
	if user.SuperUser {
		return true
	}
	if !userAllowed(authority.Manager, user) {
		return false
	}
	if allowedByInstitutionAdmin(user, role) {
		return true
	}
	for _, ur := range user.UserRoles {
		if ur == nil || ur.Role == nil {
			continue
		}
		if ur.Role.ID == role.ID && authority.Compare(ur.Authority, authority.Manager) <= 0 {
			return true
		}
	}
	return false
}

// userRoleFor returns the user's membership for the given role id, if any.
func userRoleFor(user *User, roleID string) *UserRole {
	if roleID == "" {
		return nil
	}
	for _, ur := range user.UserRoles {
		if ur != nil && ur.Role != nil && ur.Role.ID == roleID {
			return ur
		}
	}
	return nil
}

func authoritiesExcept(excluded authority.Authority) []authority.Authority {
	result := make([]authority.Authority, 0, 4)
	for _, a := range authority.All() {
		if a != excluded {
			result = append(result, a)
		}
	}
	return result
}

// authoritiesBelow returns every authority strictly less privileged than
// ceiling, in hierarchy order.
func authoritiesBelow(ceiling authority.Authority) []authority.Authority {
	result := make([]authority.Authority, 0, 4)
	for _, a := range authority.All() {
		if authority.Compare(a, ceiling) > 0 {
			result = append(result, a)
		}
	}
	return result
}
