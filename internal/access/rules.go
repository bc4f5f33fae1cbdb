package access

import (
	"openconext.org/invite/internal/authority"
)

// ownership captures the three ways a user can be entitled to act on a role:
// holding the same role directly, holding MANAGER or better on a role that
// shares an application, or institution-admin scope over one of the role's
// applications.
type ownership struct {
	direct             bool
	byManager          bool
	byInstitutionAdmin bool
}

// renewRules is the authority-indexed policy table shared by renew and
// delete checks on user roles. Keeping the five-way dispatch in one place
// prevents the branches from drifting apart across call sites.
var renewRules = map[authority.Authority]func(user *User, own ownership) bool{
	// Nobody alters super-user or institution-admin grants through this path.
	authority.SuperUser:        func(*User, ownership) bool { return false },
	authority.InstitutionAdmin: func(*User, ownership) bool { return false },
	authority.Manager: func(user *User, own ownership) bool {
		return own.byInstitutionAdmin
	},
	authority.Inviter: func(user *User, own ownership) bool {
		return userAllowed(authority.Manager, user) &&
			(own.direct || own.byManager || own.byInstitutionAdmin)
	},
	authority.Guest: func(user *User, own ownership) bool {
		return userAllowed(authority.Inviter, user) &&
			(own.direct || own.byManager || own.byInstitutionAdmin)
	},
}

func ownershipFlags(user *User, role *Role, targetAuthority authority.Authority) ownership {
	return ownership{
		direct:             userRoleFor(user, roleID(role)) != nil,
		byManager:          allowedByManager(user, role, targetAuthority),
		byInstitutionAdmin: allowedByInstitutionAdmin(user, role),
	}
}

func roleID(role *Role) string {
	if role == nil {
		return ""
	}
	return role.ID
}

// allowedByInstitutionAdmin reports whether one of the admin's scoped
// applications shares a manageId with the role's usages.
func allowedByInstitutionAdmin(user *User, role *Role) bool {
	if user == nil || !user.InstitutionAdmin || role == nil {
		return false
	}
	targets := usageManageIDs(role)
	if len(targets) == 0 {
		return false
	}
	for _, app := range user.Applications {
		if id := app.manageIdentifier(); id != "" {
			if _, ok := targets[id]; ok {
				return true
			}
		}
	}
	return false
}

// allowedByManager applies only when the target grant sits below MANAGER:
// the user must hold MANAGER or better on some role sharing an application
// with the target role.
func allowedByManager(user *User, role *Role, targetAuthority authority.Authority) bool {
	if user == nil || role == nil {
		return false
	}
	if authority.Compare(targetAuthority, authority.Manager) <= 0 {
		return false
	}
	targets := usageManageIDs(role)
	if len(targets) == 0 {
		return false
	}
	for _, ur := range user.UserRoles {
		if ur == nil || ur.Role == nil {
			continue
		}
		if authority.Compare(ur.Authority, authority.Manager) > 0 {
			continue
		}
		for _, usage := range ur.Role.ApplicationUsages {
			if id := usage.Application.manageIdentifier(); id != "" {
				if _, ok := targets[id]; ok {
					return true
				}
			}
		}
	}
	return false
}

func usageManageIDs(role *Role) map[string]struct{} {
	ids := make(map[string]struct{}, len(role.ApplicationUsages))
	for _, usage := range role.ApplicationUsages {
		if id := usage.Application.manageIdentifier(); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}
