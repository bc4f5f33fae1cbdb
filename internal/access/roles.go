package access

import (
	"sort"

	"openconext.org/invite/internal/authority"
	"openconext.org/invite/internal/listkit"
	"openconext.org/invite/internal/manage"
)

// RoleOption is the flat, uniform picker entry produced by
// MarkAndFilterRoles for both plain roles and the user's own memberships.
type RoleOption struct {
	IsUserRole  bool                `json:"isUserRole"`
	Label       string              `json:"label"`
	Value       string              `json:"value"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Authority   authority.Authority `json:"authority,omitempty"`
	EndDate     int64               `json:"endDate,omitempty"`
	Role        *Role               `json:"role,omitempty"`
	manage.RoleAttributes
}

// MarkAndFilterRoles builds the unified "roles I can act on" list: every
// role in allRoles decorated as a plain option, the user's own memberships
// decorated as user-role options, with duplicates (by role id) resolved in
// favour of the membership. Inputs are never mutated; decoration happens on
// copies. The result never contains two entries for the same role id.
func MarkAndFilterRoles(user *User, allRoles []*Role, locale, multipleLabel, conjunction, sortKey string, reversed bool) []RoleOption {
	held := make(map[string]struct{})
	if user != nil {
		for _, ur := range user.UserRoles {
			if ur != nil && ur.Role != nil {
				held[ur.Role.ID] = struct{}{}
			}
		}
	}

	options := make([]RoleOption, 0, len(allRoles)+len(held))
	for _, role := range allRoles {
		if role == nil {
			continue
		}
		if _, ok := held[role.ID]; ok {
			continue
		}
		options = append(options, decorateRole(role, locale, multipleLabel, conjunction))
	}
	if user != nil {
		for _, ur := range user.UserRoles {
			if ur == nil || ur.Role == nil {
				continue
			}
			option := decorateRole(ur.Role, locale, multipleLabel, conjunction)
			option.IsUserRole = true
			option.Authority = ur.Authority
			option.EndDate = ur.EndDate
			options = append(options, option)
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		return listkit.OrderValues(options[i].sortValue(sortKey), options[j].sortValue(sortKey), reversed) < 0
	})
	return options
}

// decorateRole copies the role's display fields into a flat option and
// derives the application attributes from the resolved catalog records. A
// role whose usages could not be resolved at all is unknown in Manage.
func decorateRole(role *Role, locale, multipleLabel, conjunction string) RoleOption {
	attrs := manage.DeriveApplicationAttributes(role.ApplicationMaps, locale, multipleLabel, conjunction)
	if len(role.ApplicationMaps) < len(role.ApplicationUsages) {
		attrs.UnknownInManage = true
	}
	copied := *role
	return RoleOption{
		Label:          role.Name,
		Value:          role.ID,
		Name:           role.Name,
		Description:    role.Description,
		Role:           &copied,
		RoleAttributes: attrs,
	}
}

func (o RoleOption) sortValue(key string) any {
	switch key {
	case "label":
		return o.Label
	case "value":
		return o.Value
	case "description":
		return o.Description
	case "authority":
		return string(o.Authority)
	case "isUserRole":
		return o.IsUserRole
	case "applicationName":
		return o.ApplicationName
	case "applicationOrganizationName":
		return o.ApplicationOrganizationName
	case "endDate", "end_date":
		if o.EndDate == 0 {
			return nil
		}
		return o.EndDate
	default:
		return o.Name
	}
}
