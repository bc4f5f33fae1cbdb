package access

import (
	"sort"

	"openconext.org/invite/internal/authority"
	"openconext.org/invite/internal/manage"
)

// MyApplication is one launchable application on the guest portal's
// "applications I can access" view, annotated with the role that grants it.
type MyApplication struct {
	RoleID           string              `json:"roleId"`
	RoleName         string              `json:"roleName"`
	RoleDescription  string              `json:"roleDescription,omitempty"`
	Authority        authority.Authority `json:"authority"`
	ApplicationName  string              `json:"applicationName"`
	OrganizationName string              `json:"organizationName,omitempty"`
	LandingPage      string              `json:"landingPage,omitempty"`
	Logo             string              `json:"logo,omitempty"`
	ManageID         string              `json:"manageId,omitempty"`
}

// ReduceApplicationsFromUserRoles flattens every membership's resolved
// catalog records into one launch list. Records unknown in Manage are
// excluded: an application the catalog no longer knows must never be offered
// as a launch target. The result is sorted by application name then role
// name, locale-aware and case-insensitive.
func ReduceApplicationsFromUserRoles(userRoles []*UserRole, locale string) []MyApplication {
	apps := make([]MyApplication, 0, len(userRoles))
	for _, ur := range userRoles {
		if ur == nil || ur.Role == nil {
			continue
		}
		for _, entity := range ur.Role.ApplicationMaps {
			if entity.Unknown() {
				continue
			}
			apps = append(apps, MyApplication{
				RoleID:           ur.Role.ID,
				RoleName:         ur.Role.Name,
				RoleDescription:  ur.Role.Description,
				Authority:        ur.Authority,
				ApplicationName:  entity.Localized("name", locale),
				OrganizationName: entity.Localized("OrganizationName", locale),
				LandingPage:      entity.String("landingPage"),
				Logo:             entity.String("logo"),
				ManageID:         entity.ManageID(),
			})
		}
	}

	collator := manage.Collator(locale)
	sort.SliceStable(apps, func(i, j int) bool {
		if c := collator.CompareString(apps[i].ApplicationName, apps[j].ApplicationName); c != 0 {
			return c < 0
		}
		return collator.CompareString(apps[i].RoleName, apps[j].RoleName) < 0
	})
	return apps
}
