package manage

// RoleAttributes carries the application display fields derived for a role
// from its resolved catalog records.
type RoleAttributes struct {
	ApplicationName             string `json:"applicationName,omitempty"`
	ApplicationNames            string `json:"applicationNames,omitempty"`
	ApplicationOrganizationName string `json:"applicationOrganizationName,omitempty"`
	Logo                        string `json:"logo,omitempty"`
	UnknownInManage             bool   `json:"unknownInManage"`
}

// DeriveApplicationAttributes computes the display attributes for a role
// linked to the given catalog records. A nil entry or one flagged "unknown"
// marks the whole role unknownInManage; a single application contributes its
// own fields, multiple applications collapse to multipleLabel with a
// deduplicated semantic join of their names.
func DeriveApplicationAttributes(apps []Entity, locale, multipleLabel, conjunction string) RoleAttributes {
	var attrs RoleAttributes
	if len(apps) == 0 {
		return attrs
	}
	for _, app := range apps {
		if app.Unknown() {
			attrs.UnknownInManage = true
			break
		}
	}

	if len(apps) == 1 {
		app := apps[0]
		attrs.ApplicationName = app.Localized("name", locale)
		attrs.ApplicationNames = attrs.ApplicationName
		attrs.ApplicationOrganizationName = app.Localized("OrganizationName", locale)
		attrs.Logo = app.String("logo")
		return attrs
	}

	names := make([]string, 0, len(apps))
	orgNames := make([]string, 0, len(apps))
	for _, app := range apps {
		names = append(names, app.Localized("name", locale))
		orgNames = append(orgNames, app.Localized("OrganizationName", locale))
	}
	attrs.ApplicationName = multipleLabel
	attrs.ApplicationNames = SplitListSemantically(dedupe(names), conjunction)
	attrs.ApplicationOrganizationName = SplitListSemantically(dedupe(orgNames), conjunction)
	attrs.Logo = apps[0].String("logo")
	return attrs
}
