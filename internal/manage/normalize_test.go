package manage

import "testing"

func TestSingleProviderToOptionPrefersLocale(t *testing.T) {
	provider := Entity{
		"id":                  "m1",
		"type":                "saml20_sp",
		"name:en":             "Wiki",
		"name:nl":             "Wiki NL",
		"OrganizationName:en": "SURF",
		"landingPage":         "https://wiki.example.edu",
	}
	opt := SingleProviderToOption(provider, "nl")
	if opt.Label != "Wiki NL (SURF)" {
		t.Fatalf("unexpected label: %q", opt.Label)
	}
	if opt.Value != "m1" || opt.ManageID != "m1" {
		t.Fatalf("unexpected identifiers: %+v", opt)
	}
	if opt.Type != "saml20_sp" || opt.LandingPage != "https://wiki.example.edu" {
		t.Fatalf("unexpected option: %+v", opt)
	}
}

func TestSingleProviderToOptionWithoutOrganization(t *testing.T) {
	opt := SingleProviderToOption(Entity{"manageId": "m2", "name:en": "Calendar"}, "en")
	if opt.Label != "Calendar" {
		t.Fatalf("no parens segment expected when organization is empty, got %q", opt.Label)
	}
}

func TestSingleProviderToOptionUnwrapsUsageStub(t *testing.T) {
	usage := Entity{
		"application": map[string]any{
			"manageId":    "m3",
			"name:en":     "Cloud",
			"landingPage": "https://cloud.example.edu",
		},
	}
	opt := SingleProviderToOption(usage, "en")
	if opt.ManageID != "m3" || opt.Label != "Cloud" {
		t.Fatalf("usage stub not unwrapped: %+v", opt)
	}
}

func TestDeriveApplicationAttributesSingle(t *testing.T) {
	attrs := DeriveApplicationAttributes([]Entity{{
		"name:en":             "Wiki",
		"OrganizationName:en": "SURF",
		"logo":                "logo.png",
	}}, "en", "Multiple applications", "and")
	if attrs.ApplicationName != "Wiki" || attrs.ApplicationOrganizationName != "SURF" {
		t.Fatalf("unexpected attrs: %+v", attrs)
	}
	if attrs.Logo != "logo.png" || attrs.UnknownInManage {
		t.Fatalf("unexpected attrs: %+v", attrs)
	}
}

func TestDeriveApplicationAttributesMultiple(t *testing.T) {
	apps := []Entity{
		{"name:en": "Wiki", "OrganizationName:en": "SURF", "logo": "first.png"},
		{"name:en": "Calendar", "OrganizationName:en": "SURF"},
		{"name:en": "Wiki", "OrganizationName:en": "UvA"},
	}
	attrs := DeriveApplicationAttributes(apps, "en", "Multiple applications", "and")
	if attrs.ApplicationName != "Multiple applications" {
		t.Fatalf("multiple apps must use the generic label, got %q", attrs.ApplicationName)
	}
	// Dedupe preserves first-seen order; the second Wiki collapses.
	if attrs.ApplicationNames != "Wiki and Calendar" {
		t.Fatalf("unexpected joined names: %q", attrs.ApplicationNames)
	}
	if attrs.ApplicationOrganizationName != "SURF and UvA" {
		t.Fatalf("unexpected joined organizations: %q", attrs.ApplicationOrganizationName)
	}
	if attrs.Logo != "first.png" {
		t.Fatalf("logo must come from the first application, got %q", attrs.Logo)
	}
}

func TestDeriveApplicationAttributesDeduplicatesNames(t *testing.T) {
	apps := []Entity{
		{"name:en": "Wiki", "OrganizationName:en": "SURF"},
		{"name:en": "Wiki", "OrganizationName:en": "SURF"},
		{"name:en": "Calendar", "OrganizationName:en": "SURF"},
	}
	attrs := DeriveApplicationAttributes(apps, "en", "Multiple", "and")
	if attrs.ApplicationNames != "Wiki and Calendar" {
		t.Fatalf("repeated names must collapse, first-seen order kept: %q", attrs.ApplicationNames)
	}
	if attrs.ApplicationOrganizationName != "SURF" {
		t.Fatalf("a single distinct organization must not be joined: %q", attrs.ApplicationOrganizationName)
	}
}

func TestDeriveApplicationAttributesUnknownPropagates(t *testing.T) {
	apps := []Entity{
		{"name:en": "Wiki"},
		{"unknown": true},
	}
	attrs := DeriveApplicationAttributes(apps, "en", "Multiple", "and")
	if !attrs.UnknownInManage {
		t.Fatalf("any unknown member must flag the role")
	}
	if attrs := DeriveApplicationAttributes([]Entity{nil}, "en", "Multiple", "and"); !attrs.UnknownInManage {
		t.Fatalf("a nil entry counts as unknown")
	}
}

func TestDeriveApplicationAttributesEmptyInput(t *testing.T) {
	attrs := DeriveApplicationAttributes(nil, "en", "Multiple", "and")
	if attrs.ApplicationName != "" || attrs.UnknownInManage {
		t.Fatalf("empty input derives nothing: %+v", attrs)
	}
}

func TestSplitListSemantically(t *testing.T) {
	cases := []struct {
		names []string
		want  string
	}{
		{nil, ""},
		{[]string{"x"}, "x"},
		{[]string{"x", "y"}, "x and y"},
		{[]string{"x", "y", "z"}, "x, y and z"},
	}
	for _, c := range cases {
		if got := SplitListSemantically(c.names, "and"); got != c.want {
			t.Fatalf("SplitListSemantically(%v)=%q, want %q", c.names, got, c.want)
		}
	}
}

func TestMergeProvidersProvisioningsRoles(t *testing.T) {
	providers := []Entity{
		{"id": "p1", "name:en": "Wiki", "type": "saml20_sp", "OrganizationName:en": "SURF", "url": "https://wiki", "roleCount": float64(3)},
		{"id": "p2", "name:en": "Calendar", "type": "oidc10_rp"},
	}
	provisionings := []Entity{
		{"name:en": "SCIM east", "provisioning_type": "scim", "applications": []any{map[string]any{"id": "p1"}}},
		{"name:en": "EVA", "provisioning_type": "eva", "applications": []any{"p1", "p9"}},
	}

	merged := MergeProvidersProvisioningsRoles(providers, provisionings, "en")
	if len(merged) != 2 {
		t.Fatalf("expected one record per provider, got %d", len(merged))
	}
	first := merged[0]
	if first.ID != "p1" || first.Name != "Wiki" || first.RoleCount != 3 {
		t.Fatalf("unexpected provider record: %+v", first)
	}
	if len(first.Provisionings) != 2 || first.Provisionings[0].Name != "SCIM east" || first.Provisionings[1].ProvisioningType != "eva" {
		t.Fatalf("unexpected provisionings: %+v", first.Provisionings)
	}
	second := merged[1]
	if second.Provisionings == nil || len(second.Provisionings) != 0 {
		t.Fatalf("provider without provisionings must get an empty slice, got %#v", second.Provisionings)
	}
}

func TestLocalizedFallsBackToEnglish(t *testing.T) {
	e := Entity{"name:en": "English only"}
	if got := e.Localized("name", "nl"); got != "English only" {
		t.Fatalf("expected English fallback, got %q", got)
	}
	if got := Entity(nil).Localized("name", "nl"); got != "" {
		t.Fatalf("nil entity must degrade to empty, got %q", got)
	}
}
