package manage

// ProvisioningSummary is the reduced view of a provisioning config nested
// under a provider.
type ProvisioningSummary struct {
	ProvisioningType string `json:"provisioningType"`
	Name             string `json:"name"`
}

// ProviderSummary is one normalized record per provider, joining the
// provisioning configs that reference it.
type ProviderSummary struct {
	ID            string                `json:"id"`
	Logo          string                `json:"logo,omitempty"`
	Name          string                `json:"name"`
	Type          string                `json:"type,omitempty"`
	Organization  string                `json:"organization,omitempty"`
	URL           string                `json:"url,omitempty"`
	RoleCount     int                   `json:"roleCount"`
	Provisionings []ProvisioningSummary `json:"provisionings"`
}

// MergeProvidersProvisioningsRoles joins providers with the provisioning
// configs whose application set includes them. Output preserves provider
// input order; nested provisionings preserve their relative order. A provider
// referenced by no provisioning gets an empty slice, never nil.
func MergeProvidersProvisioningsRoles(providers, provisionings []Entity, locale string) []ProviderSummary {
	result := make([]ProviderSummary, 0, len(providers))
	for _, provider := range providers {
		id := provider.ManageID()
		summary := ProviderSummary{
			ID:            id,
			Logo:          provider.String("logo"),
			Name:          provider.Localized("name", locale),
			Type:          provider.String("type"),
			Organization:  provider.Localized("OrganizationName", locale),
			URL:           providerURL(provider),
			RoleCount:     intValue(provider["roleCount"]),
			Provisionings: []ProvisioningSummary{},
		}
		for _, prov := range provisionings {
			if !provisioningReferences(prov, id) {
				continue
			}
			summary.Provisionings = append(summary.Provisionings, ProvisioningSummary{
				ProvisioningType: prov.String("provisioning_type"),
				Name:             prov.Localized("name", locale),
			})
		}
		result = append(result, summary)
	}
	return result
}

func providerURL(provider Entity) string {
	if v := provider.String("url"); v != "" {
		return v
	}
	return provider.String("landingPage")
}

// provisioningReferences reports whether the provisioning's application set
// contains the provider id. The backend emits the set either as plain ids or
// as {id} objects.
func provisioningReferences(prov Entity, providerID string) bool {
	if providerID == "" {
		return false
	}
	apps, ok := prov["applications"].([]any)
	if !ok {
		return false
	}
	for _, app := range apps {
		switch v := app.(type) {
		case string:
			if v == providerID {
				return true
			}
		case map[string]any:
			if Entity(v).ManageID() == providerID {
				return true
			}
		}
	}
	return false
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
