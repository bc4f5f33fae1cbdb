// Package manage shapes raw records from the Manage catalog (the backend's
// registry of SAML/OIDC applications and provisioning configs) into the
// denormalized fields the authorization engine and admin views read.
//
// Catalog records are schemaless JSON objects with locale-keyed fields such
// as "name:en" and "OrganizationName:nl". Missing optional fields degrade to
// empty values, never to errors: stale catalog references are an expected
// condition.
package manage

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entity is a raw Manage record as returned by the backend.
type Entity map[string]any

// String returns the string value under key, or "" when absent or not a
// string.
func (e Entity) String(key string) string {
	if e == nil {
		return ""
	}
	if v, ok := e[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the boolean value under key, false when absent.
func (e Entity) Bool(key string) bool {
	if e == nil {
		return false
	}
	if v, ok := e[key].(bool); ok {
		return v
	}
	return false
}

// Localized resolves a locale-keyed field: "field:<locale>" first, then the
// English fallback "field:en".
func (e Entity) Localized(field, locale string) string {
	if v := e.String(field + ":" + locale); v != "" {
		return v
	}
	return e.String(field + ":en")
}

// ManageID returns the catalog identifier of the record. Depending on the
// endpoint the backend emits either "manageId" or "id".
func (e Entity) ManageID() string {
	if v := e.String("manageId"); v != "" {
		return v
	}
	return e.String("id")
}

// Unknown reports whether the record is a stub for an application the
// catalog no longer knows about.
func (e Entity) Unknown() bool {
	return e == nil || e.Bool("unknown")
}

// Option is a display option derived from a provider record or an
// applicationUsage stub.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Type        string `json:"type,omitempty"`
	ManageID    string `json:"manageId,omitempty"`
	LandingPage string `json:"landingPage,omitempty"`
}

// SingleProviderToOption builds a display option from either a full provider
// record or an applicationUsage stub (an object carrying a nested
// "application"). The label prefers the locale name, falls back to English,
// and appends " (OrganizationName)" only when an organization name resolves.
func SingleProviderToOption(provider Entity, locale string) Option {
	if nested, ok := provider["application"].(map[string]any); ok {
		provider = Entity(nested)
	}
	name := provider.Localized("name", locale)
	label := name
	if org := provider.Localized("OrganizationName", locale); org != "" {
		label = name + " (" + org + ")"
	}
	return Option{
		Value:       provider.ManageID(),
		Label:       label,
		Type:        provider.String("type"),
		ManageID:    provider.ManageID(),
		LandingPage: provider.String("landingPage"),
	}
}

// SplitListSemantically joins names as "a, b and c", using conjunction as the
// final separator. Single elements pass through untouched.
func SplitListSemantically(names []string, conjunction string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	head := strings.Join(names[:len(names)-1], ", ")
	return head + " " + conjunction + " " + names[len(names)-1]
}

// Collator returns a case-insensitive collator for the given locale tag.
// Unparseable locales collapse to the root collation rather than failing.
func Collator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}

// dedupe keeps the first occurrence of every non-empty name, preserving
// first-seen order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}
