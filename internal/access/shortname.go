package access

import (
	"regexp"
	"strings"
)

var (
	shortNameDisallowed = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	shortNameSpaces     = regexp.MustCompile(` +`)
)

// ConstructShortName sanitizes a role name into the shortName used in URN
// identifiers: disallowed characters stripped, whitespace runs collapsed to
// single underscores, lower-cased.
func ConstructShortName(name string) string {
	name = shortNameDisallowed.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = shortNameSpaces.ReplaceAllString(name, "_")
	return strings.ToLower(name)
}
