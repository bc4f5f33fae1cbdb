// Package authority defines the five-level privilege hierarchy used across
// the invite domain and the total order between its members.
package authority

import "fmt"

// Authority is one of the five recognised privilege levels. The set is
// closed: comparisons always go through the fixed rank table, never through
// string ordering.
type Authority string

const (
	SuperUser        Authority = "SUPER_USER"
	InstitutionAdmin Authority = "INSTITUTION_ADMIN"
	Manager          Authority = "MANAGER"
	Inviter          Authority = "INVITER"
	Guest            Authority = "GUEST"
)

// ranks maps each authority to its hierarchy position. Lower is more
// privileged.
var ranks = map[Authority]int{
	SuperUser:        1,
	InstitutionAdmin: 2,
	Manager:          3,
	Inviter:          4,
	Guest:            5,
}

// InvalidAuthorityError reports a value outside the five-member enumeration.
// It signals a programmer or integration error and must never be collapsed
// into a plain "not allowed" result.
type InvalidAuthorityError struct {
	Value string
}

func (e *InvalidAuthorityError) Error() string {
	return fmt.Sprintf("authority: invalid value %q", e.Value)
}

// All returns the five authorities in hierarchy order, highest privilege
// first.
func All() []Authority {
	return []Authority{SuperUser, InstitutionAdmin, Manager, Inviter, Guest}
}

// Valid reports whether a is one of the five recognised values.
func Valid(a Authority) bool {
	_, ok := ranks[a]
	return ok
}

// Parse validates a raw authority string coming from a caller or payload.
func Parse(s string) (Authority, error) {
	a := Authority(s)
	if !Valid(a) {
		return "", &InvalidAuthorityError{Value: s}
	}
	return a, nil
}

// Rank returns the hierarchy position of a (1 = SUPER_USER .. 5 = GUEST).
// Unrecognised values rank below GUEST so that malformed data can never
// elevate anyone.
func Rank(a Authority) int {
	if r, ok := ranks[a]; ok {
		return r
	}
	return len(ranks) + 1
}

// Compare returns a negative number when a outranks b, zero when equal and a
// positive number when b outranks a.
func Compare(a, b Authority) int {
	return Rank(a) - Rank(b)
}
