package authority

import (
	"errors"
	"testing"
)

func TestRankIsStrictTotalOrder(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("expected 5 authorities, got %d", len(all))
	}
	for i := 0; i < len(all); i++ {
		for j := 0; j < len(all); j++ {
			moreprivileged := Rank(all[i]) < Rank(all[j])
			if moreprivileged != (i < j) {
				t.Fatalf("rank order broken for %s vs %s", all[i], all[j])
			}
		}
	}
}

func TestCompare(t *testing.T) {
	if Compare(SuperUser, Guest) >= 0 {
		t.Fatalf("SUPER_USER must outrank GUEST")
	}
	if Compare(Guest, Inviter) <= 0 {
		t.Fatalf("INVITER must outrank GUEST")
	}
	if Compare(Manager, Manager) != 0 {
		t.Fatalf("equal authorities must compare to zero")
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "ADMIN", "super_user", "NOT_A_REAL_AUTHORITY"} {
		_, err := Parse(raw)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		var invalid *InvalidAuthorityError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidAuthorityError, got %T", err)
		}
		if invalid.Value != raw {
			t.Fatalf("error should carry the offending value, got %q", invalid.Value)
		}
	}
}

func TestParseAcceptsAllMembers(t *testing.T) {
	for _, a := range All() {
		parsed, err := Parse(string(a))
		if err != nil {
			t.Fatalf("Parse(%s): %v", a, err)
		}
		if parsed != a {
			t.Fatalf("Parse(%s) = %s", a, parsed)
		}
	}
}

func TestUnknownValueNeverOutranksGuest(t *testing.T) {
	if Rank(Authority("MYSTERY")) <= Rank(Guest) {
		t.Fatalf("unknown authority must rank below GUEST")
	}
}
