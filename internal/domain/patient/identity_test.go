package patient

import "testing"

func TestDeriveIDStable(t *testing.T) {
	a := DeriveID("Alice Mensah", "alice@example.com", "0244000000")
	b := DeriveID("Alice Mensah", "alice@example.com", "0244000000")
	if a != b {
		t.Errorf("same triple produced %q and %q", a, b)
	}
	if len(a) != 10 {
		t.Errorf("id length = %d, want 10", len(a))
	}
}

func TestDeriveIDCaseRules(t *testing.T) {
	base := DeriveID("Alice Mensah", "alice@example.com", "0244000000")

	// Name and email are case-insensitive.
	if got := DeriveID("ALICE MENSAH", "Alice@Example.COM", "0244000000"); got != base {
		t.Errorf("case variant produced %q, want %q", got, base)
	}

	// Phone is exact: a different string is a different identity.
	if got := DeriveID("Alice Mensah", "alice@example.com", "0244-000-000"); got == base {
		t.Error("phone variant produced the same id")
	}
}

func TestDeriveIDDistinguishesTriples(t *testing.T) {
	a := DeriveID("Alice Mensah", "alice@example.com", "0244000000")
	b := DeriveID("Alice Mensah", "alice2@example.com", "0244000000")
	if a == b {
		t.Error("different emails produced the same id")
	}
}

func TestSameIdentity(t *testing.T) {
	p := &Patient{Name: "Alice Mensah", Email: "alice@example.com", Phone: "0244000000"}

	if !sameIdentity(p, "ALICE mensah", "Alice@example.com", "0244000000") {
		t.Error("case-insensitive match failed")
	}
	if sameIdentity(p, "Alice Mensah", "alice@example.com", "0200000000") {
		t.Error("different phone matched")
	}
	if sameIdentity(p, "Bob Mensah", "alice@example.com", "0244000000") {
		t.Error("different name matched")
	}
}
