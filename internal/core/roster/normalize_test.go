package roster

import (
	"testing"
)

func TestRow_First(t *testing.T) {
	row := Row{"fullname": " Alice ", "email": "a@kgkite.ac.in"}

	if got := row.First(StudentNameAliases...); got != "Alice" {
		t.Fatalf("expected fullname alias to resolve, got %q", got)
	}
	if got := row.First(EmailAliases...); got != "a@kgkite.ac.in" {
		t.Fatalf("expected email alias to resolve, got %q", got)
	}
	if got := row.First(PhoneAliases...); got != "" {
		t.Fatalf("expected empty for absent aliases, got %q", got)
	}
}

func TestRow_First_SkipsEmptyAlias(t *testing.T) {
	row := Row{"collegeemail": "   ", "email": "b@kgkite.ac.in"}

	if got := row.First(EmailAliases...); got != "b@kgkite.ac.in" {
		t.Fatalf("whitespace-only alias should be skipped, got %q", got)
	}
}

func TestTrimLower(t *testing.T) {
	if got := TrimLower("  Alice@KGkite.AC.in "); got != "alice@kgkite.ac.in" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("React, Node.js , Python")
	want := []string{"React", "Node.js", "Python"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if SplitList("  ") != nil {
		t.Fatalf("expected nil for blank input")
	}
	if got := SplitList("a,,b"); len(got) != 2 {
		t.Fatalf("empty tokens should be dropped, got %v", got)
	}
}

func TestParseInt_Lenient(t *testing.T) {
	if v := ParseInt("3"); v == nil || *v != 3 {
		t.Fatalf("expected 3, got %v", v)
	}
	if v := ParseInt("third year"); v != nil {
		t.Fatalf("expected nil for non-numeric, got %d", *v)
	}
	if v := ParseInt(""); v != nil {
		t.Fatalf("expected nil for empty, got %d", *v)
	}
}

func TestParseBool_Fallback(t *testing.T) {
	if !ParseBool("Yes", false) {
		t.Fatalf("expected yes → true")
	}
	if ParseBool("0", true) {
		t.Fatalf("expected 0 → false")
	}
	if !ParseBool("maybe", true) {
		t.Fatalf("expected fallback for unrecognized value")
	}
}

func TestEmailLocalPart(t *testing.T) {
	if got := EmailLocalPart("Alice.K@kgkite.ac.in"); got != "alice.k" {
		t.Fatalf("unexpected local part: %q", got)
	}
}
