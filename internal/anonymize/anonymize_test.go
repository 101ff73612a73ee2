package anonymize

import (
	"strings"
	"testing"
)

func mustAnonymizer(t *testing.T, key string, overrides map[string]string) *Anonymizer {
	t.Helper()
	a, err := New(key, overrides)
	if err != nil {
		t.Fatalf("New(%q): %v", key, err)
	}
	return a
}

func TestNewRequiresKey(t *testing.T) {
	for _, key := range []string{"", "   ", "\t"} {
		if _, err := New(key, nil); err == nil {
			t.Fatalf("New(%q) accepted a blank key", key)
		}
	}
}

func TestAliasDeterministic(t *testing.T) {
	names := []string{"bbo_player1", "north_star", "xx_queen_xx"}

	a := mustAnonymizer(t, "secret", nil)
	b := mustAnonymizer(t, "secret", nil)
	for _, name := range names {
		if got, want := b.Alias(name), a.Alias(name); got != want {
			t.Fatalf("Alias(%q) differs across instances: %q vs %q", name, got, want)
		}
	}
}

func TestAliasCaseInsensitive(t *testing.T) {
	a := mustAnonymizer(t, "secret", nil)
	if got, want := a.Alias("SomePlayer"), a.Alias("somePLAYER"); got != want {
		t.Fatalf("case variants diverged: %q vs %q", got, want)
	}
}

func TestAliasKeySensitive(t *testing.T) {
	names := []string{"alpha", "bravo", "charlie", "delta", "echo"}

	a := mustAnonymizer(t, "key-one", nil)
	b := mustAnonymizer(t, "key-two", nil)
	same := 0
	for _, name := range names {
		if a.Alias(name) == b.Alias(name) {
			same++
		}
	}
	if same == len(names) {
		t.Fatal("every alias identical under different keys")
	}
}

func TestAliasShape(t *testing.T) {
	a := mustAnonymizer(t, "secret", nil)
	alias := a.Alias("someplayer")

	first, surname, ok := strings.Cut(alias, "_")
	if !ok {
		t.Fatalf("Alias = %q, want First_Surname", alias)
	}
	if !containsName(firstNames, first) {
		t.Fatalf("first name %q not drawn from the pool", first)
	}
	if !containsName(surnames, surname) {
		t.Fatalf("surname %q not drawn from the pool", surname)
	}
}

func TestAliasCollisionSuffix(t *testing.T) {
	base := mustAnonymizer(t, "secret", nil).Alias("someplayer")

	// Reserving the natural alias through overrides forces the
	// generator onto the numbered fallback.
	a := mustAnonymizer(t, "secret", map[string]string{"other": base})
	if got, want := a.Alias("someplayer"), base+"_2"; got != want {
		t.Fatalf("Alias after one reservation = %q, want %q", got, want)
	}

	b := mustAnonymizer(t, "secret", map[string]string{
		"other1": base,
		"other2": base + "_2",
	})
	if got, want := b.Alias("someplayer"), base+"_3"; got != want {
		t.Fatalf("Alias after two reservations = %q, want %q", got, want)
	}
}

func TestAliasOverridePrecedence(t *testing.T) {
	a := mustAnonymizer(t, "secret", map[string]string{"BBO_User": "Pat_Partner"})

	if got := a.Alias("bbo_user"); got != "Pat_Partner" {
		t.Fatalf("Alias = %q, want override Pat_Partner", got)
	}
	if got := a.Alias("BbO_uSeR"); got != "Pat_Partner" {
		t.Fatalf("Alias ignored override for case variant: %q", got)
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides(" user1 = Alice_Smith , user2=Bob_Jones ,, ")
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	want := map[string]string{"user1": "Alice_Smith", "user2": "Bob_Jones"}
	if len(got) != len(want) {
		t.Fatalf("ParseOverrides returned %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("ParseOverrides[%q] = %q, want %q", k, got[k], v)
		}
	}

	if _, err := ParseOverrides("user-without-alias"); err == nil {
		t.Fatal("ParseOverrides accepted a pair without =")
	}
}

func TestParseOverridesEmpty(t *testing.T) {
	got, err := ParseOverrides("")
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ParseOverrides(\"\") returned %d entries", len(got))
	}
}

func containsName(pool []string, name string) bool {
	for _, n := range pool {
		if n == name {
			return true
		}
	}
	return false
}
