package ranking

import (
	"testing"

	"pickmycollege/internal/models"
)

func TestResolverLookup(t *testing.T) {
	r := NewResolver(map[string]int{"E001": 12, "E047": 101})

	if got := r.Lookup("E001"); got != "12" {
		t.Errorf("Lookup(E001) = %q, want %q", got, "12")
	}
	if got := r.Lookup("E047"); got != "101" {
		t.Errorf("Lookup(E047) = %q, want %q", got, "101")
	}
	if got := r.Lookup("E999"); got != models.NotRanked {
		t.Errorf("Lookup(E999) = %q, want %q", got, models.NotRanked)
	}
}

func TestResolverNilMap(t *testing.T) {
	r := NewResolver(nil)
	if got := r.Lookup("E001"); got != models.NotRanked {
		t.Errorf("Lookup on empty resolver = %q, want %q", got, models.NotRanked)
	}
	if r.Size() != 0 {
		t.Errorf("Size() = %d, want 0", r.Size())
	}
}
