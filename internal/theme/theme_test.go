package theme

import (
	"testing"

	"github.com/kingrea/deckforge/internal/deck"
)

func TestCatalog(t *testing.T) {
	themes := Catalog()
	if len(themes) != 4 {
		t.Fatalf("catalog size = %d", len(themes))
	}
	seen := map[string]bool{}
	for _, th := range themes {
		if th.ID == "" || th.Name == "" || th.Colors.Primary == "" || th.Fonts.Heading == "" {
			t.Errorf("incomplete theme %+v", th)
		}
		if seen[th.ID] {
			t.Errorf("duplicate theme id %q", th.ID)
		}
		seen[th.ID] = true
	}
	// Mutating the returned slice must not touch the catalog.
	themes[0].ID = "mutated"
	if Catalog()[0].ID == "mutated" {
		t.Fatalf("Catalog returned live backing array")
	}
}

func TestByID(t *testing.T) {
	if got := ByID("minimal-dark"); got.Name != "Minimal Dark" || got.Colors.Background != "#0F172A" {
		t.Fatalf("ByID = %+v", got)
	}
	if got := ByID("does-not-exist"); got.ID != Default().ID {
		t.Fatalf("unknown id should fall back to default, got %q", got.ID)
	}
}

func TestValidSlideCount(t *testing.T) {
	for _, n := range SlideCounts {
		if !ValidSlideCount(n) {
			t.Errorf("ValidSlideCount(%d) = false", n)
		}
	}
	for _, n := range []int{0, -1, 7, 100} {
		if ValidSlideCount(n) {
			t.Errorf("ValidSlideCount(%d) = true", n)
		}
	}
	if !ValidSlideCount(DefaultSlideCount) {
		t.Fatalf("default count must be selectable")
	}
}

func TestRandomProfile(t *testing.T) {
	valid := map[string]bool{}
	for _, th := range Catalog() {
		valid[th.ID] = true
	}
	for i := 0; i < 20; i++ {
		p := RandomProfile()
		if !valid[p.Theme.ID] {
			t.Fatalf("profile picked unknown theme %q", p.Theme.ID)
		}
		if !deck.ValidTransition(p.Transition) || p.Transition == "" {
			t.Fatalf("profile picked invalid transition %q", p.Transition)
		}
	}
}
