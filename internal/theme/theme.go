// Package theme holds the static style catalogs: visual themes, slide
// transitions and the selectable slide counts. Catalog data only; all
// behavior lives with the components that consume it.
package theme

import (
	"math/rand"

	"github.com/kingrea/deckforge/internal/deck"
)

// Colors is a theme's color set, hex-encoded.
type Colors struct {
	Background string
	Text       string
	Primary    string
	Secondary  string
	Accent     string
}

// Fonts is a theme's font set.
type Fonts struct {
	Heading string
	Body    string
}

// Theme is one entry of the theme catalog.
type Theme struct {
	ID     string
	Name   string
	Colors Colors
	Fonts  Fonts
}

// SlideCounts lists the selectable deck sizes.
var SlideCounts = []int{5, 8, 12, 15}

// DefaultSlideCount is used when the user has not picked a size.
const DefaultSlideCount = 8

// ValidSlideCount reports whether n is a selectable deck size.
func ValidSlideCount(n int) bool {
	for _, c := range SlideCounts {
		if c == n {
			return true
		}
	}
	return false
}

var catalog = []Theme{
	{
		ID:   "modern-blue",
		Name: "Modern Blue",
		Colors: Colors{
			Background: "#FFFFFF",
			Text:       "#1E293B",
			Primary:    "#0EA5E9",
			Secondary:  "#64748B",
			Accent:     "#F0F9FF",
		},
		Fonts: Fonts{Heading: "Inter", Body: "Inter"},
	},
	{
		ID:   "minimal-dark",
		Name: "Minimal Dark",
		Colors: Colors{
			Background: "#0F172A",
			Text:       "#F8FAFC",
			Primary:    "#38BDF8",
			Secondary:  "#94A3B8",
			Accent:     "#1E293B",
		},
		Fonts: Fonts{Heading: "Inter", Body: "Inter"},
	},
	{
		ID:   "elegant-purple",
		Name: "Elegant Purple",
		Colors: Colors{
			Background: "#FAFAFA",
			Text:       "#2D1B4E",
			Primary:    "#7C3AED",
			Secondary:  "#A78BFA",
			Accent:     "#F5F3FF",
		},
		Fonts: Fonts{Heading: "Inter", Body: "Inter"},
	},
	{
		ID:   "corporate-gray",
		Name: "Corporate Gray",
		Colors: Colors{
			Background: "#F8FAFC",
			Text:       "#334155",
			Primary:    "#475569",
			Secondary:  "#94A3B8",
			Accent:     "#E2E8F0",
		},
		Fonts: Fonts{Heading: "Inter", Body: "Inter"},
	},
}

// Catalog returns the theme catalog in display order.
func Catalog() []Theme {
	dup := make([]Theme, len(catalog))
	copy(dup, catalog)
	return dup
}

// Default returns the first catalog entry.
func Default() Theme {
	return catalog[0]
}

// ByID looks a theme up by identifier, falling back to the default.
func ByID(id string) Theme {
	for _, t := range catalog {
		if t.ID == id {
			return t
		}
	}
	return Default()
}

// Profile is one generation's randomly chosen style: a theme and a
// deck-wide transition, recorded in the settings for rendering and
// export.
type Profile struct {
	Theme      Theme
	Transition deck.Transition
}

// RandomProfile picks a theme and transition independently at random.
func RandomProfile() Profile {
	transitions := deck.Transitions()
	return Profile{
		Theme:      catalog[rand.Intn(len(catalog))],
		Transition: transitions[rand.Intn(len(transitions))],
	}
}
