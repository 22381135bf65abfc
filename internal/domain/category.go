package domain

import (
	"fmt"
	"strings"
)

// CategorySpec holds the presentation and defaults for one block category.
type CategorySpec struct {
	ID              Category
	DisplayName     string
	DefaultTitle    string
	DefaultDuration int
	Color           string
	Icon            string
}

var categoryOrder = []Category{
	CategoryAttraction,
	CategoryFood,
	CategoryAccommodation,
	CategoryTransport,
	CategoryShopping,
}

var categoryTable = map[Category]CategorySpec{
	CategoryAttraction: {
		ID:              CategoryAttraction,
		DisplayName:     "Attraction",
		DefaultTitle:    "Visit Local Attraction",
		DefaultDuration: 120,
		Color:           "#3b82f6",
		Icon:            "✦",
	},
	CategoryFood: {
		ID:              CategoryFood,
		DisplayName:     "Dining",
		DefaultTitle:    "Meal Time",
		DefaultDuration: 60,
		Color:           "#f97316",
		Icon:            "♨",
	},
	CategoryAccommodation: {
		ID:              CategoryAccommodation,
		DisplayName:     "Hotel Check-in",
		DefaultTitle:    "Hotel Check-in/Check-out",
		DefaultDuration: 30,
		Color:           "#a855f7",
		Icon:            "⌂",
	},
	CategoryTransport: {
		ID:              CategoryTransport,
		DisplayName:     "Transportation",
		DefaultTitle:    "Travel Between Locations",
		DefaultDuration: 30,
		Color:           "#22c55e",
		Icon:            "➜",
	},
	CategoryShopping: {
		ID:              CategoryShopping,
		DisplayName:     "Shopping",
		DefaultTitle:    "Shopping & Browsing",
		DefaultDuration: 90,
		Color:           "#ec4899",
		Icon:            "◈",
	},
}

// Categories returns every block category in palette order.
func Categories() []CategorySpec {
	out := make([]CategorySpec, 0, len(categoryOrder))
	for _, id := range categoryOrder {
		out = append(out, categoryTable[id])
	}
	return out
}

// Valid reports whether c is one of the known block categories.
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Spec returns the table entry for c. Unknown categories yield a zero spec.
func (c Category) Spec() CategorySpec {
	return categoryTable[c]
}

// ParseCategory resolves a category from its id or display name, ignoring case.
func ParseCategory(s string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, id := range categoryOrder {
		spec := categoryTable[id]
		if needle == string(id) || needle == strings.ToLower(spec.DisplayName) {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
