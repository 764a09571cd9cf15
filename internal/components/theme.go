// Package components contains the hand-written templ components for the
// landing section: the category card, the grid that composes cards from a
// catalog section, and the page layout that hosts them. Components are pure
// functions of their props; rendering the same props twice produces
// byte-identical HTML.
package components

import "github.com/conneroisu/docgrid/internal/types"

// StylesheetPath is where the embedded stylesheet is served and written
// relative to the site root.
const StylesheetPath = "assets/site.css"

// cardThemeClasses maps each theme to its tile modifier class. The map is
// total over the Color enum.
var cardThemeClasses = map[types.Color]string{
	types.ColorPurple: "category-card--purple",
	types.ColorBlue:   "category-card--blue",
	types.ColorCyan:   "category-card--cyan",
	types.ColorGreen:  "category-card--green",
	types.ColorPink:   "category-card--pink",
}

// CardClass returns the modifier class for a tile theme.
func CardClass(color types.Color) string {
	if class, ok := cardThemeClasses[color]; ok {
		return class
	}
	return cardThemeClasses[types.ColorPurple]
}
