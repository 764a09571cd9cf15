// Package types provides common type definitions used throughout the docgrid CLI.
// This package contains shared types to avoid circular dependencies between packages.
package types

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Color is the closed set of visual themes a category tile can carry. The
// zero value is ColorPurple, which is also the documented default for cards
// that do not specify a theme. Values outside the five named constants are
// unrepresentable in component calls; catalog files decode through
// ParseColor, which rejects unknown names.
type Color int

const (
	ColorPurple Color = iota
	ColorBlue
	ColorCyan
	ColorGreen
	ColorPink
)

// colorNames is ordered by the constant values above.
var colorNames = [...]string{"purple", "blue", "cyan", "green", "pink"}

// String returns the lowercase theme name.
func (c Color) String() string {
	if c < ColorPurple || c > ColorPink {
		return "unknown"
	}
	return colorNames[c]
}

// Valid reports whether c is one of the five named constants.
func (c Color) Valid() bool {
	return c >= ColorPurple && c <= ColorPink
}

// ParseColor maps a theme name from a catalog file to its Color constant.
// It is the single validation boundary for externally supplied theme names.
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorPurple, fmt.Errorf("unknown color %q (valid: purple, blue, cyan, green, pink)", name)
}

// MarshalYAML encodes the color as its lowercase name.
func (c Color) MarshalYAML() (interface{}, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color value %d", int(c))
	}
	return c.String(), nil
}

// UnmarshalYAML decodes a color from its lowercase name. An absent or empty
// value keeps the zero value (purple).
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	if name == "" {
		*c = ColorPurple
		return nil
	}
	parsed, err := ParseColor(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON encodes the color as its lowercase name for `docgrid list -f json`.
func (c Color) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color value %d", int(c))
	}
	return []byte(`"` + c.String() + `"`), nil
}

// CategoryDescriptor is the static record behind one landing-page tile. The
// catalog loads descriptors once at startup; they are never mutated at
// runtime. Insertion order in the catalog determines render order.
type CategoryDescriptor struct {
	// Slug is the stable identifier used for lookups and event reporting
	// (e.g., "computer-science"). It never appears in rendered output.
	Slug string `yaml:"slug" json:"slug"`
	// Title is the display name of the category
	Title string `yaml:"title" json:"title"`
	// Description is the one-to-two sentence summary shown on the tile
	Description string `yaml:"description" json:"description"`
	// Icon is the visual glyph rendered beside the title, typically an emoji
	Icon string `yaml:"icon" json:"icon"`
	// Href is the internal route the tile navigates to on activation
	Href string `yaml:"href" json:"href"`
	// Color selects the tile's visual theme; omitted means purple
	Color Color `yaml:"color,omitempty" json:"color"`
}

// Section groups the landing heading, intro copy, and the descriptor table
// the grid renders. Descriptors keep catalog order.
type Section struct {
	// Heading is the title rendered above the grid
	Heading string `yaml:"heading" json:"heading"`
	// Intro is the paragraph rendered between the heading and the grid
	Intro string `yaml:"intro" json:"intro"`
	// Categories is the ordered descriptor table, one entry per tile
	Categories []CategoryDescriptor `yaml:"categories" json:"categories"`
}

// EventType represents the type of catalog change event.
type EventType int

const (
	EventTypeAdded EventType = iota
	EventTypeUpdated
	EventTypeRemoved
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTypeAdded:
		return "added"
	case EventTypeUpdated:
		return "updated"
	case EventTypeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// CatalogEvent represents a change in the category catalog, used for
// real-time notifications to watchers like the development server.
type CatalogEvent struct {
	// Type indicates the kind of change (added, updated, removed)
	Type EventType
	// Category contains the descriptor (nil for removed events)
	Category *CategoryDescriptor
	// Timestamp records when the event occurred for ordering and filtering
	Timestamp time.Time
}
