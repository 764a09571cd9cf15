//go:build property

package catalog

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/docgrid/internal/types"
)

// TestCatalogProperties validates ordering and projection invariants of the
// catalog for arbitrary descriptor tables.
func TestCatalogProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4242)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: All() preserves insertion order for any table size
	properties.Property("insertion order is render order", prop.ForAll(
		func(count int) bool {
			c := NewCatalog()
			for i := 0; i < count; i++ {
				c.Register(&types.CategoryDescriptor{
					Slug:  fmt.Sprintf("category-%d", i),
					Title: fmt.Sprintf("Category %d", i),
					Href:  fmt.Sprintf("/docs/category-%d", i),
					Color: types.Color(i % 5),
				})
			}

			all := c.All()
			if len(all) != count {
				return false
			}
			for i, descriptor := range all {
				if descriptor.Slug != fmt.Sprintf("category-%d", i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100),
	))

	// Property: Replace projects the section table 1:1 and keeps its order
	properties.Property("replace preserves section order", prop.ForAll(
		func(titles []string) bool {
			section := types.Section{Heading: "H"}
			seen := map[string]bool{}
			for i, title := range titles {
				slug := fmt.Sprintf("%s-%d", Slugify(title), i)
				if slug == "" || seen[slug] {
					continue
				}
				seen[slug] = true
				section.Categories = append(section.Categories, types.CategoryDescriptor{
					Slug:  slug,
					Title: title,
					Href:  "/docs/" + slug,
				})
			}

			c := NewCatalog()
			c.Replace(section)

			all := c.All()
			if len(all) != len(section.Categories) {
				return false
			}
			for i := range all {
				if all[i] != section.Categories[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	// Property: Slugify output contains only [a-z0-9-] and never leading or
	// trailing dashes
	properties.Property("slugify produces clean slugs", prop.ForAll(
		func(title string) bool {
			slug := Slugify(title)
			if slug == "" {
				return true
			}
			if slug[0] == '-' || slug[len(slug)-1] == '-' {
				return false
			}
			for _, r := range slug {
				valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
				if !valid {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
