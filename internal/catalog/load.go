package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/docgrid/internal/types"
)

// Sentinel errors for catalog decode failures. Parse wraps these with the
// offending entry's position so callers can match with errors.Is.
var (
	ErrMissingTitle  = errors.New("category is missing a title and a slug to derive one from")
	ErrMissingHref   = errors.New("category is missing an href")
	ErrEmptyCatalog  = errors.New("catalog contains no categories")
	ErrDuplicateSlug = errors.New("duplicate category slug")
)

var titleCaser = cases.Title(language.English)

// Parse decodes and validates a YAML catalog document. Unknown fields and
// unknown color names are rejected; missing slugs derive from titles and
// missing titles derive from slugs, so one of the two must be present.
func Parse(data []byte) (types.Section, error) {
	var section types.Section

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&section); err != nil {
		if errors.Is(err, io.EOF) {
			return types.Section{}, ErrEmptyCatalog
		}
		return types.Section{}, fmt.Errorf("decoding catalog: %w", err)
	}

	if len(section.Categories) == 0 {
		return types.Section{}, ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(section.Categories))
	for i := range section.Categories {
		descriptor := &section.Categories[i]

		descriptor.Title = strings.TrimSpace(descriptor.Title)
		descriptor.Slug = strings.TrimSpace(descriptor.Slug)
		descriptor.Href = strings.TrimSpace(descriptor.Href)

		if descriptor.Title == "" && descriptor.Slug == "" {
			return types.Section{}, fmt.Errorf("category %d: %w", i+1, ErrMissingTitle)
		}
		if descriptor.Slug == "" {
			descriptor.Slug = Slugify(descriptor.Title)
		}
		if descriptor.Title == "" {
			descriptor.Title = TitleFromSlug(descriptor.Slug)
		}
		if descriptor.Href == "" {
			return types.Section{}, fmt.Errorf("category %q: %w", descriptor.Slug, ErrMissingHref)
		}
		if seen[descriptor.Slug] {
			return types.Section{}, fmt.Errorf("category %q: %w", descriptor.Slug, ErrDuplicateSlug)
		}
		seen[descriptor.Slug] = true
	}

	return section, nil
}

// LoadFile reads and parses the catalog file at path.
func LoadFile(path string) (types.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Section{}, fmt.Errorf("reading catalog file %s: %w", path, err)
	}

	section, err := Parse(data)
	if err != nil {
		return types.Section{}, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	return section, nil
}

// Load builds a populated catalog from the file at path, falling back to the
// built-in default table when the file does not exist.
func Load(path string) (*Catalog, error) {
	section, err := LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			section = Default()
		} else {
			return nil, err
		}
	}

	c := NewCatalog()
	c.Replace(section)
	return c, nil
}

// Slugify derives a stable slug from a display title:
// "Computer Science" becomes "computer-science".
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	slug = b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// TitleFromSlug derives a display title from a slug:
// "computer-science" becomes "Computer Science".
func TitleFromSlug(slug string) string {
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}

// Default returns the built-in category table used for `docgrid init`
// scaffolding and zero-config preview.
func Default() types.Section {
	return types.Section{
		Heading: "Explore the Docs",
		Intro:   "Long-form notes on C++ and the machinery underneath it. Pick a topic to get started.",
		Categories: []types.CategoryDescriptor{
			{
				Slug:        "programming",
				Title:       "Programming",
				Description: "Core C++ language topics: pointers, smart pointers, templates, and the idioms that hold them together.",
				Icon:        "💻",
				Href:        "/docs/programming/intro",
				Color:       types.ColorPurple,
			},
			{
				Slug:        "computer-science",
				Title:       "Computer Science",
				Description: "The concepts underneath the code: memory models, vtables, and how the machine actually runs your program.",
				Icon:        "⚙️",
				Href:        "/docs/computer-science/intro",
				Color:       types.ColorBlue,
			},
			{
				Slug:        "memory",
				Title:       "Memory & Ownership",
				Description: "Raw pointers, RAII, unique_ptr and shared_ptr, and the ownership rules that keep programs leak-free.",
				Icon:        "📌",
				Href:        "/docs/memory/intro",
				Color:       types.ColorCyan,
			},
			{
				Slug:        "concurrency",
				Title:       "Concurrency",
				Description: "Threads, atomics, mutexes, and the synchronization primitives the standard library gives you.",
				Icon:        "🧵",
				Href:        "/docs/concurrency/intro",
				Color:       types.ColorGreen,
			},
			{
				Slug:        "standard-library",
				Title:       "Standard Library",
				Description: "Containers, iterators, and algorithms: a working tour of the STL and when to reach for each piece.",
				Icon:        "📚",
				Href:        "/docs/standard-library/intro",
				Color:       types.ColorPink,
			},
		},
	}
}
