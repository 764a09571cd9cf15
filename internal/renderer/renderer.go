// Package renderer turns components into HTML. Unlike a scanner-driven
// pipeline there is no code generation step: the landing components are
// plain Go, so rendering happens in-process against a catalog section.
package renderer

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/docgrid/internal/components"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/types"
)

// PageRenderer assembles and renders the landing page from site metadata
// and a catalog section.
type PageRenderer struct {
	site config.SiteConfig
}

// New creates a page renderer for the configured site.
func New(site config.SiteConfig) *PageRenderer {
	return &PageRenderer{site: site}
}

// LandingPage composes the full landing document: hero, category grid, and
// the document shell. liveReload injects the dev-server reload snippet.
func (r *PageRenderer) LandingPage(section types.Section, liveReload bool) templ.Component {
	return components.Layout(
		components.LayoutProps{
			Title:      r.site.Title,
			Tagline:    r.site.Tagline,
			LiveReload: liveReload,
		},
		components.Join(
			components.Hero(r.site.Title, r.site.Tagline),
			components.CategoryGrid(section),
		),
	)
}

// RenderLanding renders the landing page to a string.
func (r *PageRenderer) RenderLanding(ctx context.Context, section types.Section, liveReload bool) (string, error) {
	return Render(ctx, r.LandingPage(section, liveReload))
}

// Render renders any component to a string.
func Render(ctx context.Context, component templ.Component) (string, error) {
	var sb strings.Builder
	if err := component.Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("rendering component: %w", err)
	}
	return sb.String(), nil
}
