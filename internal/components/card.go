package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/conneroisu/docgrid/internal/types"
)

// CardProps are the inputs for one category tile. Label, Description, Icon,
// and Href are required; a zero Color renders the purple theme.
type CardProps struct {
	// Label is the tile heading
	Label string
	// Description is the tile body text
	Description string
	// Icon is the glyph rendered beside the heading
	Icon string
	// Href is the navigation target wrapped around the whole tile
	Href string
	// Color selects the visual theme (zero value: purple)
	Color types.Color
}

// CardPropsFrom projects a catalog descriptor into card props, field for
// field.
func CardPropsFrom(descriptor types.CategoryDescriptor) CardProps {
	return CardProps{
		Label:       descriptor.Title,
		Description: descriptor.Description,
		Icon:        descriptor.Icon,
		Href:        descriptor.Href,
		Color:       descriptor.Color,
	}
}

// CategoryCard renders a single navigable tile: an anchor wrapping the icon,
// heading, and description, themed by props.Color. All text is escaped; the
// href passes through templ's URL sanitizer.
func CategoryCard(props CardProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<a class="category-card %s" href="%s">`+
				`<span class="category-card__icon" aria-hidden="true">%s</span>`+
				`<div class="category-card__body">`+
				`<h3 class="category-card__title">%s</h3>`+
				`<p class="category-card__description">%s</p>`+
				`</div>`+
				`</a>`,
			CardClass(props.Color),
			templ.EscapeString(string(templ.URL(props.Href))),
			templ.EscapeString(props.Icon),
			templ.EscapeString(props.Label),
			templ.EscapeString(props.Description),
		)
		return err
	})
}
