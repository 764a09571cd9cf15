package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/conneroisu/docgrid/internal/types"
)

// CategoryGrid renders the landing section: a heading, an introductory
// paragraph, and one CategoryCard per descriptor in table order. The number
// of rendered cards always equals the number of descriptors.
func CategoryGrid(section types.Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="category-section">`); err != nil {
			return err
		}

		if section.Heading != "" {
			if _, err := fmt.Fprintf(w,
				`<h2 class="category-section__heading">%s</h2>`,
				templ.EscapeString(section.Heading),
			); err != nil {
				return err
			}
		}
		if section.Intro != "" {
			if _, err := fmt.Fprintf(w,
				`<p class="category-section__intro">%s</p>`,
				templ.EscapeString(section.Intro),
			); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<div class="category-grid">`); err != nil {
			return err
		}
		for _, descriptor := range section.Categories {
			if err := CategoryCard(CardPropsFrom(descriptor)).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div></section>`); err != nil {
			return err
		}

		return nil
	})
}
