package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LayoutProps configure the document shell around the landing content.
type LayoutProps struct {
	// Title is the document title
	Title string
	// Tagline becomes the meta description when non-empty
	Tagline string
	// LiveReload injects the dev-server reload snippet when true. Static
	// builds leave it off.
	LiveReload bool
}

// Layout wraps content in the full HTML document: head with title and
// stylesheet link, a main element for the content, and a footer.
func Layout(props LayoutProps, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html>`+
				`<html lang="en">`+
				`<head>`+
				`<meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title>`,
			templ.EscapeString(props.Title),
		); err != nil {
			return err
		}

		if props.Tagline != "" {
			if _, err := fmt.Fprintf(w,
				`<meta name="description" content="%s">`,
				templ.EscapeString(props.Tagline),
			); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w,
			`<link rel="stylesheet" href="/%s">`+
				`</head>`+
				`<body>`+
				`<main class="landing">`,
			StylesheetPath,
		); err != nil {
			return err
		}

		if err := content.Render(ctx, w); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w,
			`</main>`+
				`<footer class="landing__footer">%s</footer>`,
			templ.EscapeString(props.Title),
		); err != nil {
			return err
		}

		if props.LiveReload {
			if _, err := io.WriteString(w, liveReloadScript); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// Hero renders the landing headline block above the category section.
func Hero(title, tagline string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<header class="hero">`+
				`<h1 class="hero__title">%s</h1>`,
			templ.EscapeString(title),
		); err != nil {
			return err
		}
		if tagline != "" {
			if _, err := fmt.Fprintf(w,
				`<p class="hero__tagline">%s</p>`,
				templ.EscapeString(tagline),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</header>`)
		return err
	})
}

// Join renders components in sequence as a single component.
func Join(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// liveReloadScript is the reload listener injected by `docgrid serve`.
const liveReloadScript = `<script>` +
	`(function(){` +
	`var proto = location.protocol === "https:" ? "wss://" : "ws://";` +
	`var ws = new WebSocket(proto + location.host + "/ws");` +
	`ws.onmessage = function(event){` +
	`var message = JSON.parse(event.data);` +
	`if (message.type === "full_reload") { location.reload(); }` +
	`};` +
	`})();` +
	`</script>`
