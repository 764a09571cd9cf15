package components

import _ "embed"

// SiteCSS is the bundled stylesheet, embedded at build time. The static
// generator writes it to StylesheetPath in the output directory and the dev
// server serves it from the same path.
//
//go:embed assets/site.css
var SiteCSS []byte
