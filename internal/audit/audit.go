// Package audit checks rendered landing pages against the structural rules
// the components guarantee: every tile is a non-empty link, the grid holds
// exactly one tile per catalog entry, icons are hidden from assistive
// technology, and the page carries a heading. It parses real output with
// golang.org/x/net/html rather than trusting the render path.
package audit

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Severity classifies an audit finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single audit finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
}

// Report collects audit findings over one page.
type Report struct {
	Cards  int     `json:"cards"`
	Issues []Issue `json:"issues"`
}

// OK reports whether the audit found no errors. Warnings do not fail a
// report.
func (r *Report) OK() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

func (r *Report) add(severity Severity, rule, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Rule:     rule,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Page audits a rendered landing page. wantCards is the catalog entry count
// the grid must match; pass a negative value to skip the count check.
func Page(reader io.Reader, wantCards int) (*Report, error) {
	root, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	report := &Report{}

	var h1Count int
	walk(root, func(node *html.Node) {
		if node.Type != html.ElementNode {
			return
		}

		switch node.Data {
		case "h1":
			h1Count++
		case "a":
			if !hasClass(node, "category-card") {
				return
			}
			report.Cards++
			auditCard(node, report)
		}
	})

	if h1Count == 0 {
		report.add(SeverityWarning, "page-heading", "page has no h1 heading")
	}
	if wantCards >= 0 && report.Cards != wantCards {
		report.add(SeverityError, "card-count",
			"expected %d cards, found %d", wantCards, report.Cards)
	}

	return report, nil
}

// auditCard checks one tile anchor: non-empty href, a title, a description,
// and an icon hidden from assistive technology.
func auditCard(card *html.Node, report *Report) {
	href := attr(card, "href")
	if strings.TrimSpace(href) == "" {
		report.add(SeverityError, "card-href", "card %d has an empty href", report.Cards)
	}

	var title, description string
	var iconHidden, iconFound bool
	walk(card, func(node *html.Node) {
		if node.Type != html.ElementNode {
			return
		}
		switch {
		case node.Data == "h3" && hasClass(node, "category-card__title"):
			title = textContent(node)
		case node.Data == "p" && hasClass(node, "category-card__description"):
			description = textContent(node)
		case hasClass(node, "category-card__icon"):
			iconFound = true
			iconHidden = attr(node, "aria-hidden") == "true"
		}
	})

	if strings.TrimSpace(title) == "" {
		report.add(SeverityError, "card-title", "card %q has no title", href)
	}
	if strings.TrimSpace(description) == "" {
		report.add(SeverityWarning, "card-description", "card %q has no description", href)
	}
	if iconFound && !iconHidden {
		report.add(SeverityWarning, "card-icon",
			"card %q icon is not hidden from assistive technology", href)
	}
}

// walk visits every node in depth-first document order.
func walk(node *html.Node, visit func(*html.Node)) {
	visit(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(node *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(node, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func textContent(node *html.Node) string {
	var sb strings.Builder
	walk(node, func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	})
	return sb.String()
}
