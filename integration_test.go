package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/docgrid/internal/audit"
	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
	"github.com/conneroisu/docgrid/internal/renderer"
	"github.com/conneroisu/docgrid/internal/site"
)

func TestIntegration_CatalogToStaticSite(t *testing.T) {
	tempDir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(oldDir) })
	require.NoError(t, os.Chdir(tempDir))

	err = os.WriteFile("categories.yml", []byte(`
heading: "Explore the Docs"
categories:
  - title: "Programming"
    description: "Learn the language from the ground up."
    icon: "💻"
    href: "/docs/programming/intro"
    color: purple
  - title: "Computer Science"
    description: "How the machine runs your code."
    icon: "⚙️"
    href: "/docs/computer-science/intro"
    color: blue
`), 0644)
	require.NoError(t, err)

	viper.Reset()
	viper.Set("site.title", "C++ Notes")
	viper.Set("site.base_url", "https://docs.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	cat, err := catalog.Load(cfg.Catalog.Path)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Count())

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LevelError,
		Output: os.Stderr,
	})

	result, err := site.NewGenerator(cfg, logger).Build(context.Background(), cat.Section())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Cards)

	data, err := os.ReadFile(filepath.Join("dist", "index.html"))
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, `href="/docs/programming/intro"`)
	assert.Contains(t, html, `href="/docs/computer-science/intro"`)
	assert.Less(t,
		strings.Index(html, "Programming"),
		strings.Index(html, "Computer Science"),
		"catalog order must be render order")

	report, err := audit.Page(strings.NewReader(html), 2)
	require.NoError(t, err)
	assert.True(t, report.OK(), "audit issues: %v", report.Issues)

	sitemap, err := os.ReadFile(filepath.Join("dist", "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "https://docs.example.com/docs/programming/intro")
}

func TestIntegration_LiveAndStaticRendersMatch(t *testing.T) {
	viper.Reset()

	cfg, err := config.Load()
	require.NoError(t, err)

	section := catalog.Default()
	pageRenderer := renderer.New(cfg.Site)

	static, err := pageRenderer.RenderLanding(context.Background(), section, false)
	require.NoError(t, err)

	live, err := pageRenderer.RenderLanding(context.Background(), section, true)
	require.NoError(t, err)

	// The live page only adds the reload snippet, the content is identical
	assert.Contains(t, live, "WebSocket")
	assert.NotContains(t, static, "WebSocket")
	assert.Equal(t,
		strings.Count(static, `<a class="category-card`),
		strings.Count(live, `<a class="category-card`),
	)
}
