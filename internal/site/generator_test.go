package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Site: config.SiteConfig{
			Title:   "C++ Notes",
			Tagline: "From pointers to parallelism",
			BaseURL: "https://docs.example.com",
		},
		Build: config.BuildConfig{
			OutputDir: t.TempDir(),
			Sitemap:   true,
			Robots:    true,
		},
	}
}

func testLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LevelError,
		Output: os.Stderr,
	})
}

func TestBuildWritesFullOutputTree(t *testing.T) {
	cfg := testConfig(t)
	generator := NewGenerator(cfg, testLogger())

	section := catalog.Default()
	result, err := generator.Build(context.Background(), section)
	require.NoError(t, err)

	assert.Equal(t, len(section.Categories), result.Cards)

	paths := make([]string, 0, len(result.Files))
	for _, file := range result.Files {
		paths = append(paths, file.Path)
		assert.Greater(t, file.Size, int64(0))
		assert.Len(t, file.Hash, 8)

		_, statErr := os.Stat(filepath.Join(cfg.Build.OutputDir, file.Path))
		assert.NoError(t, statErr, "file %s should exist on disk", file.Path)
	}
	assert.Equal(t, []string{
		"index.html",
		"assets/site.css",
		"sitemap.xml",
		"robots.txt",
		"manifest.json",
	}, paths)
}

func TestBuildIndexContainsAllCards(t *testing.T) {
	cfg := testConfig(t)
	generator := NewGenerator(cfg, testLogger())

	section := catalog.Default()
	_, err := generator.Build(context.Background(), section)
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "index.html"))
	require.NoError(t, err)

	html := string(index)
	assert.Equal(t, len(section.Categories), strings.Count(html, `<a class="category-card`))
	assert.NotContains(t, html, "WebSocket", "static builds must not carry the reload snippet")
}

func TestBuildSitemapListsCategoryTargets(t *testing.T) {
	cfg := testConfig(t)
	generator := NewGenerator(cfg, testLogger())

	section := catalog.Default()
	_, err := generator.Build(context.Background(), section)
	require.NoError(t, err)

	sitemap, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "sitemap.xml"))
	require.NoError(t, err)

	content := string(sitemap)
	assert.Contains(t, content, "<loc>https://docs.example.com/</loc>")
	for _, descriptor := range section.Categories {
		assert.Contains(t, content, "<loc>https://docs.example.com"+descriptor.Href+"</loc>")
	}
}

func TestBuildHonorsSitemapAndRobotsToggles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Build.Sitemap = false
	cfg.Build.Robots = false
	generator := NewGenerator(cfg, testLogger())

	result, err := generator.Build(context.Background(), catalog.Default())
	require.NoError(t, err)

	for _, file := range result.Files {
		assert.NotEqual(t, "sitemap.xml", file.Path)
		assert.NotEqual(t, "robots.txt", file.Path)
	}
}

func TestBuildCleanRemovesStaleFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Build.Clean = true

	stale := filepath.Join(cfg.Build.OutputDir, "stale.html")
	require.NoError(t, os.MkdirAll(cfg.Build.OutputDir, 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	generator := NewGenerator(cfg, testLogger())
	_, err := generator.Build(context.Background(), catalog.Default())
	require.NoError(t, err)

	_, statErr := os.Stat(stale)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildRobotsPointsAtSitemap(t *testing.T) {
	cfg := testConfig(t)
	generator := NewGenerator(cfg, testLogger())

	_, err := generator.Build(context.Background(), catalog.Default())
	require.NoError(t, err)

	robots, err := os.ReadFile(filepath.Join(cfg.Build.OutputDir, "robots.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(robots), "Sitemap: https://docs.example.com/sitemap.xml")
}
