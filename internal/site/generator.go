// Package site generates the static landing site: the rendered index page,
// the bundled stylesheet, sitemap.xml, robots.txt, and a build manifest.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/conneroisu/docgrid/internal/components"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
	"github.com/conneroisu/docgrid/internal/renderer"
	"github.com/conneroisu/docgrid/internal/types"
)

// Generator writes the static landing site for a catalog section.
type Generator struct {
	config   *config.Config
	renderer *renderer.PageRenderer
	logger   logging.Logger
}

// GeneratedFile records one written output file.
type GeneratedFile struct {
	// Path is relative to the output directory
	Path string `json:"path"`
	// Size is the written byte count
	Size int64 `json:"size"`
	// Hash is a CRC32 checksum for change detection
	Hash string `json:"hash"`
}

// BuildResult summarizes one static build.
type BuildResult struct {
	Files     []GeneratedFile `json:"files"`
	Cards     int             `json:"cards"`
	BuildTime time.Time       `json:"build_time"`
	Duration  time.Duration   `json:"duration"`
}

// NewGenerator creates a static site generator.
func NewGenerator(cfg *config.Config, logger logging.Logger) *Generator {
	return &Generator{
		config:   cfg,
		renderer: renderer.New(cfg.Site),
		logger:   logger.WithComponent("site"),
	}
}

// Build renders the landing page for section and writes the full output
// tree. It returns the list of generated files in write order.
func (g *Generator) Build(ctx context.Context, section types.Section) (*BuildResult, error) {
	start := time.Now()
	outputDir := g.config.Build.OutputDir

	if g.config.Build.Clean {
		if err := os.RemoveAll(outputDir); err != nil {
			return nil, fmt.Errorf("cleaning output directory %s: %w", outputDir, err)
		}
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	result := &BuildResult{
		Cards:     len(section.Categories),
		BuildTime: start,
	}

	// index.html
	page, err := g.renderer.RenderLanding(ctx, section, false)
	if err != nil {
		return nil, fmt.Errorf("rendering landing page: %w", err)
	}
	if err := g.write(result, "index.html", []byte(page)); err != nil {
		return nil, err
	}

	// Bundled stylesheet
	if err := g.write(result, components.StylesheetPath, components.SiteCSS); err != nil {
		return nil, err
	}

	if g.config.Build.Sitemap {
		if err := g.write(result, "sitemap.xml", g.sitemap(section)); err != nil {
			return nil, err
		}
	}

	if g.config.Build.Robots {
		if err := g.write(result, "robots.txt", g.robots()); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)

	manifest, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding build manifest: %w", err)
	}
	if err := g.write(result, "manifest.json", manifest); err != nil {
		return nil, err
	}

	g.logger.Info(ctx, "static build complete",
		"files", len(result.Files),
		"cards", result.Cards,
		"duration", result.Duration.String(),
	)

	return result, nil
}

// write stores one output file and records it in the result.
func (g *Generator) write(result *BuildResult, relPath string, data []byte) error {
	fullPath := filepath.Join(g.config.Build.OutputDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}

	result.Files = append(result.Files, GeneratedFile{
		Path: relPath,
		Size: int64(len(data)),
		Hash: fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)),
	})
	return nil
}

// sitemap builds the XML sitemap: the landing page plus one URL per
// category target, in table order.
func (g *Generator) sitemap(section types.Section) []byte {
	baseURL := strings.TrimSuffix(g.config.Site.BaseURL, "/")

	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	writeEntry := func(url, priority string) {
		sitemap.WriteString("  <url>\n")
		sitemap.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", url))
		sitemap.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", priority))
		sitemap.WriteString("  </url>\n")
	}

	writeEntry(baseURL+"/", "1.0")
	for _, descriptor := range section.Categories {
		writeEntry(baseURL+"/"+strings.TrimPrefix(descriptor.Href, "/"), "0.8")
	}

	sitemap.WriteString("</urlset>\n")
	return []byte(sitemap.String())
}

func (g *Generator) robots() []byte {
	baseURL := strings.TrimSuffix(g.config.Site.BaseURL, "/")
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", baseURL))
}
