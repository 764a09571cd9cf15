package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
	"github.com/conneroisu/docgrid/internal/site"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the static landing page",
	Long: `Build the documentation landing page as a static site without serving it.
Renders the category grid from the catalog and writes HTML, CSS, sitemap,
robots.txt, and a build manifest to the output directory.

Examples:
  docgrid build                   # Build to the configured output directory
  docgrid build --output public   # Build to a specific directory
  docgrid build --clean           # Remove stale output before building
  docgrid build --catalog docs/categories.yml`,
	RunE: runBuild,
}

var buildFlags *StandardFlags

func init() {
	rootCmd.AddCommand(buildCmd)

	buildFlags = AddStandardFlags(buildCmd, "build", "catalog")

	viper.BindPFlag("build.output_dir", buildCmd.Flags().Lookup("output"))
	viper.BindPFlag("build.clean", buildCmd.Flags().Lookup("clean"))
	viper.BindPFlag("catalog.path", buildCmd.Flags().Lookup("catalog"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newCommandLogger("build")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog.Path, err)
	}

	generator := site.NewGenerator(cfg, logger)

	result, err := generator.Build(context.Background(), cat.Section())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("Build completed in %v\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("   - %d category cards rendered\n", result.Cards)
	for _, file := range result.Files {
		fmt.Printf("   - %s (%d bytes)\n", file.Path, file.Size)
	}

	return nil
}

// newCommandLogger builds a logger honoring the persistent --log-level flag.
func newCommandLogger(component string) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.ParseLevel(viper.GetString("log-level")),
		Output:    os.Stderr,
		Component: component,
	})
}
