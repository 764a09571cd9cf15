package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/docgrid/internal/audit"
	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/renderer"
)

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"c"},
	Short:   "Audit the rendered landing page",
	Long: `Render the landing page from the catalog and audit the output HTML.
Reports cards with missing links, titles, or descriptions, and fails when
the rendered card count does not match the catalog.

Examples:
  docgrid check                    # Audit using the configured catalog
  docgrid check --catalog docs/categories.yml
  docgrid check --strict           # Treat warnings as errors`,
	RunE: runCheck,
}

var checkStrict bool

func init() {
	rootCmd.AddCommand(checkCmd)

	AddStandardFlags(checkCmd, "catalog")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")

	viper.BindPFlag("catalog.path", checkCmd.Flags().Lookup("catalog"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog.Path, err)
	}

	section := cat.Section()
	pageRenderer := renderer.New(cfg.Site)

	page, err := pageRenderer.RenderLanding(context.Background(), section, false)
	if err != nil {
		return fmt.Errorf("failed to render landing page: %w", err)
	}

	report, err := audit.Page(strings.NewReader(page), len(section.Categories))
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	errorCount := 0
	warningCount := 0
	for _, issue := range report.Issues {
		fmt.Printf("%s [%s] %s\n", issue.Severity, issue.Rule, issue.Message)
		if issue.Severity == audit.SeverityError {
			errorCount++
		} else {
			warningCount++
		}
	}

	fmt.Printf("Checked %d cards: %d errors, %d warnings\n",
		report.Cards, errorCount, warningCount)

	if errorCount > 0 {
		return fmt.Errorf("audit found %d errors", errorCount)
	}
	if checkStrict && warningCount > 0 {
		return fmt.Errorf("audit found %d warnings (strict mode)", warningCount)
	}

	return nil
}
