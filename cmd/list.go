package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/docgrid/internal/catalog"
	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/types"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List catalog categories",
	Long: `List the categories in the catalog with their metadata.
Shows slugs, titles, link targets, and color themes in catalog order.

Examples:
  docgrid list                    # List categories in table format
  docgrid list -f json            # Output as JSON
  docgrid list -f yaml            # Output as YAML
  docgrid list --catalog docs/categories.yml`,
	RunE: runList,
}

var listFlags *StandardFlags

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddStandardFlags(listCmd, "output", "catalog")

	AddFlagValidation(listCmd, "format", func(format string) error {
		return ValidateFormat(format, []string{"table", "json", "yaml"})
	})

	viper.BindPFlag("catalog.path", listCmd.Flags().Lookup("catalog"))
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", cfg.Catalog.Path, err)
	}

	categories := cat.All()
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	if err := listFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	switch strings.ToLower(listFlags.Format) {
	case "json":
		return outputListJSON(categories)
	case "yaml":
		return outputListYAML(categories)
	case "table":
		return outputListTable(categories)
	default:
		return fmt.Errorf("unsupported format: %s", listFlags.Format)
	}
}

func outputListJSON(categories []types.CategoryDescriptor) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(categories)
}

func outputListYAML(categories []types.CategoryDescriptor) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(categories)
}

func outputListTable(categories []types.CategoryDescriptor) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "SLUG\tTITLE\tHREF\tCOLOR\tICON")
	fmt.Fprintln(w, "----\t-----\t----\t-----\t----")

	for _, category := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			category.Slug,
			category.Title,
			category.Href,
			category.Color,
			category.Icon,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d categories\n", len(categories))

	return nil
}
