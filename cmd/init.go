package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/docgrid/internal/catalog"
)

var initCmd = &cobra.Command{
	Use:     "init [name]",
	Aliases: []string{"i"},
	Short:   "Initialize a new docgrid project",
	Long: `Initialize a new docgrid project with a configuration file and a
starter category catalog. If no name is provided, initializes in the
current directory.

Examples:
  docgrid init                         # Initialize in current directory
  docgrid init my-docs                 # Initialize in new directory 'my-docs'
  docgrid init --minimal               # Config file only, no starter catalog
  docgrid init --force                 # Overwrite existing files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initMinimal bool
	initForce   bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initMinimal, "minimal", false, "Config file only, no starter catalog")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}

const defaultConfigFile = `# docgrid configuration
site:
  title: "Documentation"
  tagline: "Notes, guides, and references"
  base_url: "http://localhost:8080"

catalog:
  path: "categories.yml"

build:
  output_dir: "dist"
  sitemap: true
  robots: true

server:
  port: 8080
  host: "localhost"
  open: true

development:
  hot_reload: true
`

func runInit(cmd *cobra.Command, args []string) error {
	var projectDir string

	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		projectDir = cwd
	} else {
		projectDir = args[0]
		if err := os.MkdirAll(projectDir, 0755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
	}

	fmt.Printf("Initializing docgrid project in %s\n", projectDir)

	configPath := filepath.Join(projectDir, ".docgrid.yml")
	if err := writeProjectFile(configPath, []byte(defaultConfigFile)); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	if !initMinimal {
		catalogPath := filepath.Join(projectDir, "categories.yml")
		data, err := yaml.Marshal(catalog.Default())
		if err != nil {
			return fmt.Errorf("failed to marshal starter catalog: %w", err)
		}
		if err := writeProjectFile(catalogPath, data); err != nil {
			return fmt.Errorf("failed to create catalog file: %w", err)
		}
	}

	fmt.Println("Done. Next steps:")
	fmt.Println("  docgrid serve                   Start the preview server")
	fmt.Println("  docgrid build                   Build the static site")

	return nil
}

func writeProjectFile(path string, data []byte) error {
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	fmt.Printf("   - Created %s\n", path)
	return nil
}
