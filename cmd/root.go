// Package cmd provides the command-line interface for docgrid with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. DOCGRID_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (DOCGRID_SERVER_PORT, etc.)
//	4. Configuration files (.docgrid.yml) - lowest priority
//
// Environment Variables:
//
//	DOCGRID_CONFIG_FILE: Path to custom configuration file
//	DOCGRID_SERVER_PORT: Override server port
//	DOCGRID_SERVER_HOST: Override server host
//	DOCGRID_DEVELOPMENT_HOT_RELOAD: Enable/disable hot reload
//	And many more following the DOCGRID_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docgrid",
	Short: "A static generator for documentation landing pages",
	Long: `Docgrid renders a documentation landing page from a small catalog of
category descriptors: each category becomes a themed card linking into the docs.

Key Features:
  • Category catalog loaded from YAML with stable ordering
  • Static site output (HTML, CSS, sitemap, robots, manifest)
  • Hot reload preview server with WebSocket live updates
  • Rendered-output auditing for broken cards

Quick Start:
  docgrid init                    Initialize a new project
  docgrid serve                   Start the preview server
  docgrid list                    List catalog categories
  docgrid build                   Build the static site
  docgrid check                   Audit the rendered landing page

Command Aliases (for faster typing):
  init (i), serve (s), build (b), list (l), check (c)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .docgrid.yml, can also use DOCGRID_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system with support for multiple config sources.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. DOCGRID_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .docgrid.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("DOCGRID_CONFIG_FILE"); envConfigFile != "" {
		// Supports both relative paths (./custom-config.yml) and absolute paths
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".docgrid")
	}

	// Enable automatic environment variable binding with DOCGRID_ prefix
	// Examples: DOCGRID_SERVER_PORT, DOCGRID_SITE_TITLE, DOCGRID_BUILD_OUTPUT_DIR
	viper.SetEnvPrefix("DOCGRID")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files fall back to defaults without failing
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
