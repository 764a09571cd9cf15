// Package config provides configuration management for docgrid using Viper
// for flexible configuration loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the DOCGRID_ prefix, and validation with security checks.
// It manages site metadata, the catalog file location, build output
// settings, and the development server.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Site        SiteConfig        `yaml:"site"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Build       BuildConfig       `yaml:"build"`
	Server      ServerConfig      `yaml:"server"`
	Development DevelopmentConfig `yaml:"development"`
}

// SiteConfig holds the metadata rendered into the page shell and sitemap.
type SiteConfig struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	BaseURL string `yaml:"base_url"`
}

// CatalogConfig locates the category catalog file.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

type BuildConfig struct {
	OutputDir string `yaml:"output_dir"`
	Sitemap   bool   `yaml:"sitemap"`
	Robots    bool   `yaml:"robots"`
	Clean     bool   `yaml:"clean"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	Open           bool     `yaml:"open"`
	NoOpen         bool     `yaml:"no-open"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DevelopmentConfig struct {
	HotReload bool `yaml:"hot_reload"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Underscore keys don't round-trip through Unmarshal, read them directly
	if viper.IsSet("site.base_url") {
		config.Site.BaseURL = viper.GetString("site.base_url")
	}
	if viper.IsSet("build.output_dir") {
		config.Build.OutputDir = viper.GetString("build.output_dir")
	}
	if viper.IsSet("server.allowed_origins") {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}

	// Apply default site metadata if not set
	if config.Site.Title == "" {
		config.Site.Title = "Documentation"
	}
	if config.Site.BaseURL == "" {
		config.Site.BaseURL = "http://localhost:8080"
	}

	if config.Catalog.Path == "" {
		config.Catalog.Path = "categories.yml"
	}

	// Apply default values for BuildConfig if not set
	if config.Build.OutputDir == "" {
		config.Build.OutputDir = "dist"
	}
	if !viper.IsSet("build.sitemap") {
		config.Build.Sitemap = true
	}
	if !viper.IsSet("build.robots") {
		config.Build.Robots = true
	}

	// Apply default values for ServerConfig if not set
	if config.Server.Port == 0 && !viper.IsSet("server.port") {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}

	// Handle development settings set via viper (workaround for viper bool handling)
	if viper.IsSet("development.hot_reload") {
		config.Development.HotReload = viper.GetBool("development.hot_reload")
	} else {
		config.Development.HotReload = true
	}

	// Override no-open if explicitly set via flag
	if viper.IsSet("server.no-open") && viper.GetBool("server.no-open") {
		config.Server.Open = false
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := validateBuildConfig(&config.Build); err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	if err := validatePath(config.Catalog.Path); err != nil {
		return fmt.Errorf("catalog config: invalid path %q: %w", config.Catalog.Path, err)
	}

	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Validate port range (allow 0 for system-assigned ports in testing)
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		// Basic validation - no dangerous characters
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	return nil
}

// validateBuildConfig validates build configuration values
func validateBuildConfig(config *BuildConfig) error {
	if config.OutputDir != "" {
		cleanPath := filepath.Clean(config.OutputDir)

		// Reject path traversal attempts
		if strings.Contains(cleanPath, "..") {
			return fmt.Errorf("output_dir contains path traversal: %s", config.OutputDir)
		}

		// Should be relative path for security
		if filepath.IsAbs(cleanPath) {
			return fmt.Errorf("output_dir should be relative path: %s", config.OutputDir)
		}
	}

	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
