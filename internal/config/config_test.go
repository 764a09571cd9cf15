package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Documentation", cfg.Site.Title)
	assert.Equal(t, "http://localhost:8080", cfg.Site.BaseURL)
	assert.Equal(t, "categories.yml", cfg.Catalog.Path)
	assert.Equal(t, "dist", cfg.Build.OutputDir)
	assert.True(t, cfg.Build.Sitemap)
	assert.True(t, cfg.Build.Robots)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.True(t, cfg.Development.HotReload)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("site.title", "C++ Notes")
	viper.Set("site.base_url", "https://docs.example.com")
	viper.Set("server.port", 3000)
	viper.Set("build.output_dir", "public")
	viper.Set("development.hot_reload", false)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "C++ Notes", cfg.Site.Title)
	assert.Equal(t, "https://docs.example.com", cfg.Site.BaseURL)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "public", cfg.Build.OutputDir)
	assert.False(t, cfg.Development.HotReload)
}

func TestLoadNoOpenOverridesOpen(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.open", true)
	viper.Set("server.no-open", true)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Server.Open)
}

func TestValidateServerConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr bool
	}{
		{"valid", ServerConfig{Port: 8080, Host: "localhost"}, false},
		{"zero port allowed", ServerConfig{Port: 0, Host: "localhost"}, false},
		{"negative port", ServerConfig{Port: -1, Host: "localhost"}, true},
		{"port too large", ServerConfig{Port: 70000, Host: "localhost"}, true},
		{"dangerous host", ServerConfig{Port: 8080, Host: "localhost;rm -rf /"}, true},
		{"host with backtick", ServerConfig{Port: 8080, Host: "host`cmd`"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateServerConfig(&tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBuildConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  BuildConfig
		wantErr bool
	}{
		{"valid relative", BuildConfig{OutputDir: "dist"}, false},
		{"nested relative", BuildConfig{OutputDir: "build/site"}, false},
		{"traversal", BuildConfig{OutputDir: "../outside"}, true},
		{"absolute", BuildConfig{OutputDir: "/var/www"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBuildConfig(&tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, validatePath("categories.yml"))
	assert.NoError(t, validatePath("config/categories.yml"))
	assert.Error(t, validatePath(""))
	assert.Error(t, validatePath("../etc/passwd"))
	assert.Error(t, validatePath("file;rm.yml"))
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.port", 99999)

	_, err := Load()
	assert.Error(t, err)
}
