package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// isolate runs the test in an empty working and home directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

// TestLoadConfigDefaults verifies defaults when nothing is configured.
func TestLoadConfigDefaults(t *testing.T) {
	home := isolate(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.PrimaryURL != constants.DefaultPrimaryURL {
		t.Errorf("PrimaryURL = %q, want default", config.PrimaryURL)
	}
	if config.PageSize != constants.DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", config.PageSize, constants.DefaultPageSize)
	}
	if config.Overlay != "overlay-all" {
		t.Errorf("Overlay = %q, want overlay-all", config.Overlay)
	}
	if config.AutoReloadInterval != constants.DefaultReloadInterval {
		t.Errorf("AutoReloadInterval = %v, want %v", config.AutoReloadInterval, constants.DefaultReloadInterval)
	}
	if want := filepath.Join(home, ".shelfmap", "preferences.yaml"); config.Preferences != want {
		t.Errorf("Preferences = %q, want %q", config.Preferences, want)
	}
	if config.LogFormat != "auto" {
		t.Errorf("LogFormat = %q, want auto", config.LogFormat)
	}
	if config.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want none", config.ConfigFile)
	}
}

// TestConfigEnvironmentVariables verifies SHELFMAP_ variables.
func TestConfigEnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("SHELFMAP_PAGE_SIZE", "12")
	t.Setenv("SHELFMAP_AUTO_RELOAD_INTERVAL", "1h")
	t.Setenv("SHELFMAP_SECONDARY_REQUIRED", "true")
	t.Setenv("SHELFMAP_INCLUSION", "matched-or-titled")
	t.Setenv("SHELFMAP_PREFERENCES", "memory:")
	t.Setenv("SHELFMAP_S3_PATH_STYLE", "1")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.PageSize != 12 {
		t.Errorf("PageSize = %d, want 12", config.PageSize)
	}
	if config.AutoReloadInterval != time.Hour {
		t.Errorf("AutoReloadInterval = %v, want 1h", config.AutoReloadInterval)
	}
	if !config.SecondaryRequired {
		t.Error("SHELFMAP_SECONDARY_REQUIRED not loaded")
	}
	if config.Inclusion != "matched-or-titled" {
		t.Errorf("Inclusion = %q, want matched-or-titled", config.Inclusion)
	}
	if config.Preferences != "memory:" {
		t.Errorf("Preferences = %q, want memory:", config.Preferences)
	}
	if !config.S3PathStyle {
		t.Error("SHELFMAP_S3_PATH_STYLE not loaded")
	}
}

// TestConfigFile verifies an explicit YAML config file.
func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "shelfmap.yaml")
	content := "primary_url: https://example.com/books.csv\nsecondary_url: \"\"\npage_size: 30\nprefers_dark: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() failed: %v", err)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
	if config.PrimaryURL != "https://example.com/books.csv" {
		t.Errorf("PrimaryURL = %q", config.PrimaryURL)
	}
	if config.SecondaryURL != "" {
		t.Errorf("SecondaryURL = %q, want empty", config.SecondaryURL)
	}
	if config.PageSize != 30 || !config.PrefersDark {
		t.Errorf("PageSize = %d, PrefersDark = %v", config.PageSize, config.PrefersDark)
	}

	if _, err := loadConfigFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

// TestConfigHomeFile verifies ~/.shelfmap.yaml is picked up.
func TestConfigHomeFile(t *testing.T) {
	home := isolate(t)
	if err := os.WriteFile(filepath.Join(home, ".shelfmap.yaml"), []byte("overlay: overlay-non-empty\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Overlay != "overlay-non-empty" {
		t.Errorf("Overlay = %q, want overlay-non-empty", config.Overlay)
	}
}

// TestConfigDotEnv verifies .env.local wins over .env.
func TestConfigDotEnv(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(func() { _ = os.Unsetenv("SHELFMAP_LOG_FORMAT") })
	_ = os.Unsetenv("SHELFMAP_LOG_FORMAT")

	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write(".env", "SHELFMAP_LOG_FORMAT=json\n")
	write(".env.local", "SHELFMAP_LOG_FORMAT=console\n")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want console", config.LogFormat)
	}
}

// TestConfigValidate verifies rejected settings.
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty primary", func(c *Config) { c.PrimaryURL = "" }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"huge page size", func(c *Config) { c.PageSize = constants.MaxPageSize + 1 }},
		{"negative interval", func(c *Config) { c.AutoReloadInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig("http://localhost")
			tt.mutate(c)
			err := c.Validate()
			if !errors.IsValidationError(err) {
				t.Errorf("Validate() = %v, want a validation error", err)
			}
		})
	}
}

// TestUpdateFromFlags verifies flags layer over loaded values.
func TestUpdateFromFlags(t *testing.T) {
	c := &Config{Format: "yaml", LogLevel: "error"}
	c.UpdateFromFlags(true, false, true, "", "")
	if !c.Verbose || !c.NoColor || c.Format != "yaml" {
		t.Errorf("unexpected config after flags: %+v", c)
	}
	c.UpdateFromFlags(false, false, false, "json", "trace")
	if c.Format != "json" || c.levelFlag != "trace" || c.LogLevel != "error" {
		t.Errorf("unexpected config after flags: %+v", c)
	}
}
