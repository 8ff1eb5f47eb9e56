package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/shelfmap/pkg/constants"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "SHELFMAP"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Datasets
	PrimaryURL        string
	SecondaryURL      string
	SecondaryRequired bool
	Inclusion         string
	Overlay           string
	HTTPTimeout       time.Duration
	SourceAuthHeader  string
	SourceToken       string

	// S3 dataset locations
	S3Endpoint  string
	S3Region    string
	S3PathStyle bool

	// Browsing
	PageSize           int
	AutoReloadInterval time.Duration

	// Preferences
	Preferences string
	PrefersDark bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// levelFlag is --log-level, which beats -v/-q and LogLevel.
	levelFlag string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables (SHELFMAP_*)
//  3. .env files
//  4. Config file (~/.shelfmap.yaml or ./.shelfmap.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), os.Getenv(EnvPrefix+"_CONFIG"))
}

// loadConfigFile reloads the configuration from an explicit file.
func loadConfigFile(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".shelfmap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", "cannot read "+configFile, err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		PrimaryURL:        v.GetString("primary_url"),
		SecondaryURL:      v.GetString("secondary_url"),
		SecondaryRequired: v.GetBool("secondary_required"),
		Inclusion:         v.GetString("inclusion"),
		Overlay:           v.GetString("overlay"),
		HTTPTimeout:       v.GetDuration("http_timeout"),
		SourceAuthHeader:  v.GetString("source_auth_header"),
		SourceToken:       v.GetString("source_token"),

		S3Endpoint:  v.GetString("s3_endpoint"),
		S3Region:    v.GetString("s3_region"),
		S3PathStyle: v.GetBool("s3_path_style"),

		PageSize:           v.GetInt("page_size"),
		AutoReloadInterval: v.GetDuration("auto_reload_interval"),

		Preferences: v.GetString("preferences"),
		PrefersDark: v.GetBool("prefers_dark"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}
	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("primary_url", constants.DefaultPrimaryURL)
	v.SetDefault("secondary_url", constants.DefaultSecondaryURL)
	v.SetDefault("inclusion", "identified-or-titled")
	v.SetDefault("overlay", "overlay-all")
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("auto_reload_interval", constants.DefaultReloadInterval)
	v.SetDefault("preferences", defaultPreferencesPath())
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.PrimaryURL == "" {
		return errors.NewValidationError("primary_url", c.PrimaryURL, "cannot be empty")
	}
	if c.PageSize <= 0 || c.PageSize > constants.MaxPageSize {
		return errors.NewValidationError("page_size", c.PageSize, "out of range")
	}
	if c.AutoReloadInterval < 0 {
		return errors.NewValidationError("auto_reload_interval", c.AutoReloadInterval, "cannot be negative")
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over the config file and environment.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	c.levelFlag = logLevel
}

// loadEnvFiles loads .env.local then .env. godotenv never overrides a variable
// that is already set, so .env.local wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func defaultPreferencesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "memory:"
	}
	return filepath.Join(home, ".shelfmap", "preferences.yaml")
}
