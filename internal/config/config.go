// Package config provides configuration loading and validation for the CLI
// and serve mode. Values come from the environment (optionally seeded by a
// .env file) and may be overlaid by a JSON config file.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration. The four credentials are
// required at startup; a missing value halts the process with a clear
// diagnostic rather than failing deep inside a pipeline stage.
type Config struct {
	// Generation service
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" json:"gemini_api_key,omitempty"`

	// WordPress target
	WordPressURL string `envconfig:"WP_URL" json:"wp_url,omitempty"`
	Username     string `envconfig:"WP_USERNAME" json:"wp_username,omitempty"`
	AppPassword  string `envconfig:"WP_APP_PASSWORD" json:"wp_app_password,omitempty"`

	// Serve mode
	Port int `envconfig:"PORT" default:"8080" json:"port,omitempty"`

	// Session checkpoint directory for CLI stage handoff
	StateDir string `envconfig:"STATE_DIR" default:".article-sessions" json:"state_dir,omitempty"`

	// Behavior
	Verbose bool `envconfig:"VERBOSE" json:"verbose,omitempty"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &cfg, nil
}

// LoadFile loads configuration from a JSON file and overlays it on top of the
// environment-derived config. File values win where set.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	base, err := Load()
	if err != nil {
		return nil, err
	}

	var overlay Config
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return base.merge(&overlay), nil
}

// merge returns a new Config with non-zero overlay fields replacing base ones.
func (c *Config) merge(overlay *Config) *Config {
	result := *c
	if overlay.GeminiAPIKey != "" {
		result.GeminiAPIKey = overlay.GeminiAPIKey
	}
	if overlay.WordPressURL != "" {
		result.WordPressURL = overlay.WordPressURL
	}
	if overlay.Username != "" {
		result.Username = overlay.Username
	}
	if overlay.AppPassword != "" {
		result.AppPassword = overlay.AppPassword
	}
	if overlay.Port != 0 {
		result.Port = overlay.Port
	}
	if overlay.StateDir != "" {
		result.StateDir = overlay.StateDir
	}
	if overlay.Verbose {
		result.Verbose = true
	}
	return &result
}

// Validate checks that every credential the pipeline depends on is present
// and well-formed. It names all missing values at once so the operator fixes
// them in one pass.
func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.WordPressURL == "" {
		missing = append(missing, "WP_URL")
	}
	if c.Username == "" {
		missing = append(missing, "WP_USERNAME")
	}
	if c.AppPassword == "" {
		missing = append(missing, "WP_APP_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.WordPressURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WP_URL %q is not a valid URL (must include scheme and host)", c.WordPressURL)
	}

	return nil
}
