// Package config holds the project configuration. Components receive a
// *Config explicitly at construction; there is no process-global registry.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Error is a configuration error. It is fatal and raised at setup time.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Config is the project configuration for one wiki build.
type Config struct {
	ProjectRoot string `yaml:"project_root"`
	GameTitle   string `yaml:"game_title"`

	// Documentation input files live under <project_root>/data/documentation;
	// generated markdown goes under <project_root>/<output_dir>.
	OutputDir string `yaml:"output_dir"`

	// PokeDB record store location, relative to the project root.
	DataDir string `yaml:"data_dir"`

	// SpriteVersion selects the version-specific sprite set on records.
	SpriteVersion string `yaml:"sprite_version"`

	// LocationSeparator splits composite location keys ("City - Building").
	LocationSeparator string `yaml:"location_separator"`

	// SkipPatterns are regular expressions for input lines to drop
	// (decoration rules, comment markers).
	SkipPatterns []string `yaml:"skip_patterns"`

	// IndexColumns restricts the columns rendered on the location index
	// page. Empty means all columns.
	IndexColumns []string `yaml:"index_columns"`

	// Workers bounds how many parsers/generators run at once. Each
	// component owns disjoint inputs and outputs.
	Workers int `yaml:"workers"`
}

// Default returns a configuration with working defaults rooted at root.
func Default(root string) *Config {
	return &Config{
		ProjectRoot:       root,
		GameTitle:         "ROM Hack Wiki",
		OutputDir:         "docs",
		DataDir:           filepath.Join("data", "pokedb"),
		SpriteVersion:     "black_white",
		LocationSeparator: " - ",
		SkipPatterns:      []string{`^=+$`},
		Workers:           4,
	}
}

// Load reads the YAML project file at path, if present, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	cfg := Default(root)

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.ProjectRoot = getEnv("WIKI_PROJECT_ROOT", cfg.ProjectRoot)
	cfg.OutputDir = getEnv("WIKI_OUTPUT_DIR", cfg.OutputDir)
	cfg.DataDir = getEnv("WIKI_DATA_DIR", cfg.DataDir)
	cfg.Workers = getEnvInt("WIKI_WORKERS", cfg.Workers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration eagerly so failures surface at setup
// rather than mid-run.
func (c *Config) Validate() error {
	if c.ProjectRoot == "" {
		return &Error{Field: "project_root", Reason: "cannot be empty"}
	}
	if c.GameTitle == "" {
		return &Error{Field: "game_title", Reason: "cannot be empty"}
	}
	if c.OutputDir == "" {
		return &Error{Field: "output_dir", Reason: "cannot be empty"}
	}
	if c.LocationSeparator == "" {
		return &Error{Field: "location_separator", Reason: "cannot be empty"}
	}
	if c.Workers < 1 {
		return &Error{Field: "workers", Reason: fmt.Sprintf("must be positive, got %d", c.Workers)}
	}
	return nil
}

// DocumentationDir is where raw documentation input files live.
func (c *Config) DocumentationDir() string {
	return filepath.Join(c.ProjectRoot, "data", "documentation")
}

// OutputPath resolves a path under the configured output directory.
func (c *Config) OutputPath(parts ...string) string {
	return filepath.Join(append([]string{c.ProjectRoot, c.OutputDir}, parts...)...)
}

// PokeDBDir is the root of the record store.
func (c *Config) PokeDBDir() string {
	return filepath.Join(c.ProjectRoot, c.DataDir)
}

// LocationStorePath is the persisted JSON location map.
func (c *Config) LocationStorePath() string {
	return filepath.Join(c.ProjectRoot, "data", "locations", "locations.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
