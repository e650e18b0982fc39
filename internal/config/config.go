package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file inside a project directory.
const FileName = "tally.yaml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Environment variables that override file settings.
const (
	EnvDir            = "TALLY_DIR"
	EnvStorageBackend = "TALLY_STORAGE_BACKEND"
	EnvStoragePath    = "TALLY_STORAGE_PATH"
	EnvLogLevel       = "TALLY_LOG_LEVEL"
	EnvTrendMonths    = "TALLY_TREND_MONTHS"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Git     GitConfig     `yaml:"git"`
}

// StorageConfig selects where the expense collection lives.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // relative to the project directory
	Key     string `yaml:"key"`
}

// DisplayConfig controls formatting of reports.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	TrendMonths    int    `yaml:"trend_months"`
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    "data",
			Key:     "household_expenses",
		},
		Display: DisplayConfig{
			CurrencySymbol: "$",
			TrendMonths:    6,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}

// Validate rejects settings no backend can serve.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend != BackendMemory && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if c.Display.TrendMonths < 1 {
		return fmt.Errorf("display.trend_months must be at least 1, got %d", c.Display.TrendMonths)
	}
	return nil
}

// StoragePath resolves the storage path against the project directory.
func (c *Config) StoragePath(projectDir string) string {
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(projectDir, c.Storage.Path)
}

// ApplyEnv overlays TALLY_* environment variables onto c.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvStorageBackend); v != "" {
		c.Storage.Backend = v
	}
	if v := getenv(EnvStoragePath); v != "" {
		c.Storage.Path = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvTrendMonths); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvTrendMonths, v, err)
		}
		c.Display.TrendMonths = n
	}
	return c.Validate()
}

// LoadProject reads <dir>/tally.yaml, falling back to defaults when the file
// does not exist, then applies environment overrides.
func LoadProject(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}
