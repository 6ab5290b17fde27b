package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for aide.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Match   MatchConfig   `yaml:"match"`
	Tasks   TasksConfig   `yaml:"tasks"`
	Notes   NotesConfig   `yaml:"notes"`
	Prompt  PromptConfig  `yaml:"prompt"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig holds database configuration.
type StoreConfig struct {
	File          string `yaml:"file"`
	OpenTimeoutMS int    `yaml:"open_timeout_ms"` // bbolt file lock wait
}

// MatchConfig holds name matching configuration.
type MatchConfig struct {
	TFScaling       string `yaml:"tf_scaling"` // "raw" or "log"
	CacheSize       int    `yaml:"cache_size"` // 0 disables the query cache
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	MaxSuggestions  int    `yaml:"max_suggestions"`
}

// TasksConfig holds task configuration.
type TasksConfig struct {
	DefaultPriority int    `yaml:"default_priority"`
	LogDir          string `yaml:"log_dir"`
}

// NotesConfig holds note configuration.
type NotesConfig struct {
	FileDir  string   `yaml:"file_dir"`
	Excludes []string `yaml:"excludes"`
}

// PromptConfig controls confirmation prompts.
type PromptConfig struct {
	AssumeYes      bool `yaml:"assume_yes"`
	NonInteractive bool `yaml:"non_interactive"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"` // "local" or "prod"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			File:          "aide.db",
			OpenTimeoutMS: 1000,
		},
		Match: MatchConfig{
			TFScaling:       "raw",
			CacheSize:       64,
			CacheTTLSeconds: 300,
			MaxSuggestions:  5,
		},
		Tasks: TasksConfig{
			DefaultPriority: 3,
			LogDir:          "tasks",
		},
		Notes: NotesConfig{
			FileDir:  "notes",
			Excludes: []string{"**/.git/**", "**/node_modules/**", "**/*.db"},
		},
		Logging: LoggingConfig{
			Level: "warn",
			Env:   "local",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a data directory (looks for aide.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "aide.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".aide", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Validate rejects values no command could work with.
func (c *Config) Validate() error {
	switch c.Match.TFScaling {
	case "", "raw", "log":
	default:
		return fmt.Errorf("match.tf_scaling must be raw or log, got %q", c.Match.TFScaling)
	}
	if c.Tasks.DefaultPriority < 1 || c.Tasks.DefaultPriority > 5 {
		return fmt.Errorf("tasks.default_priority must be between 1 and 5, got %d", c.Tasks.DefaultPriority)
	}
	if c.Match.CacheSize < 0 {
		return fmt.Errorf("match.cache_size must not be negative, got %d", c.Match.CacheSize)
	}
	if c.Store.File == "" {
		return fmt.Errorf("store.file must not be empty")
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// OpenTimeout returns the store lock timeout.
func (c *Config) OpenTimeout() time.Duration {
	return time.Duration(c.Store.OpenTimeoutMS) * time.Millisecond
}

// CacheTTL returns the query cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Match.CacheTTLSeconds) * time.Second
}

// DBPath returns the path to the database inside the data directory.
func DBPath(dir string, cfg *Config) string {
	return filepath.Join(dir, cfg.Store.File)
}

// EnsureDataDir ensures the data directory and its task log and note file
// subdirectories exist.
func EnsureDataDir(dir string, cfg *Config) error {
	for _, d := range []string{dir, filepath.Join(dir, cfg.Tasks.LogDir), filepath.Join(dir, cfg.Notes.FileDir)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDataDir returns ~/.aide, or .aide when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aide"
	}
	return filepath.Join(home, ".aide")
}
