package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Values come from the YAML file
// first, then SHIFTLOG_* environment variables override them.
type Config struct {
	DBPath    string `yaml:"db_path" env:"DB_PATH"`
	LogDir    string `yaml:"log_dir" env:"LOG_DIR"`
	Debug     bool   `yaml:"debug" env:"DEBUG"`
	Locale    string `yaml:"locale" env:"LOCALE"`
	ExportDir string `yaml:"export_dir" env:"EXPORT_DIR"`
}

const envPrefix = "SHIFTLOG_"

// Dir returns ~/.config/shiftlog.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "shiftlog"), nil
}

// DefaultPath returns the location of config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path (a missing file is fine), applies environment overrides
// and fills defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillDefaults() error {
	if c.DBPath != "" && c.LogDir != "" && c.ExportDir != "" && c.Locale != "" {
		return nil
	}
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "shiftlog.db")
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(dir, "logs")
	}
	if c.ExportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = dir
		}
		c.ExportDir = home
	}
	if c.Locale == "" {
		c.Locale = "pt-BR"
	}
	return nil
}

// Save writes c as YAML to path, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
