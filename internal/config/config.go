package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"

	envPrefix = "AMBIENT_"
)

// Config holds the application configuration
type Config struct {
	DataDir    string `koanf:"data_dir" yaml:"data_dir"`
	ExportDir  string `koanf:"export_dir" yaml:"export_dir"`
	ExportFile string `koanf:"export_file" yaml:"export_file"`
	Storage    string `koanf:"storage" yaml:"storage"`
	StorageKey string `koanf:"storage_key" yaml:"storage_key"`
	LogLevel   string `koanf:"log_level" yaml:"log_level"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	ConfigPath string
	DataDir    string
	ExportDir  string
	Storage    string
}

const defaultsYAML = `
data_dir: ~/ambient
export_file: ambient_ideas.txt
storage: file
storage_key: ambientNotes
log_level: info
`

// Load loads configuration with priority: CLI flags > env vars > config file > defaults
func Load(flags CLIFlags) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(defaultsYAML)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configPath := flags.ConfigPath
	if configPath == "" {
		if p, err := GetConfigPath(); err == nil {
			configPath = p
		}
	}
	if configPath != "" {
		content, err := os.ReadFile(expandPath(configPath))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
		if err == nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
		}
	}

	// AMBIENT_EXPORT_DIR -> export_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}
	if flags.ExportDir != "" {
		cfg.ExportDir = flags.ExportDir
	}
	if flags.Storage != "" {
		cfg.Storage = flags.Storage
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	if cfg.ExportDir == "" {
		cfg.ExportDir = cfg.DataDir
	}
	cfg.ExportDir = expandPath(cfg.ExportDir)
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have no sensible fallback
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if c.ExportFile == "" || strings.ContainsAny(c.ExportFile, `/\`) {
		return fmt.Errorf("config: export_file must be a plain file name, got %q", c.ExportFile)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("config: storage_key is required")
	}
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("config: unknown storage %q (want %s or %s)", c.Storage, StorageFile, StorageSQLite)
	}
	return nil
}

// EnsureDirs creates the data and export directories
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.ExportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// ExportPath returns the full path of the export file
func (c *Config) ExportPath() string {
	return filepath.Join(c.ExportDir, c.ExportFile)
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "ambient", "config.yaml"), nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	settings := Config{
		DataDir:    "~/ambient",
		ExportDir:  "~/ambient",
		ExportFile: "ambient_ideas.txt",
		Storage:    StorageFile,
		StorageKey: "ambientNotes",
		LogLevel:   "info",
	}

	data, err := yamlv3.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
