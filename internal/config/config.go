package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	keyDataDir      = "data_dir"
	keyStorage      = "storage"
	keyMaxHistory   = "max_history"
	keyTrackHistory = "track_history"
	keyLogDir       = "log_dir"
	keyImportPath   = "import_path"

	envPrefix = "KBAN"
)

// Storage backends
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageBadger = "badger"
	StorageMemory = "memory"
)

const defaultConfigYAML = `# kban configuration

# Where board state is kept (default ~/kban)
# data_dir: ~/kban

# file, sqlite, badger or memory
storage: file

# Undo steps kept in memory
max_history: 50
track_history: true

# Directory for debug.log (logging is off when empty)
# log_dir:

# Board export read by the TUI import key
# import_path: ~/kban/import.json
`

// Config holds the unified application configuration
type Config struct {
	DataDir      string `mapstructure:"data_dir" validate:"required"`
	Storage      string `mapstructure:"storage" validate:"required,oneof=file sqlite badger memory"`
	MaxHistory   int    `mapstructure:"max_history" validate:"gte=1,lte=10000"`
	TrackHistory bool   `mapstructure:"track_history"`
	LogDir       string `mapstructure:"log_dir"`
	ImportPath   string `mapstructure:"import_path"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir string
	Storage string
}

var (
	globalConfig *Config
	validate     = validator.New()
)

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	defaultDir, err := GetDefaultDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(keyDataDir, defaultDir)
	v.SetDefault(keyStorage, StorageFile)
	v.SetDefault(keyMaxHistory, 50)
	v.SetDefault(keyTrackHistory, true)
	v.SetDefault(keyLogDir, "")
	v.SetDefault(keyImportPath, "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configDir, err := getConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags.DataDir != "" {
		v.Set(keyDataDir, flags.DataDir)
	}
	if flags.Storage != "" {
		v.Set(keyStorage, flags.Storage)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.ImportPath = expandPath(cfg.ImportPath)
	if cfg.ImportPath == "" {
		cfg.ImportPath = filepath.Join(cfg.DataDir, "import.json")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the loaded config
func Get() *Config {
	return globalConfig
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "kban"), nil
}

func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "kban"), nil
}

// EnsureDirs creates the data directory and, when set, the log directory
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(configPath, []byte(defaultConfigYAML), 0644)
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
