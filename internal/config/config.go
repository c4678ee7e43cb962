package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/pennywise/internal/common"
)

// EnvPrefix is the prefix for environment variable overrides (PENNYWISE_STORAGE_PATH, ...).
const EnvPrefix = "PENNYWISE"

// Backend names accepted by storage.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default values.
const (
	DefaultBackend   = BackendJSON
	DefaultJSONPath  = "$HOME/.local/share/pennywise/budget_data.json"
	DefaultDBPath    = "$HOME/.local/share/pennywise/budget.db"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Config is the resolved application configuration.
type Config struct {
	Logging LoggingConfig
	Storage StorageConfig
}

// StorageConfig selects where and how the ledger snapshot is kept.
type StorageConfig struct {
	Backend string
	Path    string
}

// LoggingConfig controls the global slog logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", DefaultBackend)
	v.SetDefault("storage.path", "")
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("storage.backend"))),
			Path:    v.GetString("storage.path"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultPath(cfg.Storage.Backend)
	}
	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("storage.backend %q must be %q or %q", c.Storage.Backend, BackendJSON, BackendSQLite))
	}

	if strings.TrimSpace(c.Storage.Path) == "" {
		problems = append(problems, "storage.path must not be empty")
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// LoadDotEnv loads environment variables from a .env file. With no path it
// tries ./.env and ignores its absence; an explicit path must exist.
func LoadDotEnv(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(ExpandPath(path)); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func defaultPath(backend string) string {
	if backend == BackendSQLite {
		return DefaultDBPath
	}
	return DefaultJSONPath
}
