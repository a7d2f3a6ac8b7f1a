package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Constants
const (
	DefaultPort     = 80
	DefaultCacheTTL = 30 * time.Second
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"

	// Error messages
	ErrMethodNotAllowed = "Method not allowed"
	ErrInvalidYear      = "Invalid year"
	ErrInvalidFormat    = "Invalid format"
	ErrYearNotFound     = "No shopping sundays for year"
	ErrInternalServer   = "Internal server error"
	ErrCalendarExpired  = "No upcoming shopping sunday in calendar"

	// ICS constants
	ICSProductID = "-//wb-services//Shopping Sunday//PL"
	ICSUIDDomain = "shopping-sunday.wb-services"
	ICSCalName   = "Shopping Sundays"
)

// Config is the process configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
	Calendar CalendarConfig `yaml:"calendar"`
}

// ServerConfig holds the listener address
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CacheConfig controls the rendered response cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// CalendarConfig points at an optional calendar override file. Empty means
// the shipped table.
type CalendarConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig returns the built-in defaults: all interfaces, port 80
func DefaultConfig() Config {
	return Config{
		Server:  ServerConfig{Port: DefaultPort},
		Cache:   CacheConfig{Enabled: true, TTL: DefaultCacheTTL},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// at path and environment overrides, in that order
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDotEnv loads environment variables from the given .env files. Missing
// files are skipped; variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// applyEnvOverrides overrides config fields from well-known environment
// variables
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL %q: %w", v, err)
		}
		cfg.Cache.TTL = ttl
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_ENABLED %q: %w", v, err)
		}
		cfg.Cache.Enabled = enabled
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT %q: %w", v, err)
		}
		cfg.Logging.Development = dev
	}
	if v := os.Getenv("CALENDAR_FILE"); v != "" {
		cfg.Calendar.File = v
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Server.Port)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("negative cache ttl %s", c.Cache.TTL)
	}
	return nil
}

// Addr returns the listen address in host:port form
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// CacheTTL returns the effective cache TTL, zero when caching is disabled
func (c *Config) CacheTTL() time.Duration {
	if !c.Cache.Enabled {
		return 0
	}
	return c.Cache.TTL
}
