// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Providers of geolocation data.
const (
	ProviderIPStack = "ipstack"
	ProviderMaxMind = "maxmind"
)

// Config of the service.
type Config struct {
	IPStackAPIKey   Secret        `mapstructure:"ipstack_api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	LoggerLevel     string        `mapstructure:"logger_level"`
	LogFormat       string        `mapstructure:"log_format"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	DatabaseURL     Secret        `mapstructure:"database_url"`
	Provider        string        `mapstructure:"provider"`
	MaxMindDB       string        `mapstructure:"maxmind_db"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
}

// Address to listen for HTTP requests on.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Secret masks sensitive values when printed or logged.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "******"
}

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Reveal returns the actual value.
func (s Secret) Reveal() string {
	return string(s)
}

// Defaults sets the default configuration values.
func Defaults(v *viper.Viper) {
	v.SetDefault("ipstack_api_key", "")
	v.SetDefault("base_url", "http://api.ipstack.com")
	v.SetDefault("logger_level", "INFO")
	v.SetDefault("log_format", "text")
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8000)
	v.SetDefault("database_url", "")
	v.SetDefault("provider", ProviderIPStack)
	v.SetDefault("maxmind_db", "")
	v.SetDefault("provider_timeout", 5*time.Second)
}

// Load configuration from the environment.
// If envFile is not empty, it's read first, and the environment overrides its values.
func Load(envFile string) (Config, error) {
	v, err := newViper(envFile)
	if err != nil {
		return Config{}, err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("cannot decode configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadDatabaseURL reads only DATABASE_URL, the same way Load does.
func LoadDatabaseURL(envFile string) (Secret, error) {
	v, err := newViper(envFile)
	if err != nil {
		return "", err
	}
	url := Secret(v.GetString("database_url"))
	if url == "" {
		return "", errors.New("DATABASE_URL is required")
	}
	return url, nil
}

func newViper(envFile string) (*viper.Viper, error) {
	v := viper.New()
	Defaults(v)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		var pathErr *fs.PathError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("cannot read %s: %w", envFile, err)
		}
	}

	// IPSTACK_API_KEY → ipstack_api_key
	v.AutomaticEnv()
	return v, nil
}

// Validate checks that required configuration fields are present and sane.
func (c Config) Validate() error {
	var errs []string

	switch c.Provider {
	case ProviderIPStack:
		if c.IPStackAPIKey == "" {
			errs = append(errs, "IPSTACK_API_KEY is required")
		}
		if c.BaseURL == "" {
			errs = append(errs, "BASE_URL is required")
		}
	case ProviderMaxMind:
		if c.MaxMindDB == "" {
			errs = append(errs, "MAXMIND_DB is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("PROVIDER must be %q or %q, got %q", ProviderIPStack, ProviderMaxMind, c.Provider))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT must be 1-65535, got %d", c.Port))
	}
	if c.ProviderTimeout <= 0 {
		errs = append(errs, "PROVIDER_TIMEOUT must be positive")
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ParseLevel translates the LOGGER_LEVEL value to a slog level.
// It returns false for unknown levels, together with slog.LevelInfo.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARNING", "WARN":
		return slog.LevelWarn, true
	case "ERROR", "CRITICAL":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
