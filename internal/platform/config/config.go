// Package config loads the application configuration from an optional YAML
// file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StartDateLayout is the layout of Source.StartDate.
const StartDateLayout = "2006-01-02"

// Config is the top-level configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Source    Source    `yaml:"source"`
	Chart     Chart     `yaml:"chart"`
	Redis     Redis     `yaml:"redis"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Logging   Logging   `yaml:"logging"`
}

// Server holds the HTTP listener configuration.
type Server struct {
	Addr string `yaml:"addr"`
}

// Source controls how datasets are fetched.
type Source struct {
	Timeout time.Duration `yaml:"timeout"`
	// StartDate is the earliest date kept after loading, as YYYY-MM-DD.
	StartDate string `yaml:"start_date"`
	// MaxBytes caps the size of one fetched dataset.
	MaxBytes int64 `yaml:"max_bytes"`
	// FetchesPerMinute throttles outbound fetches; 0 disables the throttle.
	FetchesPerMinute int `yaml:"fetches_per_minute"`
	// Symbols overrides dataset locators keyed by symbol code.
	Symbols map[string]string `yaml:"symbols"`
}

// Chart holds rendering sizes.
type Chart struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Redis configures the optional redis connection. An empty Host disables it.
type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RateLimit configures the per-client limit on POST /plot.
type RateLimit struct {
	PlotPerMinute int `yaml:"plot_per_minute"`
	Burst         int `yaml:"burst"`
}

// Logging configures the application logger.
type Logging struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Enabled reports whether a redis host is configured.
func (r Redis) Enabled() bool { return r.Host != "" }

// Addr returns host:port.
func (r Redis) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return r.Host + ":" + port
}

// StartTime parses Source.StartDate. An empty value yields the zero time.
func (s Source) StartTime() (time.Time, error) {
	if s.StartDate == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(StartDateLayout, s.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("source.start_date %q: %w", s.StartDate, err)
	}
	return t, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8080"},
		Source: Source{
			Timeout:   10 * time.Second,
			StartDate: "2021-01-01",
			MaxBytes:  32 << 20,
		},
		Chart:     Chart{Width: 960, Height: 600},
		RateLimit: RateLimit{PlotPerMinute: 30, Burst: 10},
		Logging: Logging{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load reads the YAML file at path on top of Default, applies environment
// variable overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Source.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout))
	}
	if c.Source.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("source.max_bytes must be positive, got %d", c.Source.MaxBytes))
	}
	if c.Source.FetchesPerMinute < 0 {
		errs = append(errs, fmt.Errorf("source.fetches_per_minute must not be negative, got %d", c.Source.FetchesPerMinute))
	}
	if _, err := c.Source.StartTime(); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit.PlotPerMinute < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	return errors.Join(errs...)
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	// PORT は多くのPaaSで使われるため SERVER_ADDR より優先します
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}

	if v := os.Getenv("SOURCE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SOURCE_TIMEOUT: %w", err)
		}
		cfg.Source.Timeout = d
	}
	if v := os.Getenv("DATA_START_DATE"); v != "" {
		cfg.Source.StartDate = v
	}
	if err := envInt("SOURCE_FETCHES_PER_MINUTE", &cfg.Source.FetchesPerMinute); err != nil {
		return err
	}
	for code, locator := range symbolEnv(os.Environ()) {
		if cfg.Source.Symbols == nil {
			cfg.Source.Symbols = make(map[string]string)
		}
		cfg.Source.Symbols[code] = locator
	}

	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if err := envInt("PLOT_RATE_LIMIT_PER_MIN", &cfg.RateLimit.PlotPerMinute); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// symbolEnv collects SYMBOL_<CODE>_URL variables.
func symbolEnv(environ []string) map[string]string {
	const prefix, suffix = "SYMBOL_", "_URL"
	out := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" || len(k) <= len(prefix)+len(suffix) {
			continue
		}
		if !strings.HasPrefix(k, prefix) || !strings.HasSuffix(k, suffix) {
			continue
		}
		out[k[len(prefix):len(k)-len(suffix)]] = v
	}
	return out
}
