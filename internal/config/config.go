package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultRemoteURL   = "https://YOUR-RENDER-APP-NAME.onrender.com"
	DefaultLocalURL    = "http://localhost:5000"
	DefaultUpscalePath = "/upscale"
	DefaultTimeout     = 2 * time.Minute
	DefaultMaxResponse = 64
)

// Config is the full client configuration. Precedence, lowest first:
// defaults, TOML file, environment, command-line flags.
type Config struct {
	Endpoints     Endpoints `toml:"endpoints"`
	Timeout       Duration  `toml:"timeout"`
	MaxResponseMB int64     `toml:"max_response_mb"`
	LogLevel      string    `toml:"log_level"`
	JSONLogs      bool      `toml:"json_logs"`
}

// Duration lets TOML files use strings like "90s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Endpoints: Endpoints{
			RemoteURL:   DefaultRemoteURL,
			LocalURL:    DefaultLocalURL,
			UpscalePath: DefaultUpscalePath,
			LocalHosts:  []string{"localhost", "127.0.0.1"},
		},
		Timeout:       Duration{DefaultTimeout},
		MaxResponseMB: DefaultMaxResponse,
		LogLevel:      "info",
	}
}

// Load reads an optional .env file, an optional TOML file and the
// environment. path may be empty; UPSCALER_CONFIG is consulted then.
func Load(path string) (Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("UPSCALER_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("UPSCALER_REMOTE_URL"); v != "" {
		c.Endpoints.RemoteURL = v
	}
	if v := os.Getenv("UPSCALER_LOCAL_URL"); v != "" {
		c.Endpoints.LocalURL = v
	}
	if v := os.Getenv("UPSCALER_PATH"); v != "" {
		c.Endpoints.UpscalePath = v
	}
	if v := os.Getenv("UPSCALER_LOCAL_HOSTS"); v != "" {
		c.Endpoints.LocalHosts = splitList(v)
	}
	if v := os.Getenv("UPSCALER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid UPSCALER_TIMEOUT: %w", err)
		}
		c.Timeout = Duration{d}
	}
	if v := os.Getenv("UPSCALER_MAX_RESPONSE_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPSCALER_MAX_RESPONSE_MB: %w", err)
		}
		c.MaxResponseMB = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if os.Getenv("UPSCALER_JSON_LOGS") == "true" {
		c.JSONLogs = true
	}
	return nil
}

// Validate checks that both endpoints are absolute http(s) URLs
func (c Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{
		"remote_url": c.Endpoints.RemoteURL,
		"local_url":  c.Endpoints.LocalURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: %q is not an absolute http(s) URL", name, raw))
		}
	}
	if c.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative"))
	}
	if c.MaxResponseMB <= 0 {
		errs = append(errs, fmt.Errorf("max_response_mb must be positive"))
	}
	return errors.Join(errs...)
}

// MaxResponseBytes is the response body cap in bytes
func (c Config) MaxResponseBytes() int64 {
	return c.MaxResponseMB * 1024 * 1024
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
