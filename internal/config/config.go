package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

// Config is shared by the web console and the command line client.
// The cli only uses the logging, api and credentials settings.
type Config struct {
	Environment  string        `env:"ENVIRONMENT,default=dev"`
	Host         string        `env:"HOST,default=0.0.0.0"`
	Port         int           `env:"PORT,default=3000"`
	LogLevel     string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=310s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=60s"`

	// APIBaseURL is the survey API address. A relative value (the default) is resolved against BackendURL,
	// which is also where the console proxies /api/v1 in dev.
	APIBaseURL     string        `env:"API_BASE_URL,default=/api/v1"`
	BackendURL     string        `env:"BACKEND_URL,default=http://localhost:8000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=300s"`

	// PublicBaseURL is the address respondents use to open survey fill links. Defaults to http://<host>:<port>
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	RateLimitRPS   int    `env:"RATE_LIMIT_RPS,default=50"`
	RateLimitBurst int    `env:"RATE_LIMIT_BURST,default=100"`
	MaxRequestSize int64  `env:"MAX_REQUEST_SIZE,default=5242880"`

	CredentialsFile string `env:"CREDENTIALS_FILE"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"perf":    true,
	"prod":    true,
	"staging": true,
}

const (
	AccessTokenCookieName = "access_token"
	CredentialsFileName   = "credentials.json"
	AppName               = "Survey System"
)

// NewConfig loads the configuration from the process environment
func NewConfig() (*Config, error) {
	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return NewConfigFromEnvSet(es)
}

// NewConfigFromEnvSet loads the configuration from the supplied variables
func NewConfigFromEnvSet(es env.EnvSet) (*Config, error) {
	var cfg Config

	if err := env.Unmarshal(es, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, perf, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", cfg.RequestTimeout)
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}

	if _, err := cfg.ResolvedAPIBaseURL(); err != nil {
		return err
	}

	if cfg.MaxRequestSize <= 0 {
		return fmt.Errorf("max request size must be positive, got %d", cfg.MaxRequestSize)
	}

	return nil
}

// ResolvedAPIBaseURL returns the absolute survey API address without a trailing slash.
func (c *Config) ResolvedAPIBaseURL() (string, error) {
	base, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API_BASE_URL %q: %w", c.APIBaseURL, err)
	}

	if !base.IsAbs() {
		backend, err := url.Parse(c.BackendURL)
		if err != nil || !backend.IsAbs() || backend.Host == "" {
			return "", fmt.Errorf("BACKEND_URL must be an absolute url when API_BASE_URL is relative, got %q", c.BackendURL)
		}
		base = backend.ResolveReference(&url.URL{Path: "/" + strings.TrimPrefix(base.Path, "/")})
	}

	if base.Host == "" {
		return "", fmt.Errorf("API_BASE_URL %q has no host", c.APIBaseURL)
	}

	return strings.TrimSuffix(base.String(), "/"), nil
}

// APIProxyPrefix returns the path prefix the console proxies to the backend when API_BASE_URL is relative.
// It returns "" when the api is addressed directly.
func (c *Config) APIProxyPrefix() string {
	if strings.Contains(c.APIBaseURL, "://") {
		return ""
	}
	return "/" + strings.Trim(c.APIBaseURL, "/")
}

// PublicURL is the base of the links shared with survey respondents.
func (c *Config) PublicURL() string {
	if c.PublicBaseURL != "" {
		return strings.TrimSuffix(c.PublicBaseURL, "/")
	}
	host := c.Host
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Port)
}

// AllowedOriginList returns the comma separated ALLOWED_ORIGINS as a slice
func (c *Config) AllowedOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// CredentialsPath is where the cli keeps the stored credential.
func (c *Config) CredentialsPath() (string, error) {
	if c.CredentialsFile != "" {
		return c.CredentialsFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not locate user config directory: %w", err)
	}
	return filepath.Join(dir, "surveyctl", CredentialsFileName), nil
}
