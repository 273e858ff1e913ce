package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	errs "github.com/jrsteele09/go-login-broker/internal/errors"
)

// Config holds all environment-supplied configuration for the broker.
// The loading mechanism is plain environment variables; anything secret
// (client credentials, cookie secret) is validated at startup so a
// misconfigured process never accepts traffic.
type Config struct {
	Port    string `env:"PORT" envDefault:"5000"`
	Env     string `env:"ENV" envDefault:"DEV"`
	AppName string `env:"APP_NAME" envDefault:"Login Broker"`

	// BaseURL is the externally visible origin of the broker itself.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000"`
	// FrontendURL is where the browser is sent after login and logout.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	// RedirectURL is the provider callback. Defaults to BaseURL + the
	// callback route when unset.
	RedirectURL string `env:"OAUTH_REDIRECT_URL"`

	CookieSecret string `env:"COOKIE_SECRET"`

	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	StateTTL        time.Duration `env:"STATE_TTL" envDefault:"10m"`
	ExchangeTimeout time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"10s"`

	// RedisAddr selects the Redis session store when set; empty means the
	// in-memory store (single-process deployments).
	RedisAddr string `env:"REDIS_ADDR"`
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every required value is present. It reports all
// missing variables at once rather than one per restart.
func (c Config) Validate() error {
	var missing []string
	if c.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.GoogleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.CookieSecret == "" {
		missing = append(missing, "COOKIE_SECRET")
	}
	if len(missing) > 0 {
		return errs.Wrapf(errs.ErrMissingConfig, "%s", strings.Join(missing, ", "))
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid BASE_URL %q: %w", c.BaseURL, err)
	}
	if _, err := url.Parse(c.FrontendURL); err != nil {
		return fmt.Errorf("invalid FRONTEND_URL %q: %w", c.FrontendURL, err)
	}
	return nil
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	port := c.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

// CallbackURL returns the provider redirect URL, deriving it from BaseURL
// when OAUTH_REDIRECT_URL is not set explicitly.
func (c Config) CallbackURL(callbackPath string) string {
	if c.RedirectURL != "" {
		return c.RedirectURL
	}
	return strings.TrimSuffix(c.BaseURL, "/") + callbackPath
}
