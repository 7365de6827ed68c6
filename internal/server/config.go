package server

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the demo server configuration, loaded from environment
// variables.
type Config struct {
	// Addr is the address the API server binds to.
	Addr string `envconfig:"ADDR" default:":8080"`

	// ClientID is the Nylas application client ID.
	ClientID string `envconfig:"NYLAS_CLIENT_ID" required:"true"`

	// ClientSecret is the Nylas application client secret.
	ClientSecret string `envconfig:"NYLAS_CLIENT_SECRET" required:"true"`

	// ClientURI is the redirect URI registered with the Nylas application.
	// The hosted auth page sends the user back here with the authorization
	// code.
	ClientURI string `envconfig:"NYLAS_CLIENT_URI" required:"true"`

	// Scopes is the comma-separated scope list requested during hosted auth.
	Scopes string `envconfig:"NYLAS_SCOPES" default:"email,calendar,contacts"`

	// LoginHint pre-fills the email address on the hosted auth page.
	LoginHint string `envconfig:"NYLAS_LOGIN_HINT"`

	// APIURL overrides the Nylas API base URL. Empty means the production
	// endpoint; set it to point at a local stub during development.
	APIURL string `envconfig:"NYLAS_API_URL"`

	// MetricsEnabled controls whether the dedicated metrics server starts.
	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`

	// MetricsAddr is the address the metrics server binds to.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	// ShutdownTimeout bounds how long graceful shutdown may take.
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoadConfig loads the server configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values envconfig cannot reject.
func (c *Config) Validate() error {
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
