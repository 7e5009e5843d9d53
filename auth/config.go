package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/mgmtkit/validation"
)

const (
	defaultLeeway  = 30 * time.Second
	defaultTimeout = 10 * time.Second
)

// Config configures the client_credentials token source.
type Config struct {
	// TokenURL is the absolute URL of the tenant's oauth/token endpoint.
	TokenURL string `mapstructure:"token_url" validate:"required,url"`

	// ClientID and ClientSecret identify the machine-to-machine application.
	ClientID     string `mapstructure:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`

	// Audience is the API identifier the token is requested for.
	Audience string `mapstructure:"audience" validate:"required"`

	// Leeway refreshes tokens this long before they expire. Defaults to 30s.
	Leeway time.Duration `mapstructure:"leeway" validate:"min=0"`

	// Timeout bounds a single token request. Defaults to 10s.
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`

	// Transport replaces the default HTTP transport when set.
	Transport http.RoundTripper `mapstructure:"-" validate:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Leeway == 0 {
		c.Leeway = defaultLeeway
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}
