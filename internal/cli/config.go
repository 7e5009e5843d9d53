package cli

import (
	"fmt"

	"github.com/kbukum/mgmtkit/config"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/util"
	"github.com/kbukum/mgmtkit/validation"
)

const (
	serviceName = "mgmtctl"
	envPrefix   = "MGMTCTL"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the mgmtctl configuration. It is read from mgmtctl.yml or
// config.yml, then MGMTCTL_* environment variables, then flags.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Management management.Config `yaml:"management" mapstructure:"management"`
	Output     string            `yaml:"output" mapstructure:"output"`
}

// ApplyDefaults fills in zero-value fields. The CLI logs warnings and
// above unless configured otherwise.
func (c *Config) ApplyDefaults() {
	c.Name = util.Coalesce(c.Name, serviceName)
	c.Logging.Level = util.Coalesce(c.Logging.Level, "warn")
	c.ServiceConfig.ApplyDefaults()
	c.Output = util.Coalesce(c.Output, OutputJSON)
}

// Validate checks the service section and the output format. The
// management section is validated when the client starts.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.New().
		OneOf("output", c.Output, []string{OutputJSON, OutputYAML}).
		Err()
}

func loadConfig(o *rootOptions) (*Config, error) {
	cfg := &Config{}
	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		opts = append(opts, config.WithEnvFile(o.envFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}

	o.override(cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mgmtctl: %w", err)
	}
	return cfg, nil
}
