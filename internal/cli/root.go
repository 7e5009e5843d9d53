package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/mgmtkit/component"
	"github.com/kbukum/mgmtkit/logger"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/version"
)

type rootOptions struct {
	configFile   string
	envFile      string
	domain       string
	baseURL      string
	token        string
	output       string
	logLevel     string
	otlpEndpoint string
}

// override copies explicitly set flags over the loaded configuration.
func (o *rootOptions) override(cfg *Config) {
	if o.domain != "" {
		cfg.Management.Domain = o.domain
	}
	if o.baseURL != "" {
		cfg.Management.BaseURL = o.baseURL
	}
	if o.token != "" {
		cfg.Management.Token = o.token
	}
	if o.output != "" {
		cfg.Output = o.output
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.otlpEndpoint != "" {
		cfg.Telemetry.Endpoint = o.otlpEndpoint
	}
}

// app carries the state of one command invocation.
type app struct {
	opts      rootOptions
	cfg       *Config
	log       *logger.Logger
	telemetry *telemetry
	registry  *component.Registry
	mgmt      *management.Component
}

// NewRootCmd creates the root cobra command for mgmtctl.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mgmtctl",
		Short:         "Identity management API client",
		Long:          "mgmtctl reads and changes users of an identity management tenant.",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configFile, "config", "", "Config file (default: ./mgmtctl.yml, ./config.yml or the user config dir)")
	flags.StringVar(&a.opts.envFile, "env-file", "", "Env file loaded before MGMTCTL_* variables are read")
	flags.StringVar(&a.opts.domain, "domain", "", "Tenant domain, e.g. tenant.example.com")
	flags.StringVar(&a.opts.baseURL, "base-url", "", "API base URL, overrides --domain")
	flags.StringVar(&a.opts.token, "token", "", "Management API token")
	flags.StringVarP(&a.opts.output, "output", "o", "", "Output format (json, yaml)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.opts.otlpEndpoint, "otlp-endpoint", "", "OTLP HTTP endpoint host:port for traces and metrics")

	root.AddCommand(
		newUsersCmd(a),
		newHealthCmd(a),
		newVersionCmd(a),
	)

	return root
}

// load reads configuration and sets up logging and telemetry.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := loadConfig(&a.opts)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr())

	if cfg.Telemetry.Enabled() {
		t, err := startTelemetry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		a.telemetry = t
		a.log.Debug("telemetry enabled", logger.Fields("endpoint", cfg.Telemetry.Endpoint))
	}
	return nil
}

// start loads configuration and starts the management client.
func (a *app) start(cmd *cobra.Command) error {
	if err := a.load(cmd); err != nil {
		return err
	}

	var opts []management.Option
	if a.telemetry != nil {
		opts = append(opts, management.WithMetrics(a.telemetry.metrics))
	}

	a.registry = component.NewRegistry(a.log)
	a.mgmt = management.NewComponent(a.cfg.Management, a.log, opts...)
	if err := a.registry.Register(a.mgmt); err != nil {
		return err
	}
	return a.registry.StartAll(cmd.Context())
}

// stop releases the client and flushes telemetry.
func (a *app) stop(ctx context.Context) error {
	var errs []error
	if a.registry != nil {
		errs = append(errs, a.registry.StopAll(ctx))
	}
	if a.telemetry != nil {
		errs = append(errs, a.telemetry.shutdown(ctx))
	}
	return errors.Join(errs...)
}

// withClient wraps a command body so it runs between start and stop.
func (a *app) withClient(run func(cmd *cobra.Command, args []string, c *management.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if stopErr := a.stop(context.WithoutCancel(cmd.Context())); stopErr != nil {
				err = errors.Join(err, fmt.Errorf("shutdown: %w", stopErr))
			}
		}()
		if err := a.start(cmd); err != nil {
			return err
		}
		return run(cmd, args, a.mgmt.Client())
	}
}

// print writes v to the command output in the configured format.
func (a *app) print(cmd *cobra.Command, v any) error {
	format := OutputJSON
	if a.cfg != nil {
		format = a.cfg.Output
	}
	return render(cmd.OutOrStdout(), format, v)
}
