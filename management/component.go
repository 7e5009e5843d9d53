package management

import (
	"context"

	"github.com/kbukum/mgmtkit/component"
	"github.com/kbukum/mgmtkit/logger"
)

// Component wraps a Client with lifecycle management. The client is created
// in Start.
type Component struct {
	cfg    Config
	opts   []Option
	client *Client
	log    *logger.Logger
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a management client component. A nil log discards
// output.
func NewComponent(cfg Config, log *logger.Logger, opts ...Option) *Component {
	if log == nil {
		log = logger.Nop()
	}
	return &Component{cfg: cfg, opts: opts, log: log.WithComponent("management")}
}

// Name returns the component name.
func (c *Component) Name() string {
	return "management"
}

// Start creates the client.
func (c *Component) Start(_ context.Context) error {
	client, err := New(c.cfg, append([]Option{WithLogger(c.log)}, c.opts...)...)
	if err != nil {
		return err
	}
	c.client = client
	c.log.Info("management client ready", logger.Fields("base_url", client.BaseURL()))
	return nil
}

// Stop releases idle connections.
func (c *Component) Stop(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Close(ctx)
}

// Health reports whether a token can currently be obtained.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.client == nil {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
		return h
	}
	if _, err := c.client.TokenSource().Token(ctx); err != nil {
		h.Status = component.StatusUnhealthy
		h.Message = err.Error()
	}
	return h
}

// Describe returns the component description.
func (c *Component) Describe() component.Description {
	base := c.cfg.BaseURL
	if c.client != nil {
		base = c.client.BaseURL()
	} else if base == "" && c.cfg.Domain != "" {
		base = "https://" + c.cfg.Domain + "/"
	}
	return component.Description{
		Name:    "Management API",
		Type:    "management-client",
		Details: base,
	}
}

// Client returns the client. Must be called after Start.
func (c *Component) Client() *Client {
	return c.client
}
