package management

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/mgmtkit/auth"
	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/logger"
	"github.com/kbukum/mgmtkit/observability"
	"github.com/kbukum/mgmtkit/util"
	"github.com/kbukum/mgmtkit/validation"
	"github.com/kbukum/mgmtkit/version"
)

// HeaderRequestID carries the per-query correlation id.
const HeaderRequestID = "X-Request-ID"

const defaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	// Domain is the tenant host, e.g. "tenant.example.com".
	Domain string `yaml:"domain" mapstructure:"domain" validate:"omitempty,hostname"`

	// BaseURL overrides the "https://<domain>/" base, mostly for tests.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Audience is requested by the client_credentials grant. Defaults to
	// "<base>api/v2/".
	Audience string `yaml:"audience" mapstructure:"audience"`

	ClientID     string `yaml:"client_id" mapstructure:"client_id" validate:"required_with=ClientSecret"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret" validate:"required_with=ClientID"`

	// Token is a pre-issued API token. It takes precedence over client
	// credentials.
	Token string `yaml:"token" mapstructure:"token"`

	Timeout time.Duration     `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// HealthCheckInterval enables HTTP/2 ping health checks on idle
	// connections. Zero disables them.
	HealthCheckInterval time.Duration `yaml:"health_check_interval" mapstructure:"health_check_interval" validate:"min=0"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Domain != "" {
		c.BaseURL = util.Coalesce(c.BaseURL, "https://"+c.Domain+"/")
	}
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.BaseURL != "" {
		c.Audience = util.Coalesce(c.Audience, c.BaseURL+"api/v2/")
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Domain == "" && c.BaseURL == "" {
		return validation.New().Custom(false, "domain", "domain or base_url is required").Err()
	}
	return validation.Validate(c)
}

// Option configures a Client.
type Option func(*options)

type options struct {
	tokens    auth.TokenSource
	metrics   *observability.Metrics
	transport http.RoundTripper
	log       *logger.Logger
}

// WithTokenSource overrides the token source derived from Config.
func WithTokenSource(ts auth.TokenSource) Option {
	return func(o *options) { o.tokens = ts }
}

// WithMetrics records every query on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHTTPTransport replaces the HTTP transport of API and token calls.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithLogger sets the logger of the client_credentials token source.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Client executes management API requests. It is immutable after New and
// safe for concurrent use.
type Client struct {
	cfg     Config
	adapter *httpclient.Adapter
	tokens  auth.TokenSource
	metrics *observability.Metrics
	agent   string
}

// New creates a client. Credentials come from WithTokenSource, then
// Config.Token, then Config.ClientID/ClientSecret.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("management: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tokens, err := tokenSource(cfg, o)
	if err != nil {
		return nil, err
	}

	adapter, err := httpclient.New(httpclient.Config{
		Name:                "management",
		BaseURL:             cfg.BaseURL,
		Timeout:             cfg.Timeout,
		Headers:             cfg.Headers,
		Auth:                httpclient.TokenAuth(tokens),
		Transport:           o.transport,
		HealthCheckInterval: cfg.HealthCheckInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("management: %w", err)
	}

	return &Client{
		cfg:     cfg,
		adapter: adapter,
		tokens:  tokens,
		metrics: o.metrics,
		agent:   version.UserAgent(),
	}, nil
}

func tokenSource(cfg Config, o options) (auth.TokenSource, error) {
	switch {
	case o.tokens != nil:
		return o.tokens, nil
	case cfg.Token != "":
		return auth.StaticToken(cfg.Token), nil
	case cfg.ClientID != "":
		cc, err := auth.NewClientCredentials(auth.Config{
			TokenURL:     cfg.BaseURL + "oauth/token",
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Audience:     cfg.Audience,
			Timeout:      cfg.Timeout,
			Transport:    o.transport,
		}, o.log)
		if err != nil {
			return nil, fmt.Errorf("management: %w", err)
		}
		return cc, nil
	default:
		return nil, errors.New("management: no credentials: set token or client_id and client_secret")
	}
}

// Config returns the resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// BaseURL returns the API base every request path is resolved against.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// TokenSource returns the credential source attached to every call.
func (c *Client) TokenSource() auth.TokenSource {
	return c.tokens
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.adapter.Unwrap()
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.adapter.Close(ctx)
}

func (c *Client) newRequest(method, path string) *httpclient.Request {
	return httpclient.NewRequest(method, path).SetHeader("Accept", "application/json")
}

// Query builds req with c, sends it once and decodes the response.
func Query[R any](ctx context.Context, c *Client, req RequestBuilder[R]) (R, error) {
	var zero R

	call := req.Build(c.newRequest)
	if call == nil {
		return zero, &Error{Kind: KindEncode, Err: errors.New("request builder returned no call")}
	}
	if err := call.Err(); err != nil {
		return zero, &Error{Kind: KindEncode, Err: err}
	}

	requestID := uuid.NewString()
	call.SetHeader("User-Agent", c.agent).SetHeader(HeaderRequestID, requestID)

	ctx, op := observability.StartOperation(ctx, c.metrics, operationName(req), call.Method, requestID)

	resp, err := c.adapter.Do(ctx, *call)
	if err != nil {
		qerr := classify(resp, err)
		op.End(ctx, qerr.StatusCode, qerr.Kind.String(), qerr)
		return zero, qerr
	}

	out, err := req.Decode(resp.Body)
	if err != nil {
		qerr := &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
		op.End(ctx, resp.StatusCode, qerr.Kind.String(), qerr)
		return zero, qerr
	}

	op.End(ctx, resp.StatusCode, "", nil)
	return out, nil
}

// Send runs a request on the client it was created from.
func Send[R any](ctx context.Context, req ClientRequestBuilder[R]) (R, error) {
	c := req.Client()
	if c == nil {
		var zero R
		return zero, &Error{Kind: KindEncode, Err: ErrUnbound}
	}
	return Query(ctx, c, req)
}

// operationName names a request by its type, e.g. "users.LogsRequest".
func operationName(req any) string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name, _, _ := strings.Cut(t.Name(), "[")
	pkg := t.PkgPath()
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		pkg = pkg[i+1:]
	}
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
