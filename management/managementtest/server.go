package managementtest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mgmtkit/component"
	"github.com/kbukum/mgmtkit/logger"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Default credentials accepted by the fake.
const (
	DefaultToken        = "test-token"
	DefaultClientID     = "test-client"
	DefaultClientSecret = "test-secret"
)

// Request is a request as the fake received it.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type cannedResponse struct {
	status int
	body   []byte
}

// Server is a fake users API backed by httptest.Server.
type Server struct {
	token        string
	clientID     string
	clientSecret string
	tokenTTL     time.Duration
	log          *logger.Logger

	mu       sync.RWMutex
	ts       *httptest.Server
	state    *state
	requests []Request
	canned   []cannedResponse
	issued   int
}

var _ component.Component = (*Server)(nil)
var _ component.Describable = (*Server)(nil)
var _ testutil.TestComponent = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithToken sets the bearer token the API accepts.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithClientCredentials sets the client id and secret the token endpoint
// accepts.
func WithClientCredentials(id, secret string) Option {
	return func(s *Server) { s.clientID, s.clientSecret = id, secret }
}

// WithTokenTTL sets expires_in of issued tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// WithLogger logs every request at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer creates a fake. Call Start before use.
func NewServer(opts ...Option) *Server {
	s := &Server{
		token:        DefaultToken,
		clientID:     DefaultClientID,
		clientSecret: DefaultClientSecret,
		tokenTTL:     24 * time.Hour,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("managementtest")
	return s
}

// URL returns the API base with a trailing slash, or "" before Start.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL + "/"
}

// Config returns a client configuration that authenticates with the static
// token.
func (s *Server) Config() management.Config {
	return management.Config{BaseURL: s.URL(), Token: s.token, Timeout: 5 * time.Second}
}

// CredentialsConfig returns a client configuration that uses the
// client_credentials grant.
func (s *Server) CredentialsConfig() management.Config {
	return management.Config{
		BaseURL:      s.URL(),
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Timeout:      5 * time.Second,
	}
}

// Requests returns the API requests received so far, token requests
// included.
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// TokensIssued counts successful client_credentials grants.
func (s *Server) TokensIssued() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued
}

// RespondNext makes the next API request receive status and body verbatim.
// Calls queue up.
func (s *Server) RespondNext(status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned = append(s.canned, cannedResponse{status: status, body: body})
}

// --- component.Component ---

func (s *Server) Name() string { return "management-fake" }

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ts != nil {
		return fmt.Errorf("component already started")
	}
	st, err := seedState()
	if err != nil {
		return err
	}
	s.state = st
	s.ts = httptest.NewServer(s.routes())
	return nil
}

func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ts == nil {
		return nil
	}
	s.ts.Close()
	s.ts = nil
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ts == nil {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

func (s *Server) Describe() component.Description {
	return component.Description{Name: "Management API fake", Type: "fake-server", Details: s.URL()}
}

// --- testutil.TestComponent ---

// Reset reseeds the fixtures and forgets recorded requests.
func (s *Server) Reset(_ context.Context) error {
	st, err := seedState()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.requests = nil
	s.canned = nil
	s.issued = 0
	return nil
}

// Snapshot captures the stored users and logs.
func (s *Server) Snapshot(_ context.Context) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, fmt.Errorf("component not started")
	}
	return s.state.clone()
}

// Restore returns the stored users and logs to a Snapshot.
func (s *Server) Restore(_ context.Context, snapshot any) error {
	st, ok := snapshot.(*state)
	if !ok {
		return fmt.Errorf("unexpected snapshot type %T", snapshot)
	}
	cp, err := st.clone()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cp
	return nil
}

// --- middleware ---

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.Query(),
			Header: c.Request.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		start := time.Now()
		c.Next()
		s.log.Debug("request served", logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		))
	}
}

func (s *Server) replay() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		if len(s.canned) == 0 {
			s.mu.Unlock()
			c.Next()
			return
		}
		next := s.canned[0]
		s.canned = s.canned[1:]
		s.mu.Unlock()
		c.Data(next.status, "application/json", next.body)
		c.Abort()
	}
}

func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+s.token {
			abortWithAPIError(c, http.StatusUnauthorized, "Invalid token.", "")
			return
		}
		c.Next()
	}
}
