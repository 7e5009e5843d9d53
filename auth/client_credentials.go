package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/logger"
	"github.com/kbukum/mgmtkit/observability"
	"github.com/kbukum/mgmtkit/util"
)

const grantClientCredentials = "client_credentials"

// tokenRequest is the JSON body sent to the token endpoint.
type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience"`
}

// tokenResponse is the token endpoint's success body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// OAuthError is the token endpoint's error body.
type OAuthError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("auth: token request rejected (HTTP %d): %s: %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("auth: token request rejected (HTTP %d): %s", e.StatusCode, e.Code)
}

// ClientCredentials fetches tokens with the OAuth2 client_credentials grant
// and caches them until Leeway before expiry. Tokens that live less than
// twice the Leeway are refreshed half way through instead. Concurrent
// callers share one refresh.
type ClientCredentials struct {
	cfg     Config
	adapter *httpclient.Adapter
	log     *logger.Logger
	now     func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
	leeway time.Duration
}

var _ TokenSource = (*ClientCredentials)(nil)

// NewClientCredentials creates a client_credentials token source. A nil log
// discards output.
func NewClientCredentials(cfg Config, log *logger.Logger) (*ClientCredentials, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	adapter, err := httpclient.New(httpclient.Config{
		Name:      "oauth-token",
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	return &ClientCredentials{
		cfg:     cfg,
		adapter: adapter,
		log:     log.WithComponent("auth"),
		now:     time.Now,
	}, nil
}

// Token returns the cached token or fetches a new one.
func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry.Add(-c.leeway)) {
		return c.token, nil
	}

	token, expiry, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token, c.expiry = token, expiry
	c.leeway = clampLeeway(c.cfg.Leeway, expiry.Sub(c.now()))
	return token, nil
}

// clampLeeway caps leeway at half the token lifetime.
func clampLeeway(leeway, lifetime time.Duration) time.Duration {
	if lifetime <= 0 {
		return 0
	}
	return min(leeway, lifetime/2)
}

// Invalidate drops the cached token so the next call refreshes.
func (c *ClientCredentials) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiry = time.Time{}
	c.leeway = 0
	c.mu.Unlock()
}

func (c *ClientCredentials) fetch(ctx context.Context) (string, time.Time, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTokenRefresh)
	defer span.End()

	req := httpclient.NewRequest(http.MethodPost, c.cfg.TokenURL).
		SetHeader("Accept", "application/json").
		SetJSON(tokenRequest{
			GrantType:    grantClientCredentials,
			ClientID:     c.cfg.ClientID,
			ClientSecret: c.cfg.ClientSecret,
			Audience:     c.cfg.Audience,
		})

	resp, err := c.adapter.Do(ctx, *req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		if resp != nil {
			return "", time.Time{}, oauthError(resp)
		}
		return "", time.Time{}, fmt.Errorf("auth: token request: %w", err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.Body, &tr); err != nil {
		return "", time.Time{}, fmt.Errorf("auth: decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, errors.New("auth: token response has no access_token")
	}

	issued := c.now()
	expiry := issued.Add(time.Duration(tr.ExpiresIn) * time.Second)
	if tr.ExpiresIn <= 0 {
		expiry = expiryFromClaims(tr.AccessToken)
	}

	c.log.Debug("access token refreshed", logger.Fields(
		"audience", c.cfg.Audience,
		"client_id", util.MaskSecret(c.cfg.ClientID, 4),
		"expires_in", expiry.Sub(issued).Round(time.Second).String(),
	))
	return tr.AccessToken, expiry, nil
}

// expiryFromClaims reads the exp claim without verifying the signature; the
// token came straight from the issuer. Zero means unknown, so the token is
// not reused.
func expiryFromClaims(token string) time.Time {
	claims := gojwt.MapClaims{}
	if _, _, err := gojwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func oauthError(resp *httpclient.Response) error {
	oe := &OAuthError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(resp.Body, oe); err != nil || oe.Code == "" {
		oe.Code = http.StatusText(resp.StatusCode)
	}
	return oe
}
