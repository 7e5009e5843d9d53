package httpclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestBearerAuth(t *testing.T) {
	auth := BearerAuth("my-token")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestBasicAuth(t *testing.T) {
	auth := BasicAuth("user", "pass")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	u, p, ok := req.BasicAuth()
	if !ok || u != "user" || p != "pass" {
		t.Errorf("basic auth not set correctly: user=%q pass=%q ok=%v", u, p, ok)
	}
}

func TestAPIKeyAuth_Header(t *testing.T) {
	auth := APIKeyAuth("secret-key")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-API-Key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestAPIKeyAuthQuery(t *testing.T) {
	auth := APIKeyAuthQuery("secret-key", "api_key")
	req, _ := http.NewRequest("GET", "http://example.com/path", nil)
	auth.apply(req)
	if got := req.URL.Query().Get("api_key"); got != "secret-key" {
		t.Errorf("got %q, want %q", got, "secret-key")
	}
}

func TestCustomAuth(t *testing.T) {
	auth := CustomAuth(func(req *http.Request) {
		req.Header.Set("X-Custom", "value")
	})
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("X-Custom"); got != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}
}

func TestNilAuth(t *testing.T) {
	var auth *AuthConfig
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req) // should not panic
}

func TestAuthNone(t *testing.T) {
	auth := &AuthConfig{Type: AuthNone}
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req) // should not modify request
	if req.Header.Get("Authorization") != "" {
		t.Error("AuthNone should not set Authorization header")
	}
}

type tokenFunc func(ctx context.Context) (string, error)

func (f tokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

func TestTokenAuth(t *testing.T) {
	auth := TokenAuth(tokenFunc(func(context.Context) (string, error) {
		return "fresh-token", nil
	}))
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := auth.apply(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer fresh-token" {
		t.Errorf("got %q, want %q", got, "Bearer fresh-token")
	}
}

func TestTokenAuth_Error(t *testing.T) {
	boom := errors.New("token endpoint down")
	auth := TokenAuth(tokenFunc(func(context.Context) (string, error) {
		return "", boom
	}))
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := auth.apply(req); !errors.Is(err, boom) {
		t.Fatalf("expected token error, got %v", err)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("no Authorization header expected on failure")
	}
}
