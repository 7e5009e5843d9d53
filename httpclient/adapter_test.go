package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestAdapter_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/v2/users/123" {
			t.Errorf("expected /api/v2/users/123, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"name": "Alice"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), *NewRequest(http.MethodGet, "api/v2/users/123"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !resp.IsSuccess() {
		t.Error("expected IsSuccess=true")
	}
	if !strings.Contains(string(resp.Body), "Alice") {
		t.Errorf("response body should contain Alice, got %s", string(resp.Body))
	}
}

func TestAdapter_Do_SetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"blocked":true}` {
			t.Errorf("unexpected body %s", body)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := NewRequest(http.MethodPatch, "/users/1").SetJSON(map[string]bool{"blocked": true})
	if _, err := c.Do(context.Background(), *req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_SetJSON_EncodeFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := NewRequest(http.MethodPost, "/").SetJSON(map[string]float64{"x": math.Inf(1)})
	if req.Err() == nil {
		t.Fatal("expected preparation error to be recorded")
	}

	_, err = c.Do(context.Background(), *req)
	if CodeOf(err) != ErrCodeEncoding {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("request with preparation error must not be sent")
	}
}

func TestAdapter_Do_DefaultHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("expected X-Custom=value, got %q", got)
		}
		if got := r.Header.Get("X-Override"); got != "request" {
			t.Errorf("expected request header to win, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Custom": "value", "X-Override": "default"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := NewRequest(http.MethodGet, "/").SetHeader("X-Override", "request")
	if _, err := c.Do(context.Background(), *req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("per_page"); got != "100" {
			t.Errorf("expected per_page=100, got %q", got)
		}
		if got := q.Get("sort"); got != "date:1" {
			t.Errorf("expected sort=date:1, got %q", got)
		}
		if got := q["fields"]; len(got) != 2 {
			t.Errorf("expected two fields values, got %v", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := NewRequest(http.MethodGet, "/items").
		SetQuery(url.Values{"per_page": {"100"}, "sort": {"date:1"}}).
		AddQuery("fields", "email").
		AddQuery("fields", "name")
	if _, err := c.Do(context.Background(), *req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_Auth_Bearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected Bearer test-token, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{
		BaseURL: srv.URL,
		Auth:    BearerAuth("test-token"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Do(context.Background(), *NewRequest(http.MethodGet, "/")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_Auth_PerRequestOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer override-token" {
			t.Errorf("expected override-token, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{
		BaseURL: srv.URL,
		Auth:    BearerAuth("default-token"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := NewRequest(http.MethodGet, "/").SetAuth(BearerAuth("override-token"))
	if _, err := c.Do(context.Background(), *req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_TokenSourceFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	boom := errors.New("no credentials")
	c, err := New(Config{
		BaseURL: srv.URL,
		Auth: TokenAuth(tokenFunc(func(context.Context) (string, error) {
			return "", boom
		})),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Do(context.Background(), *NewRequest(http.MethodGet, "/"))
	var herr *Error
	if !errors.As(err, &herr) || herr.Code != ErrCodeCredentials {
		t.Fatalf("expected credentials error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Error("expected token source error to be wrapped")
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("request must not be sent without credentials")
	}
}

func TestAdapter_Do_ErrorClassification(t *testing.T) {
	tests := []struct {
		code int
		want ErrorCode
	}{
		{400, ErrCodeRejected},
		{401, ErrCodeAuth},
		{403, ErrCodeAuth},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{429, ErrCodeRateLimit},
		{500, ErrCodeServer},
		{503, ErrCodeServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP_%d", tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(`{"error":"test"}`))
			}))
			defer srv.Close()

			c, err := New(Config{BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			resp, err := c.Do(context.Background(), *NewRequest(http.MethodGet, "/"))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := CodeOf(err); got != tt.want {
				t.Errorf("HTTP %d classified as %s, want %s", tt.code, got, tt.want)
			}
			if resp == nil {
				t.Fatal("expected response even on error")
			}
			if resp.StatusCode != tt.code {
				t.Errorf("expected status %d, got %d", tt.code, resp.StatusCode)
			}
		})
	}
}

func TestAdapter_Do_NoRetryOnServerError(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(503)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Do(context.Background(), *NewRequest(http.MethodGet, "/")); err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", got)
	}
}

func TestAdapter_Do_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Do(ctx, *NewRequest(http.MethodGet, "/"))
	if CodeOf(err) != ErrCodeTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded in chain, got %v", err)
	}
}

func TestAdapter_Do_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: addr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Do(context.Background(), *NewRequest(http.MethodGet, "/"))
	if CodeOf(err) != ErrCodeConnection {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAdapter_Do_FullURL_IgnoresBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: "http://should-not-be-used.invalid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), *NewRequest(http.MethodGet, srv.URL+"/direct"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAdapter_Do_StringBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "text/plain" {
			t.Errorf("expected text/plain, got %q", ct)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := NewRequest(http.MethodPost, "/")
	req.Body = "hello world"
	if _, err := c.Do(context.Background(), *req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Unwrap(t *testing.T) {
	c, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Unwrap() == nil {
		t.Error("Unwrap should return non-nil http.Client")
	}
}

func TestRequest_FailKeepsFirstError(t *testing.T) {
	first := errors.New("first")
	req := NewRequest(http.MethodGet, "/").Fail(first).Fail(errors.New("second"))
	if req.Err() != first {
		t.Errorf("expected first error, got %v", req.Err())
	}
}

func TestResponse_Helpers(t *testing.T) {
	r := &Response{StatusCode: 200}
	if !r.IsSuccess() {
		t.Error("200 should be success")
	}
	if r.IsError() {
		t.Error("200 should not be error")
	}

	r2 := &Response{StatusCode: 500}
	if r2.IsSuccess() {
		t.Error("500 should not be success")
	}
	if !r2.IsError() {
		t.Error("500 should be error")
	}
}

func TestAdapter_HealthCheckTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, HealthCheckInterval: 15 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.Unwrap().Transport.(*http.Transport); !ok {
		t.Fatalf("expected *http.Transport, got %T", c.Unwrap().Transport)
	}

	resp, err := c.Do(context.Background(), *NewRequest(http.MethodGet, "/"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}
