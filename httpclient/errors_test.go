package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{200, ErrCodeUnknown},
		{204, ErrCodeUnknown},
		{400, ErrCodeRejected},
		{401, ErrCodeAuth},
		{403, ErrCodeAuth},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{422, ErrCodeRejected},
		{429, ErrCodeRateLimit},
		{500, ErrCodeServer},
		{302, ErrCodeServer},
	}
	for _, tt := range tests {
		e := ClassifyStatusCode(tt.status, []byte("body"))
		if tt.want == ErrCodeUnknown {
			if e != nil {
				t.Errorf("ClassifyStatusCode(%d): expected nil, got %v", tt.status, e)
			}
			continue
		}
		if e == nil {
			t.Fatalf("ClassifyStatusCode(%d): expected error", tt.status)
		}
		if e.Code != tt.want || e.StatusCode != tt.status || string(e.Body) != "body" {
			t.Errorf("ClassifyStatusCode(%d) = %+v, want code %s", tt.status, e, tt.want)
		}
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Code: ErrCodeNotFound, StatusCode: 404}, "httpclient: not_found: HTTP 404"},
		{NewError(ErrCodeConnection, errors.New("connection refused")), "httpclient: connection: connection refused"},
		{&Error{Code: ErrCodeCanceled}, "httpclient: canceled"},
		{&Error{Code: ErrorCode(99)}, "httpclient: unknown"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestErrorCode_Sent(t *testing.T) {
	for _, c := range []ErrorCode{ErrCodeEncoding, ErrCodeCredentials} {
		if c.Sent() {
			t.Errorf("%s should not count as sent", c)
		}
	}
	for _, c := range []ErrorCode{ErrCodeTimeout, ErrCodeCanceled, ErrCodeConnection, ErrCodeRateLimit, ErrCodeServer} {
		if !c.Sent() {
			t.Errorf("%s should count as sent", c)
		}
	}
}

func TestCodeOf(t *testing.T) {
	inner := NewError(ErrCodeCredentials, errors.New("no token"))
	wrapped := fmt.Errorf("query: %w", inner)

	if got := CodeOf(wrapped); got != ErrCodeCredentials {
		t.Errorf("CodeOf(wrapped) = %s, want credentials", got)
	}
	if got := CodeOf(errors.New("plain")); got != ErrCodeUnknown {
		t.Errorf("CodeOf(plain) = %s, want unknown", got)
	}
	if !errors.Is(wrapped, inner.Err) {
		t.Error("expected cause to stay in the chain")
	}
}

func TestAdapter_Do_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Do(ctx, *NewRequest(http.MethodGet, "/"))
	if CodeOf(err) != ErrCodeCanceled {
		t.Fatalf("expected canceled error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestAdapter_Do_InvalidMethodIsEncoding(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.Do(context.Background(), *NewRequest("BAD METHOD", "/"))
	if CodeOf(err) != ErrCodeEncoding {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("request must not be sent")
	}
}
