package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies why a call failed.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota

	// Nothing was sent.
	ErrCodeEncoding    // the request could not be built or serialized
	ErrCodeCredentials // the token source failed

	// Sent, no response.
	ErrCodeTimeout    // deadline or client timeout
	ErrCodeCanceled   // the caller canceled the context
	ErrCodeConnection // refused, reset, DNS

	// Non-2xx response.
	ErrCodeAuth      // 401, 403
	ErrCodeNotFound  // 404
	ErrCodeConflict  // 409
	ErrCodeRateLimit // 429
	ErrCodeRejected  // other 4xx
	ErrCodeServer    // 5xx and anything else
)

var codeNames = map[ErrorCode]string{
	ErrCodeEncoding:    "encoding",
	ErrCodeCredentials: "credentials",
	ErrCodeTimeout:     "timeout",
	ErrCodeCanceled:    "canceled",
	ErrCodeConnection:  "connection",
	ErrCodeAuth:        "auth",
	ErrCodeNotFound:    "not_found",
	ErrCodeConflict:    "conflict",
	ErrCodeRateLimit:   "rate_limit",
	ErrCodeRejected:    "rejected",
	ErrCodeServer:      "server",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Sent reports whether a call failing with c reached the server.
func (c ErrorCode) Sent() bool {
	return c >= ErrCodeTimeout
}

// Error is a classified adapter failure. StatusCode and Body are set only
// for non-2xx responses.
type Error struct {
	Code       ErrorCode
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("httpclient: %s: HTTP %d", e.Code, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("httpclient: %s: %v", e.Code, e.Err)
	default:
		return "httpclient: " + e.Code.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with code.
func NewError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}

// ClassifyStatusCode returns the error for a non-2xx status, or nil.
func ClassifyStatusCode(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	return &Error{Code: statusCode(status), StatusCode: status, Body: body}
}

func statusCode(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrCodeAuth
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusConflict:
		return ErrCodeConflict
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case status >= 400 && status < 500:
		return ErrCodeRejected
	default:
		return ErrCodeServer
	}
}

// contextCode distinguishes a canceled context from an expired one.
func contextCode(ctxErr error) ErrorCode {
	if errors.Is(ctxErr, context.Canceled) {
		return ErrCodeCanceled
	}
	return ErrCodeTimeout
}

// CodeOf returns the code of the first *Error in err's chain, or
// ErrCodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeUnknown
}
