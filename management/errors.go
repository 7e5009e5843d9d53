package management

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/mgmtkit/httpclient"
)

// Kind classifies a failed query.
type Kind int

const (
	// KindTransport covers connection failures, timeouts, cancellation and
	// token acquisition.
	KindTransport Kind = iota + 1
	// KindStatus is a non-2xx response.
	KindStatus
	// KindDecode is a 2xx body that does not match the response type.
	KindDecode
	// KindEncode is a request that could not be serialized.
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// APIError is the error body returned by the API.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Reason     string `json:"error"`
	Message    string `json:"message"`
	ErrorCode  string `json:"errorCode,omitempty"`
}

// Error is returned by Query and Send.
type Error struct {
	Kind Kind
	// Code is the adapter classification, ErrCodeUnknown for decode errors.
	Code       httpclient.ErrorCode
	StatusCode int
	// API is the parsed error body of a KindStatus error, when there was one.
	API  *APIError
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		if e.API != nil && e.API.Message != "" {
			if e.API.ErrorCode != "" {
				return fmt.Sprintf("management: HTTP %d: %s (%s)", e.StatusCode, e.API.Message, e.API.ErrorCode)
			}
			return fmt.Sprintf("management: HTTP %d: %s", e.StatusCode, e.API.Message)
		}
		return fmt.Sprintf("management: HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("management: %s: %v", e.Kind, e.Err)
	}
	return "management: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrUnbound is reported by Send for a request that has no client.
var ErrUnbound = errors.New("request is not bound to a client")

// classify maps an adapter failure onto a Kind. A response is only present
// for non-2xx statuses.
func classify(resp *httpclient.Response, err error) *Error {
	var herr *httpclient.Error
	isHTTP := errors.As(err, &herr)

	switch {
	case resp != nil && isHTTP && herr.StatusCode > 0:
		e := &Error{Kind: KindStatus, Code: herr.Code, StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
		var api APIError
		if json.Unmarshal(resp.Body, &api) == nil && (api.Message != "" || api.Reason != "") {
			e.API = &api
		}
		return e
	case isHTTP && herr.Code == httpclient.ErrCodeEncoding:
		return &Error{Kind: KindEncode, Code: herr.Code, Err: err}
	default:
		return &Error{Kind: KindTransport, Code: httpclient.CodeOf(err), Err: err}
	}
}

// KindOf returns the Kind of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StatusCode returns the HTTP status of a KindStatus error, or zero.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindStatus {
		return e.StatusCode
	}
	return 0
}

// CodeOf returns the adapter classification of err, or ErrCodeUnknown.
func CodeOf(err error) httpclient.ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return httpclient.CodeOf(err)
}

// IsStatus reports whether err is a non-2xx response.
func IsStatus(err error) bool { return KindOf(err) == KindStatus }

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return StatusCode(err) == 404 }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsDecode reports whether err is a response decoding failure.
func IsDecode(err error) bool { return KindOf(err) == KindDecode }

// IsEncode reports whether err is a request encoding failure.
func IsEncode(err error) bool { return KindOf(err) == KindEncode }

// IsAuth reports whether err is a 401 or 403 response.
func IsAuth(err error) bool { return CodeOf(err) == httpclient.ErrCodeAuth }

// IsRateLimit reports whether err is a 429 response.
func IsRateLimit(err error) bool { return CodeOf(err) == httpclient.ErrCodeRateLimit }

// IsConflict reports whether err is a 409 response.
func IsConflict(err error) bool { return CodeOf(err) == httpclient.ErrCodeConflict }

// IsTimeout reports whether err is a deadline or client timeout.
func IsTimeout(err error) bool { return CodeOf(err) == httpclient.ErrCodeTimeout }

// IsCanceled reports whether the caller canceled the query.
func IsCanceled(err error) bool { return CodeOf(err) == httpclient.ErrCodeCanceled }

// Sent reports whether a failed query reached the server.
func Sent(err error) bool { return CodeOf(err).Sent() || KindOf(err) == KindDecode }
