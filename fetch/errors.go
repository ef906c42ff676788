package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// TimeoutError indicates the request exceeded its deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("timeout: %v", e.Err) }
func (e *TimeoutError) Unwrap() error { return e.Err }

// ConnectionError indicates a transport-level failure.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("connection: %v", e.Err) }
func (e *ConnectionError) Unwrap() error { return e.Err }

// StatusError indicates a non-success HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Code, http.StatusText(e.Code))
}

// ContentTypeError indicates a response of the wrong kind, e.g. JSON
// where a rendered page was expected.
type ContentTypeError struct {
	URL         string
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("unexpected content type %q from %s", e.ContentType, e.URL)
}

// classify wraps a raw fetch error into the gateway taxonomy. The
// status code takes precedence because colly reports non-2xx responses
// as bare text errors.
func classify(err error, statusCode int) error {
	if statusCode >= http.StatusBadRequest {
		return &StatusError{Code: statusCode}
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &ConnectionError{Err: err}
	}
	return err
}

// errorLabel maps a classified error to its metrics label.
func errorLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn *ConnectionError
	if errors.As(err, &conn) {
		return "connection"
	}
	var status *StatusError
	if errors.As(err, &status) {
		switch status.Code {
		case http.StatusForbidden:
			return "forbidden"
		case http.StatusNotFound:
			return "not_found"
		case http.StatusTooManyRequests:
			return "rate_limited"
		}
		return "bad_status"
	}
	var contentType *ContentTypeError
	if errors.As(err, &contentType) {
		return "content_type"
	}
	return "other"
}
