package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// TimeoutError indicates the request did not complete in time.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("timeout: %v", e.Err) }

func (e *TimeoutError) Unwrap() error { return e.Err }

// ConnectionError indicates a network failure before a response arrived.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("connection: %v", e.Err) }

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d %s: %s", e.Code, http.StatusText(e.Code), e.URL)
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Err: err}
	}
	return &ConnectionError{Err: err}
}

// ErrorType maps an error to a metrics label.
func ErrorType(err error) string {
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
		return "status"
	}
	return "other"
}

// Retryable reports whether another attempt could succeed. Client errors
// other than 408 and 429 are final.
func Retryable(err error) bool {
	var status *StatusError
	if errors.As(err, &status) {
		if status.Code == http.StatusRequestTimeout || status.Code == http.StatusTooManyRequests {
			return true
		}
		return status.Code >= 500
	}
	return !errors.Is(err, context.Canceled)
}
