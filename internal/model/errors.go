package model

import (
	"errors"
	"fmt"
)

// ErrMalformedURL marks a request target that could not be resolved into an
// absolute http(s) URL, including redirect targets taken from a response.
var ErrMalformedURL = errors.New("malformed url")

// ErrTooManyRedirects is returned when a redirect chain exceeds the
// configured budget.
var ErrTooManyRedirects = errors.New("too many redirects")

// TransportError wraps a failure that happened while carrying a request to a
// server: connection and DNS errors, timeouts, and malformed targets
// discovered mid-flight. It keeps the URL that was being attempted so error
// responses can report it.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a failure to decode a response body that was otherwise
// received intact: a malformed gzip or deflate stream, or an undecodable
// charset. These are data errors, not network errors, and are never converted
// into error responses.
type DecodeError struct {
	Op  string // "gzip", "deflate" or "charset"
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
