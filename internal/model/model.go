package model

import (
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
)

// ByteArray is the output coercion mode that leaves the response body as the
// raw bytes received from the transport, whatever its Content-Type says.
const ByteArray = "byte-array"

// Param is one query-string key/value pair. Values are encoded verbatim, so
// callers format numbers and such themselves.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered set of query parameters. Order is preserved in the
// generated query string, unlike a map.
type Params []Param

// Credentials is a basic-auth user/password pair.
type Credentials struct {
	User     string
	Password string
}

// Request describes one HTTP exchange. Callers usually fill only the
// high-level fields (URL, Method, QueryParams, ...); the middleware stack
// consumes those and leaves the canonical transport fields behind. A Request
// handed to a client is never mutated: every rewriting layer works on a
// Clone, so a base Request may be reused across calls.
type Request struct {
	// High-level fields, each consumed by exactly one middleware.
	URL            string // absolute URL, expanded into the target fields below
	Method         string // verb in any casing, canonicalized into RequestMethod
	QueryParams    Params // encoded into QueryString, order preserved
	BasicAuth      *Credentials
	Accept         string   // media type, or a short tag like "json"
	AcceptEncoding []string // joined into the Accept-Encoding header
	As             string   // response body mode: "" decodes text, ByteArray keeps bytes

	// Canonical transport fields.
	Scheme            string
	ServerName        string
	ServerPort        int // 0 or negative means the scheme default
	URI               string
	QueryString       string
	RequestMethod     string
	Header            http.Header
	Body              any    // nil, string, or []byte; a string is coerced to UTF-8 bytes
	ContentType       string // media type, or a short tag like "json"
	CharacterEncoding string
}

// Clone returns a copy of r that shares no mutable state with it, except the
// body value: body bytes are treated as read-only by every layer. The copy
// always has a non-nil Header. Clone of a nil request is an empty request.
func (r *Request) Clone() *Request {
	if r == nil {
		return &Request{Header: http.Header{}}
	}
	r2 := *r
	r2.Header = r.Header.Clone()
	if r2.Header == nil {
		r2.Header = http.Header{}
	}
	r2.QueryParams = slices.Clone(r.QueryParams)
	r2.AcceptEncoding = slices.Clone(r.AcceptEncoding)
	if r.BasicAuth != nil {
		auth := *r.BasicAuth
		r2.BasicAuth = &auth
	}
	return &r2
}

// TargetURL reassembles the canonical target fields into an absolute URL.
func (r *Request) TargetURL() *url.URL {
	host := r.ServerName
	if r.ServerPort > 0 {
		host = net.JoinHostPort(r.ServerName, strconv.Itoa(r.ServerPort))
	}
	return &url.URL{
		Scheme:   r.Scheme,
		Host:     host,
		Path:     r.URI,
		RawQuery: r.QueryString,
	}
}

// Response describes the result of one exchange. Body holds the raw []byte
// from the transport until output coercion decodes it into a string; it is
// nil when the exchange produced no body.
type Response struct {
	Status int
	Header http.Header
	Body   any // nil, []byte, or string once decoded

	// Err is set instead of Status/Header/Body when a verb call could not
	// complete the exchange. It is never set on responses returned by a
	// transport.
	Err error
}

// Bytes returns the body as raw bytes, or nil when absent.
func (r *Response) Bytes() []byte {
	switch b := r.Body.(type) {
	case []byte:
		return b
	case string:
		return []byte(b)
	}
	return nil
}

// Text returns the body as a string, or "" when absent.
func (r *Response) Text() string {
	switch b := r.Body.(type) {
	case string:
		return b
	case []byte:
		return string(b)
	}
	return ""
}
