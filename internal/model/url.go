package model

import (
	"fmt"
	"net/url"
	"strconv"
)

// URLParts is the result of splitting an absolute URL into the fields a
// request carries individually.
type URLParts struct {
	Scheme string
	Host   string
	Port   int // 0 when the URL carries no explicit port
	Path   string
	Query  string
}

// SplitURL parses an absolute http or https URL into its parts. Anything
// else, including scheme-relative and path-only references, is rejected with
// an error wrapping [ErrMalformedURL].
func SplitURL(raw string) (URLParts, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URLParts{}, fmt.Errorf("%w %q: %v", ErrMalformedURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return URLParts{}, fmt.Errorf("%w %q: scheme %q not supported", ErrMalformedURL, raw, u.Scheme)
	}
	if u.Hostname() == "" {
		return URLParts{}, fmt.Errorf("%w %q: missing host", ErrMalformedURL, raw)
	}
	port := 0
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port <= 0 {
			return URLParts{}, fmt.Errorf("%w %q: invalid port %q", ErrMalformedURL, raw, p)
		}
	}
	return URLParts{
		Scheme: u.Scheme,
		Host:   u.Hostname(),
		Port:   port,
		Path:   u.Path,
		Query:  u.RawQuery,
	}, nil
}
