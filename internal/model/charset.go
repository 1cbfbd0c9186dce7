package model

import (
	"fmt"
	"mime"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is assumed for response bodies whose Content-Type names no
// charset, unless the client configures a different fallback.
const DefaultCharset = "utf-8"

// Charset resolves the charset a response body should be decoded with. It
// reads the charset parameter of the given Content-Type header value and
// falls back to the given default when the header is absent, unparsable, or
// names no charset. An empty fallback means [DefaultCharset].
func Charset(contentType, fallback string) string {
	if fallback == "" {
		fallback = DefaultCharset
	}
	if contentType == "" {
		return fallback
	}
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if cs := params["charset"]; cs != "" {
			return cs
		}
	}
	return fallback
}

// DecodeText decodes b into a string using the named charset. Charset names
// are matched the way browsers match them, so the usual aliases (latin1,
// iso-8859-1, ...) work. An unknown name is an error; absent names are the
// caller's business, via [Charset].
func DecodeText(b []byte, name string) (string, error) {
	enc, canonical := charset.Lookup(name)
	if enc == nil {
		return "", fmt.Errorf("unsupported charset %q", name)
	}
	if enc == unicode.UTF8 {
		return string(b), nil
	}
	s, err := enc.NewDecoder().String(string(b))
	if err != nil {
		return "", fmt.Errorf("charset %s: %w", canonical, err)
	}
	return s, nil
}
