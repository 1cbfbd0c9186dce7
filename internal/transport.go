package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/midware/go-fetch/internal/model"
)

// Transport carries one canonical request to a server and reports what came
// back. Implementations never follow redirects, never negotiate content
// codings on their own, and never interpret status codes; each of those is a
// middleware's job. An error return means the exchange itself failed.
type Transport interface {
	RoundTrip(ctx context.Context, req *model.Request) (*model.Response, error)
}

// TransportFunc adapts a function to the [Transport] interface.
type TransportFunc func(ctx context.Context, req *model.Request) (*model.Response, error)

func (f TransportFunc) RoundTrip(ctx context.Context, req *model.Request) (*model.Response, error) {
	return f(ctx, req)
}

// DefaultTransport is the transport used by clients that configure none.
var DefaultTransport Transport = &CoreTransport{}

// roundTripper is CoreTransport's fallback. Compression is disabled so that
// bodies arrive exactly as encoded; the decompression middleware owns that
// concern end to end.
var roundTripper = &http.Transport{
	Proxy:              http.ProxyFromEnvironment,
	DisableCompression: true,
}

// CoreTransport is the default [Transport]. It hands the wire work,
// connections, pooling, TLS, DNS and protocol negotiation, to an
// [http.RoundTripper] and buffers the whole response body. The zero value
// uses a package-wide [http.Transport].
type CoreTransport struct {
	Base http.RoundTripper // nil means the package-wide http.Transport
}

func (t *CoreTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return roundTripper
}

func (t *CoreTransport) RoundTrip(ctx context.Context, req *model.Request) (*model.Response, error) {
	if req.ServerName == "" {
		return nil, &model.TransportError{
			URL: requestURL(req),
			Err: fmt.Errorf("%w: no target host", model.ErrMalformedURL),
		}
	}
	u := req.TargetURL()
	target := u.String()

	method := req.RequestMethod
	if method == "" {
		method = "GET"
	}
	body, err := bodyReader(req.Body)
	if err != nil {
		return nil, &model.TransportError{URL: target, Err: err}
	}
	hr, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &model.TransportError{URL: target, Err: err}
	}
	if h := req.Header.Clone(); h != nil {
		hr.Header = h
	}
	// user headers take precedence over the synthesized ones,
	// same as the Host header below
	if req.ContentType != "" && hr.Header.Get("Content-Type") == "" {
		ct := req.ContentType
		if req.CharacterEncoding != "" {
			ct += "; charset=" + req.CharacterEncoding
		}
		hr.Header.Set("Content-Type", ct)
	}
	if host := hr.Header.Get("Host"); host != "" {
		hr.Host = host
		hr.Header.Del("Host")
	}

	resp, err := t.base().RoundTrip(hr)
	if err != nil {
		return nil, &model.TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{URL: target, Err: err}
	}
	out := &model.Response{Status: resp.StatusCode, Header: resp.Header}
	if len(b) > 0 {
		out.Body = b
	}
	return out, nil
}

func bodyReader(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return bytes.NewReader([]byte(b)), nil
	default:
		return nil, fmt.Errorf("unsupported body type: %T", body)
	}
}
