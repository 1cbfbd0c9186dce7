package internal

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/midware/go-fetch/internal/model"
)

type Handler = func(ctx context.Context, req *model.Request) (*model.Response, error)
type Middleware func(next Handler) Handler

// DefaultMaxRedirects bounds redirect chains when the client does not set
// its own budget. The bound is deliberate: an unbounded chain only ever ends
// by exhausting the stack.
const DefaultMaxRedirects = 10

type reissueKey struct{}
type redirectDepthKey struct{}

func withReissue(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, reissueKey{}, h)
}

// reissueFrom returns the composed handler a redirect should be replayed
// through, or nil when the request did not enter through [Compose].
func reissueFrom(ctx context.Context) Handler {
	h, _ := ctx.Value(reissueKey{}).(Handler)
	return h
}

func withRedirectDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, redirectDepthKey{}, depth)
}

func redirectDepth(ctx context.Context) int {
	d, _ := ctx.Value(redirectDepthKey{}).(int)
	return d
}

// Compose nests mws around h, first middleware outermost, and returns the
// combined handler. The returned handler registers itself on the context so
// that layers deeper in the chain, redirect following in particular, can
// replay a request through the whole chain instead of just their own tail.
func Compose(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	composed := h
	var entry Handler
	entry = func(ctx context.Context, req *model.Request) (*model.Response, error) {
		return composed(withReissue(ctx, entry), req)
	}
	return entry
}

// Client runs requests through the canonical middleware stack. The zero
// value is usable: it sends through [DefaultTransport], follows up to
// [DefaultMaxRedirects] redirects and decodes text as utf-8.
//
// The stack is composed once, on first use; configure the client and Use
// extra middleware before sending anything through it. A composed client is
// safe for concurrent use.
type Client struct {
	// Transport carries canonical requests to the server. Nil means
	// [DefaultTransport].
	Transport Transport

	// MaxRedirects is the redirect budget per request. Zero means
	// [DefaultMaxRedirects]; negative means no bound at all.
	MaxRedirects int

	// DefaultCharset is assumed for response bodies whose Content-Type
	// names no charset. Empty means utf-8.
	DefaultCharset string

	// Logger, when set, logs one debug line per transport round trip,
	// redirect hops included.
	Logger *zap.Logger

	middlewares []Middleware
	once        sync.Once
	handler     Handler
}

// Use appends mws to the caller middleware chain. Caller middleware wraps
// the canonical stack, first Use'd outermost, and sees each logical request
// exactly once: a followed redirect replays through the canonical stack, not
// through the caller's own layers. Use must not be called once requests are
// flowing.
func (c *Client) Use(mws ...Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

func (c *Client) compose() Handler {
	c.once.Do(func() {
		max := c.MaxRedirects
		if max == 0 {
			max = DefaultMaxRedirects
		}
		transport := c.Transport
		if transport == nil {
			transport = DefaultTransport
		}
		canonical := []Middleware{
			ResolveURL(),
			ResolveMethod(),
			ContentType(),
			AcceptEncoding(),
			Accept(),
			BasicAuth(),
			QueryParams(),
			OutputCoercion(c.DefaultCharset),
			InputCoercion(),
			Decompression(),
			FollowRedirects(max),
		}
		if c.Logger != nil {
			canonical = append(canonical, Logged(c.Logger))
		}
		h := Compose(func(ctx context.Context, req *model.Request) (*model.Response, error) {
			return transport.RoundTrip(ctx, req)
		}, canonical...)
		// caller middleware stays outside the replay entry point
		for i := len(c.middlewares) - 1; i >= 0; i-- {
			h = c.middlewares[i](h)
		}
		c.handler = h
	})
	return c.handler
}

// Do sends req through the composed stack and returns the response, or an
// error of either class: transport errors and decode errors both surface
// here. The verb methods are the forgiving boundary; Do is not.
func (c *Client) Do(ctx context.Context, req *model.Request) (*model.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.compose()(ctx, req)
}

func (c *Client) Get(ctx context.Context, url string, base *model.Request) (*model.Response, error) {
	return c.verb(ctx, "GET", url, base)
}

func (c *Client) Head(ctx context.Context, url string, base *model.Request) (*model.Response, error) {
	return c.verb(ctx, "HEAD", url, base)
}

func (c *Client) Post(ctx context.Context, url string, base *model.Request) (*model.Response, error) {
	return c.verb(ctx, "POST", url, base)
}

func (c *Client) Put(ctx context.Context, url string, base *model.Request) (*model.Response, error) {
	return c.verb(ctx, "PUT", url, base)
}

func (c *Client) Delete(ctx context.Context, url string, base *model.Request) (*model.Response, error) {
	return c.verb(ctx, "DELETE", url, base)
}

// verb merges method and url into a copy of base and sends it. Transport
// failures come back as an error-shaped response rather than an error, so
// plain fetches need no error handling; decode failures still return an
// error, those are bugs or bad data, not network weather.
func (c *Client) verb(ctx context.Context, method, url string, base *model.Request) (*model.Response, error) {
	req := base.Clone()
	req.Method = method
	req.URL = url
	resp, err := c.Do(ctx, req)
	if err == nil {
		return resp, nil
	}
	var de *model.DecodeError
	if errors.As(err, &de) {
		return nil, err
	}
	return errorResponse(url, err), nil
}

// errorResponse converts a mid-flight failure into the response shape, with
// the attempted URL and failure in the body.
func errorResponse(url string, err error) *model.Response {
	var te *model.TransportError
	var se *StatusError
	if !errors.As(err, &te) && !errors.As(err, &se) {
		err = &model.TransportError{URL: url, Err: err}
	}
	return &model.Response{Body: err.Error(), Err: err}
}

// requestURL names the target of a request for errors and logs, whichever
// side of URL resolution the request is on.
func requestURL(req *model.Request) string {
	if req.URL != "" {
		return req.URL
	}
	return req.TargetURL().String()
}
