package fetch

import (
	"context"
)

// DefaultClient serves the package-level verbs.
var DefaultClient = &Client{}

// Do sends a request through [DefaultClient]. Unlike the verbs it surfaces
// every failure as an error.
func Do(ctx context.Context, req *Request) (*Response, error) {
	return DefaultClient.Do(ctx, req)
}

// Get fetches url, with base supplying any extra request fields. Transport
// failures come back as an error-shaped response, not an error; only decode
// failures use the error return. The other verbs behave the same.
func Get(ctx context.Context, url string, base *Request) (*Response, error) {
	return DefaultClient.Get(ctx, url, base)
}

func Head(ctx context.Context, url string, base *Request) (*Response, error) {
	return DefaultClient.Head(ctx, url, base)
}

func Post(ctx context.Context, url string, base *Request) (*Response, error) {
	return DefaultClient.Post(ctx, url, base)
}

func Put(ctx context.Context, url string, base *Request) (*Response, error) {
	return DefaultClient.Put(ctx, url, base)
}

func Delete(ctx context.Context, url string, base *Request) (*Response, error) {
	return DefaultClient.Delete(ctx, url, base)
}
