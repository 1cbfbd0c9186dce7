package internal

import (
	"context"
	"strings"

	"github.com/midware/go-fetch/internal/model"
)

// ResolveURL expands the URL field into the canonical target fields,
// overwriting whatever they held. Requests without a URL pass through
// untouched.
func ResolveURL() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if req.URL == "" {
				return next(ctx, req)
			}
			parts, err := model.SplitURL(req.URL)
			if err != nil {
				return nil, &model.TransportError{URL: req.URL, Err: err}
			}
			req = req.Clone()
			req.Scheme = parts.Scheme
			req.ServerName = parts.Host
			req.ServerPort = parts.Port
			req.URI = parts.Path
			req.QueryString = parts.Query
			req.URL = ""
			return next(ctx, req)
		}
	}
}

// ResolveMethod canonicalizes the Method field into RequestMethod.
func ResolveMethod() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if req.Method == "" {
				return next(ctx, req)
			}
			req = req.Clone()
			req.RequestMethod = strings.ToUpper(req.Method)
			req.Method = ""
			return next(ctx, req)
		}
	}
}
