package internal

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/midware/go-fetch/internal/model"
)

// mediaTypeValue expands a bare tag like "json" to "application/json".
// Anything already containing a slash is a full media type and passes
// through verbatim.
func mediaTypeValue(v string) string {
	if strings.Contains(v, "/") {
		return v
	}
	return "application/" + v
}

// ContentType expands a short ContentType tag in place. The header itself is
// emitted at the transport, where the negotiated character encoding is known.
func ContentType() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if req.ContentType == "" {
				return next(ctx, req)
			}
			req = req.Clone()
			req.ContentType = mediaTypeValue(req.ContentType)
			return next(ctx, req)
		}
	}
}

// Accept turns the Accept field into the Accept header.
func Accept() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if req.Accept == "" {
				return next(ctx, req)
			}
			req = req.Clone()
			req.Header.Set("Accept", mediaTypeValue(req.Accept))
			req.Accept = ""
			return next(ctx, req)
		}
	}
}

// AcceptEncoding turns the AcceptEncoding list into the Accept-Encoding
// header, entries joined with ", ".
func AcceptEncoding() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if len(req.AcceptEncoding) == 0 {
				return next(ctx, req)
			}
			req = req.Clone()
			req.Header.Set("Accept-Encoding", strings.Join(req.AcceptEncoding, ", "))
			req.AcceptEncoding = nil
			return next(ctx, req)
		}
	}
}

// BasicAuthValue returns the Authorization header value for the given
// credentials.
func BasicAuthValue(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

// BasicAuth turns the BasicAuth credentials into the Authorization header.
func BasicAuth() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if req.BasicAuth == nil {
				return next(ctx, req)
			}
			req = req.Clone()
			req.Header.Set("Authorization", BasicAuthValue(req.BasicAuth.User, req.BasicAuth.Password))
			req.BasicAuth = nil
			return next(ctx, req)
		}
	}
}
