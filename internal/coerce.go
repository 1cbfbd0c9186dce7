package internal

import (
	"context"

	"github.com/midware/go-fetch/internal/model"
)

// coercionModeKey carries the consumed As mode down the chain, so redirect
// following can restore it on a replayed request.
type coercionModeKey struct{}

func coercionMode(ctx context.Context) string {
	mode, _ := ctx.Value(coercionModeKey{}).(string)
	return mode
}

// InputCoercion encodes a string request body to UTF-8 bytes and records the
// encoding on the request. Byte and absent bodies pass through untouched.
func InputCoercion() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			s, ok := req.Body.(string)
			if !ok {
				return next(ctx, req)
			}
			req = req.Clone()
			req.Body = []byte(s)
			req.CharacterEncoding = "UTF-8"
			return next(ctx, req)
		}
	}
}

// OutputCoercion decodes the response body into a string using the charset
// negotiated from the Content-Type header, falling back to defaultCharset
// (empty means utf-8). Requests asking for [model.ByteArray] keep the raw
// bytes, and bodies that are absent or already decoded pass through, so a
// replayed redirect is never decoded twice.
func OutputCoercion(defaultCharset string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			as := req.As
			if as != "" {
				req = req.Clone()
				req.As = ""
			}
			resp, err := next(context.WithValue(ctx, coercionModeKey{}, as), req)
			if err != nil || as == model.ByteArray {
				return resp, err
			}
			b, ok := resp.Body.([]byte)
			if !ok {
				return resp, nil
			}
			cs := model.Charset(resp.Header.Get("Content-Type"), defaultCharset)
			text, err := model.DecodeText(b, cs)
			if err != nil {
				return nil, &model.DecodeError{Op: "charset", Err: err}
			}
			decoded := *resp
			decoded.Body = text
			return &decoded, nil
		}
	}
}
