package internal

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"
	"strings"

	"github.com/midware/go-fetch/internal/model"
)

// injectedEncodingKey records whether the Accept-Encoding header on the
// in-flight request was injected here rather than set by the caller.
// Redirect following consults it to decide whether a replayed request should
// shed the header and negotiate afresh.
type injectedEncodingKey struct{}

func injectedEncoding(ctx context.Context) bool {
	injected, _ := ctx.Value(injectedEncodingKey{}).(bool)
	return injected
}

// Decompression negotiates gzip and deflate transfer and transparently
// decodes the response body. A request that already carries an explicit
// Accept-Encoding header is the caller's statement that they will deal with
// the encoding themselves; both directions then pass through untouched.
func Decompression() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if req.Header.Get("Accept-Encoding") != "" {
				return next(context.WithValue(ctx, injectedEncodingKey{}, false), req)
			}
			req = req.Clone()
			req.Header.Set("Accept-Encoding", "gzip, deflate")
			resp, err := next(context.WithValue(ctx, injectedEncodingKey{}, true), req)
			if err != nil {
				return resp, err
			}
			b, ok := resp.Body.([]byte)
			if !ok {
				return resp, nil
			}
			var decoded []byte
			switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
			case "gzip":
				decoded, err = gunzip(b)
				if err != nil {
					return nil, &model.DecodeError{Op: "gzip", Err: err}
				}
			case "deflate":
				decoded, err = inflate(b)
				if err != nil {
					return nil, &model.DecodeError{Op: "deflate", Err: err}
				}
			default:
				return resp, nil
			}
			out := *resp
			out.Body = decoded
			// these headers described the encoded body and no longer hold
			out.Header = resp.Header.Clone()
			out.Header.Del("Content-Encoding")
			out.Header.Del("Content-Length")
			return &out, nil
		}
	}
}

func gunzip(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// inflate decodes a deflate body. The header field officially means a zlib
// stream, but plenty of servers send a bare deflate stream instead, so that
// is retried before giving up.
func inflate(b []byte) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(b)); err == nil {
		defer zr.Close()
		return io.ReadAll(zr)
	}
	fr := flate.NewReader(bytes.NewReader(b))
	defer fr.Close()
	return io.ReadAll(fr)
}
