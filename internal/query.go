package internal

import (
	"context"
	"net/url"
	"strings"

	"github.com/midware/go-fetch/internal/model"
)

// queryEscape percent-encodes one query component. Spaces become %20, not +;
// the + form only means a space in form payloads.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// EncodeQuery serializes params as key=value pairs joined with "&", both
// components percent-encoded, in the order given.
func EncodeQuery(params model.Params) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(queryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(queryEscape(p.Value))
	}
	return b.String()
}

// QueryParams encodes the QueryParams field into the canonical QueryString,
// replacing any query the URL carried.
func QueryParams() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			if len(req.QueryParams) == 0 {
				return next(ctx, req)
			}
			req = req.Clone()
			req.QueryString = EncodeQuery(req.QueryParams)
			req.QueryParams = nil
			return next(ctx, req)
		}
	}
}
