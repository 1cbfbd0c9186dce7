package internal

import (
	"context"
	"fmt"

	"github.com/midware/go-fetch/internal/model"
)

// StatusError reports a response whose status a [CheckStatus] layer refused
// to accept.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// CheckStatus fails requests answered with a 4xx or 5xx status. The core
// stack never does this on its own; compose this in, usually via Use, when
// a bad status should read as an error rather than as data. Redirect
// statuses that survive to this layer were deliberately not followed and
// pass through.
func CheckStatus() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			resp, err := next(ctx, req)
			if err != nil {
				return resp, err
			}
			if resp.Status >= 400 {
				return nil, &StatusError{Status: resp.Status, URL: requestURL(req)}
			}
			return resp, nil
		}
	}
}
