package internal

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/midware/go-fetch/internal/model"
)

// methodOf names the verb of a request on either side of method resolution.
func methodOf(req *model.Request) string {
	if req.RequestMethod != "" {
		return req.RequestMethod
	}
	if req.Method != "" {
		return strings.ToUpper(req.Method)
	}
	return "GET"
}

// Logged writes one debug line per round trip. Composed just outside the
// transport it sees every redirect hop individually, which is where a client
// that "hangs" usually turns out to be bouncing between two locations.
func Logged(log *zap.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			fields := []zap.Field{
				zap.String("method", methodOf(req)),
				zap.String("url", requestURL(req)),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				log.Debug("round trip failed", append(fields, zap.Error(err))...)
				return resp, err
			}
			log.Debug("round trip", append(fields, zap.Int("status", resp.Status))...)
			return resp, nil
		}
	}
}
