package internal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/midware/go-fetch/internal/model"
)

// FollowRedirects re-issues GET and HEAD requests answered with 301, 302 or
// 307 against the location the response names, and turns a 303 answer to a
// HEAD into a GET. Every other status and method passes through untouched;
// deciding whether a terminal 4xx or 5xx is an error is a policy for an
// outer layer, see [CheckStatus].
//
// A replay goes through the whole composed chain, so each hop negotiates
// compression and coerces its body as if it were a fresh request. max bounds
// the chain; exceeding it fails the request, and a negative max means no
// bound at all.
func FollowRedirects(max int) Middleware {
	return func(next Handler) Handler {
		var handler Handler
		handler = func(ctx context.Context, req *model.Request) (*model.Response, error) {
			resp, err := next(ctx, req)
			if err != nil {
				return resp, err
			}
			switch resp.Status {
			case 301, 302, 307:
				if req.RequestMethod == "GET" || req.RequestMethod == "HEAD" {
					return follow(ctx, handler, req, resp, req.RequestMethod, max)
				}
			case 303:
				if req.RequestMethod == "HEAD" {
					return follow(ctx, handler, req, resp, "GET", max)
				}
			}
			return resp, nil
		}
		return handler
	}
}

// follow replays req, method swapped as the status demands, against the
// location header of resp, resolved relative to the request's own target.
func follow(ctx context.Context, self Handler, req *model.Request, resp *model.Response, method string, max int) (*model.Response, error) {
	origin := req.TargetURL()
	loc := resp.Header.Get("Location")
	if loc == "" {
		return nil, &model.TransportError{
			URL: origin.String(),
			Err: fmt.Errorf("%w: %d response without location", model.ErrMalformedURL, resp.Status),
		}
	}
	ref, err := url.Parse(loc)
	if err != nil {
		return nil, &model.TransportError{
			URL: origin.String(),
			Err: fmt.Errorf("%w: location %q: %v", model.ErrMalformedURL, loc, err),
		}
	}
	parts, err := model.SplitURL(origin.ResolveReference(ref).String())
	if err != nil {
		return nil, &model.TransportError{URL: origin.String(), Err: err}
	}

	depth := redirectDepth(ctx)
	target := req.Clone()
	target.Scheme = parts.Scheme
	target.ServerName = parts.Host
	target.ServerPort = parts.Port
	target.URI = parts.Path
	target.QueryString = parts.Query
	target.RequestMethod = method
	if max >= 0 && depth >= max {
		return nil, &model.TransportError{URL: target.TargetURL().String(), Err: model.ErrTooManyRedirects}
	}
	if injectedEncoding(ctx) {
		target.Header.Del("Accept-Encoding")
	}
	ctx = withRedirectDepth(ctx, depth+1)
	if reissue := reissueFrom(ctx); reissue != nil {
		target.As = coercionMode(ctx)
		return reissue(ctx, target)
	}
	return self(ctx, target)
}
