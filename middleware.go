package fetch

import (
	"github.com/midware/go-fetch/internal"
)

type Handler = internal.Handler
type Middleware = internal.Middleware
type Metrics = internal.Metrics

// Compose nests middleware around a handler, first middleware outermost.
// The canonical stack a [Client] composes is exactly
//
//	Compose(transport, ResolveURL(), ResolveMethod(), ContentType(),
//		AcceptEncoding(), Accept(), BasicAuth(), QueryParams(),
//		OutputCoercion(""), InputCoercion(), Decompression(),
//		FollowRedirects(DefaultMaxRedirects))
//
// and the constructors below are exported so custom stacks can be built
// from the same parts.
var Compose = internal.Compose

var (
	ResolveURL      = internal.ResolveURL
	ResolveMethod   = internal.ResolveMethod
	ContentType     = internal.ContentType
	AcceptEncoding  = internal.AcceptEncoding
	Accept          = internal.Accept
	BasicAuth       = internal.BasicAuth
	QueryParams     = internal.QueryParams
	OutputCoercion  = internal.OutputCoercion
	InputCoercion   = internal.InputCoercion
	Decompression   = internal.Decompression
	FollowRedirects = internal.FollowRedirects
)

// Opt-in layers, composed via [Client.Use].
var (
	CheckStatus = internal.CheckStatus
	Logged      = internal.Logged
	Instrument  = internal.Instrument
	NewMetrics  = internal.NewMetrics
)

// BasicAuthValue returns the Authorization header value for a user/password
// pair, and EncodeQuery serializes ordered parameters into a query string.
// Both back their middleware counterparts.
var (
	BasicAuthValue = internal.BasicAuthValue
	EncodeQuery    = internal.EncodeQuery
)
