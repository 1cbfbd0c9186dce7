package fetch

import (
	"net/http"

	"github.com/midware/go-fetch/internal"
	"github.com/midware/go-fetch/internal/model"
)

type Header = http.Header
type Client = internal.Client
type Request = model.Request
type Response = model.Response

type Param = model.Param
type Params = model.Params
type Credentials = model.Credentials
type URLParts = model.URLParts

// ByteArray asks for the response body as raw bytes, skipping text decoding.
const ByteArray = model.ByteArray

// DefaultMaxRedirects is the redirect budget of a zero-value [Client].
const DefaultMaxRedirects = internal.DefaultMaxRedirects

type Transport = internal.Transport
type TransportFunc = internal.TransportFunc
type CoreTransport = internal.CoreTransport

// SplitURL resolves an absolute http(s) URL into the fields a [Request]
// carries individually.
var SplitURL = model.SplitURL
