package fetch

import (
	"github.com/midware/go-fetch/internal"
	"github.com/midware/go-fetch/internal/model"
)

type TransportError = model.TransportError
type DecodeError = model.DecodeError
type StatusError = internal.StatusError

var (
	ErrMalformedURL     = model.ErrMalformedURL
	ErrTooManyRedirects = model.ErrTooManyRedirects
)
