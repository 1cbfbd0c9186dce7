package internal_test

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/midware/go-fetch/internal"
	"github.com/midware/go-fetch/internal/model"
)

// fakeTransport plays back scripted responses in order and records every
// canonical request it was handed.
type fakeTransport struct {
	calls  []*model.Request
	script []*model.Response
}

func (f *fakeTransport) RoundTrip(ctx context.Context, req *model.Request) (*model.Response, error) {
	f.calls = append(f.calls, req)
	if len(f.script) == 0 {
		return nil, fmt.Errorf("unscripted request %d to %s", len(f.calls), req.TargetURL())
	}
	resp := f.script[0]
	f.script = f.script[1:]
	return resp, nil
}

func newTestClient(script ...*model.Response) (*internal.Client, *fakeTransport) {
	ft := &fakeTransport{script: script}
	return &internal.Client{Transport: ft}, ft
}

// capture returns a handler that records the request it receives.
func capture(seen **model.Request) internal.Handler {
	return func(ctx context.Context, req *model.Request) (*model.Response, error) {
		*seen = req
		return &model.Response{Status: 200}, nil
	}
}

// h builds a header from name/value pairs.
func h(kv ...string) http.Header {
	hdr := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		hdr.Add(kv[i], kv[i+1])
	}
	return hdr
}

func gzipBody(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	io.WriteString(zw, s)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func zlibBody(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	io.WriteString(zw, s)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func flateBody(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(fw, s)
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
