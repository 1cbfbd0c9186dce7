package model_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/midware/go-fetch/internal/model"
)

func TestRequestClone(t *testing.T) {
	base := &model.Request{
		URL:            "http://example.com/",
		QueryParams:    model.Params{{Key: "a", Value: "1"}},
		AcceptEncoding: []string{"gzip"},
		BasicAuth:      &model.Credentials{User: "bob", Password: "secret"},
		Header:         http.Header{"X-Token": {"abc"}},
	}
	clone := base.Clone()

	clone.Header.Set("X-Token", "changed")
	clone.Header.Set("X-New", "1")
	clone.QueryParams[0] = model.Param{Key: "b", Value: "2"}
	clone.AcceptEncoding[0] = "deflate"
	clone.BasicAuth.User = "eve"

	if got := base.Header.Get("X-Token"); got != "abc" {
		t.Errorf("base header changed: %q", got)
	}
	if base.Header.Get("X-New") != "" {
		t.Error("base header gained a key")
	}
	if base.QueryParams[0].Key != "a" {
		t.Error("base params changed")
	}
	if base.AcceptEncoding[0] != "gzip" {
		t.Error("base accept-encoding changed")
	}
	if base.BasicAuth.User != "bob" {
		t.Error("base credentials changed")
	}
}

func TestRequestCloneNil(t *testing.T) {
	var req *model.Request
	clone := req.Clone()
	if clone == nil {
		t.Fatal("clone of nil is nil")
	}
	// must be usable by header-setting layers right away
	clone.Header.Set("Accept", "application/json")
}

func TestResponseBody(t *testing.T) {
	cases := map[string]struct {
		body  any
		bytes []byte
		text  string
	}{
		"Absent": {body: nil, bytes: nil, text: ""},
		"Bytes":  {body: []byte("hi"), bytes: []byte("hi"), text: "hi"},
		"Text":   {body: "hi", bytes: []byte("hi"), text: "hi"},
	}
	for name, cas := range cases {
		tCase := cas
		t.Run(name, func(t *testing.T) {
			resp := &model.Response{Body: tCase.body}
			if !bytes.Equal(resp.Bytes(), tCase.bytes) {
				t.Errorf("Bytes() = %q", resp.Bytes())
			}
			if resp.Text() != tCase.text {
				t.Errorf("Text() = %q", resp.Text())
			}
		})
	}
}
