package internal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/midware/go-fetch/internal"
	"github.com/midware/go-fetch/internal/model"
)

func TestInputCoercion(t *testing.T) {
	var seen *model.Request
	handler := internal.InputCoercion()(capture(&seen))
	req := &model.Request{Body: "héllo"}
	if _, err := handler(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	b, ok := seen.Body.([]byte)
	if !ok {
		t.Fatalf("body is %T, want []byte", seen.Body)
	}
	if string(b) != "héllo" {
		t.Errorf("body %q", b)
	}
	if seen.CharacterEncoding != "UTF-8" {
		t.Errorf("character encoding %q", seen.CharacterEncoding)
	}
	if _, ok := req.Body.(string); !ok {
		t.Error("caller request was mutated")
	}
}

func TestInputCoercionBytesPassThrough(t *testing.T) {
	var seen *model.Request
	handler := internal.InputCoercion()(capture(&seen))
	req := &model.Request{Body: []byte{1, 2, 3}}
	if _, err := handler(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if seen != req {
		t.Error("byte body should pass through without a clone")
	}
	if seen.CharacterEncoding != "" {
		t.Errorf("character encoding %q", seen.CharacterEncoding)
	}
}

func TestOutputCoercion(t *testing.T) {
	cases := map[string]struct {
		as             string
		defaultCharset string
		contentType    string
		respBody       any
		wantBody       any
	}{
		"DecodesUTF8": {
			respBody: []byte("héllo"),
			wantBody: "héllo",
		},
		"HonorsHeaderCharset": {
			contentType: "text/plain; charset=iso-8859-1",
			respBody:    []byte{0x68, 0xe9},
			wantBody:    "hé",
		},
		"HonorsDefaultCharset": {
			defaultCharset: "iso-8859-1",
			respBody:       []byte{0x68, 0xe9},
			wantBody:       "hé",
		},
		"HeaderBeatsDefault": {
			defaultCharset: "iso-8859-1",
			contentType:    "text/plain; charset=utf-8",
			respBody:       []byte("héllo"),
			wantBody:       "héllo",
		},
		"ByteArrayKeepsRaw": {
			as:       model.ByteArray,
			respBody: []byte{0x1f, 0x8b, 0x00},
			wantBody: []byte{0x1f, 0x8b, 0x00},
		},
		"StringPassesThrough": {
			respBody: "already text",
			wantBody: "already text",
		},
		"AbsentBody": {
			respBody: nil,
			wantBody: nil,
		},
	}
	for name, cas := range cases {
		tCase := cas
		t.Run(name, func(t *testing.T) {
			var seen *model.Request
			handler := internal.OutputCoercion(tCase.defaultCharset)(func(ctx context.Context, req *model.Request) (*model.Response, error) {
				seen = req
				resp := &model.Response{Status: 200, Body: tCase.respBody}
				if tCase.contentType != "" {
					resp.Header = h("Content-Type", tCase.contentType)
				}
				return resp, nil
			})
			resp, err := handler(context.Background(), &model.Request{As: tCase.as})
			if err != nil {
				t.Fatal(err)
			}
			if seen.As != "" {
				t.Error("as field not consumed")
			}
			switch want := tCase.wantBody.(type) {
			case string:
				if got, ok := resp.Body.(string); !ok || got != want {
					t.Errorf("body %#v, want %q", resp.Body, want)
				}
			case []byte:
				if got, ok := resp.Body.([]byte); !ok || string(got) != string(want) {
					t.Errorf("body %#v, want %v", resp.Body, want)
				}
			default:
				if resp.Body != nil {
					t.Errorf("body %#v, want absent", resp.Body)
				}
			}
		})
	}
}

func TestOutputCoercionUnknownCharset(t *testing.T) {
	handler := internal.OutputCoercion("")(func(ctx context.Context, req *model.Request) (*model.Response, error) {
		return &model.Response{
			Status: 200,
			Header: h("Content-Type", "text/plain; charset=utf-9"),
			Body:   []byte("x"),
		}, nil
	})
	_, err := handler(context.Background(), &model.Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var de *model.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not a DecodeError", err)
	}
}

func TestOutputCoercionKeepsResponseIntact(t *testing.T) {
	orig := &model.Response{Status: 200, Header: h("X-K", "v"), Body: []byte("hi")}
	handler := internal.OutputCoercion("")(func(ctx context.Context, req *model.Request) (*model.Response, error) {
		return orig, nil
	})
	resp, err := handler(context.Background(), &model.Request{})
	if err != nil {
		t.Fatal(err)
	}
	if resp == orig {
		t.Error("response must be copied before decoding")
	}
	if _, ok := orig.Body.([]byte); !ok {
		t.Error("inner response body was rewritten")
	}
	if resp.Status != 200 || resp.Header.Get("X-K") != "v" {
		t.Error("status or headers lost in the copy")
	}
}
