package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	fetch "github.com/midware/go-fetch"
)

var version = "dev"

var (
	appName  = "fetch"
	appUsage = "transfer a URL, curl style, through the go-fetch middleware stack"

	app = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		ArgsUsage:       "URL",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "request",
				Usage:   "request method to use",
				Aliases: []string{"X"},
				Value:   "GET",
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Usage:   "pass a custom header, as 'Name: value'",
				Aliases: []string{"H"},
			},
			&cli.StringFlag{
				Name:    "data",
				Usage:   "send a request body",
				Aliases: []string{"d"},
			},
			&cli.StringSliceFlag{
				Name:    "query",
				Usage:   "append a query parameter, as key=value, order preserved",
				Aliases: []string{"q"},
			},
			&cli.StringFlag{
				Name:    "user",
				Usage:   "basic auth credentials, as user:password",
				Aliases: []string{"u"},
			},
			&cli.StringFlag{
				Name:  "accept",
				Usage: "media type for the Accept header, 'json' style tags allowed",
			},
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "media type of the request body, 'json' style tags allowed",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "write the body exactly as received, no text decoding",
			},
			&cli.BoolFlag{
				Name:    "include",
				Usage:   "include status and headers in the output",
				Aliases: []string{"i"},
			},
			&cli.BoolFlag{
				Name:    "fail",
				Usage:   "fail with no output on 4xx and 5xx statuses",
				Aliases: []string{"f"},
			},
			&cli.StringFlag{
				Name:  "charset",
				Usage: "charset assumed when the response names none",
			},
			&cli.IntFlag{
				Name:  "max-redirects",
				Usage: "redirects to follow before giving up, -1 for no bound",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "bound on the whole transfer, redirects included",
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "write the response to a file instead of stdout",
				Aliases: []string{"o"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log every round trip to stderr",
				Aliases: []string{"v"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "set the log level. Options: debug, info, warn, error.",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "set the log format. Options: production, development.",
			},
		},
		Action: run,
	}
)

func main() {
	app.Version = version

	err := app.Run(os.Args)
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err.Error())
	os.Exit(1)
}

func run(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		cli.ShowAppHelp(ctx)
		return fmt.Errorf("expected exactly one URL, got %d arguments", ctx.NArg())
	}
	url := ctx.Args().First()

	cfg, err := parseConfig(ctx)
	if err != nil {
		return err
	}
	log, err := createLogger(ctx, cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := &fetch.Client{
		MaxRedirects:   cfg.MaxRedirects,
		DefaultCharset: cfg.Charset,
		Logger:         log,
	}
	if ctx.Bool("fail") {
		client.Use(fetch.CheckStatus())
	}

	base, err := buildRequest(ctx)
	if err != nil {
		return err
	}

	cctx := ctx.Context
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(cctx, cfg.Timeout)
		defer cancel()
	}

	resp, err := execute(cctx, client, strings.ToUpper(ctx.String("request")), url, base)
	if err != nil {
		return err
	}
	if resp.Err != nil {
		return resp.Err
	}
	return write(ctx, cfg, resp)
}

// execute goes through the verb facade for the methods it covers, so
// transport failures surface as error responses; other methods go through
// Do and fail hard.
func execute(ctx context.Context, c *fetch.Client, method, url string, base *fetch.Request) (*fetch.Response, error) {
	switch method {
	case "GET":
		return c.Get(ctx, url, base)
	case "HEAD":
		return c.Head(ctx, url, base)
	case "POST":
		return c.Post(ctx, url, base)
	case "PUT":
		return c.Put(ctx, url, base)
	case "DELETE":
		return c.Delete(ctx, url, base)
	default:
		req := base.Clone()
		req.Method = method
		req.URL = url
		return c.Do(ctx, req)
	}
}

func buildRequest(ctx *cli.Context) (*fetch.Request, error) {
	req := &fetch.Request{
		Accept:      ctx.String("accept"),
		ContentType: ctx.String("content-type"),
		Header:      fetch.Header{},
	}
	for _, h := range ctx.StringSlice("header") {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("header %q is not of the form 'Name: value'", h)
		}
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	for _, q := range ctx.StringSlice("query") {
		key, value, _ := strings.Cut(q, "=")
		req.QueryParams = append(req.QueryParams, fetch.Param{Key: key, Value: value})
	}
	if user := ctx.String("user"); user != "" {
		name, password, _ := strings.Cut(user, ":")
		req.BasicAuth = &fetch.Credentials{User: name, Password: password}
	}
	if data := ctx.String("data"); data != "" {
		req.Body = data
	}
	if ctx.Bool("raw") {
		req.As = fetch.ByteArray
	}
	return req, nil
}

func write(ctx *cli.Context, cfg config, resp *fetch.Response) error {
	var out io.Writer = os.Stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if ctx.Bool("include") {
		fmt.Fprintf(out, "%d %s\n", resp.Status, http.StatusText(resp.Status))
		names := make([]string, 0, len(resp.Header))
		for name := range resp.Header {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, value := range resp.Header[name] {
				fmt.Fprintf(out, "%s: %s\n", name, value)
			}
		}
		fmt.Fprintln(out)
	}
	_, err := out.Write(resp.Bytes())
	return err
}

func createLogger(ctx *cli.Context, cfg config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.LogFormat == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level := cfg.LogLevel
	if ctx.Bool("verbose") {
		level = "debug"
	}
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		atom = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.Level = atom

	return zcfg.Build()
}
