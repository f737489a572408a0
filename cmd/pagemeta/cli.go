package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/fwojciec/pagemeta"
	pmhttp "github.com/fwojciec/pagemeta/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Metadata pagemeta.MetadataService

	// Listener is an already-open listener for "serve" to use instead of
	// its address flag.
	Listener net.Listener
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch FetchFlags `embed:""`

	LogLevel  string `default:"info" enum:"debug,info,warn,error" env:"PAGEMETA_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	LogFormat string `default:"text" enum:"text,json" env:"PAGEMETA_LOG_FORMAT" help:"Log format (text, json)"`

	Serve  ServeCmd  `cmd:"" help:"Serve the metadata endpoint over HTTP"`
	Lookup LookupCmd `cmd:"" help:"Look up metadata for a single URL and print it as JSON"`
}

// FetchFlags configure how pages are fetched and parsed.
type FetchFlags struct {
	Timeout     time.Duration `short:"t" default:"0s" env:"PAGEMETA_TIMEOUT" help:"Fetch timeout per page (0 disables)"`
	MaxBodySize int64         `default:"0" env:"PAGEMETA_MAX_BODY_SIZE" help:"Maximum response body size in bytes (0 disables)"`
	UserAgent   string        `env:"PAGEMETA_USER_AGENT" help:"User-Agent header sent to remote sites"`
	Parser      string        `default:"goquery" enum:"goquery,cascadia" env:"PAGEMETA_PARSER" help:"HTML parser implementation (goquery, cascadia)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `short:"a" default:":3000" env:"PAGEMETA_ADDR" help:"Listen address"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	URL string `arg:"" help:"Web page URL"`
}

// userAgent returns the configured User-Agent or the fetcher default.
func (f *FetchFlags) userAgent() string {
	if f.UserAgent == "" {
		return pmhttp.DefaultUserAgent
	}
	return f.UserAgent
}
