package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/cascadia"
	"github.com/fwojciec/pagemeta/goquery"
	pmhttp "github.com/fwojciec/pagemeta/http"
	"github.com/fwojciec/pagemeta/preview"
	pmslog "github.com/fwojciec/pagemeta/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// MetadataService replaces the HTTP-backed service when set.
	// Used for end-to-end testing.
	MetadataService pagemeta.MetadataService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemeta"),
		kong.Description("Extract link-preview metadata (title, description, og:image) from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagemeta --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.LogLevel, cli.LogFormat)

	if m.MetadataService != nil {
		deps.Metadata = m.MetadataService
	} else {
		deps.Metadata = newMetadataService(&cli.Fetch, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newMetadataService wires the fetcher and parser selected by flags into a
// logged preview.Service.
func newMetadataService(flags *FetchFlags, logger *slog.Logger) pagemeta.MetadataService {
	fetcher := pmhttp.NewFetcher(
		pmhttp.WithTimeout(flags.Timeout),
		pmhttp.WithMaxBodySize(flags.MaxBodySize),
		pmhttp.WithUserAgent(flags.userAgent()),
	)

	var parser pagemeta.DocumentParser
	switch flags.Parser {
	case "cascadia":
		parser = cascadia.NewParser()
	default:
		parser = goquery.NewParser()
	}

	svc := &preview.Service{
		Fetcher: pmslog.NewLoggingFetcher(fetcher, logger.With("component", "fetcher")),
		Parser:  parser,
	}
	return pmslog.NewLoggingMetadataService(svc, logger)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
