package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemeta"
	main "github.com/fwojciec/pagemeta/cmd/pagemeta"
	"github.com/fwojciec/pagemeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"serve", "lookup"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "--parser")
	assert.Contains(t, helpOutput, "--timeout")
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help returns nil", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("rejects unknown parser", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(),
			[]string{"--parser", "regex", "lookup", "https://example.com"},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("lookup uses injected service", func(t *testing.T) {
		t.Parallel()

		title := "Injected"
		m := main.NewMain()
		m.MetadataService = &mock.MetadataService{
			LookupMetadataFn: func(_ context.Context, websiteURL string) (*pagemeta.MetadataResponse, error) {
				return &pagemeta.MetadataResponse{
					Metadata:   pagemeta.Metadata{Title: &title},
					WebsiteURL: websiteURL,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"lookup", "https://example.com"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.JSONEq(t, `{"metadata":{"title":"Injected"},"websiteUrl":"https://example.com"}`, stdout.String())
	})

	t.Run("lookup fetches real page with cascadia parser", func(t *testing.T) {
		t.Parallel()

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<title>Example</title><meta property="og:image" content="/og.png">`))
		}))
		defer upstream.Close()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(),
			[]string{"--parser", "cascadia", "--timeout", "2s", "lookup", upstream.URL},
			stdout, stderr)

		require.NoError(t, err)
		var resp pagemeta.MetadataResponse
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
		require.NotNil(t, resp.Metadata.Title)
		assert.Equal(t, "Example", *resp.Metadata.Title)
		require.NotNil(t, resp.Metadata.OGImage)
		assert.Equal(t, "/og.png", *resp.Metadata.OGImage)
		assert.Nil(t, resp.Metadata.Description)
		assert.Contains(t, stderr.String(), "metadata lookup")
	})
}

func TestLookupCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints error response on failure", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metadata: &mock.MetadataService{
				LookupMetadataFn: func(context.Context, string) (*pagemeta.MetadataResponse, error) {
					return nil, pagemeta.Errorf(pagemeta.EINVALID, "websiteUrl must be a valid URL")
				},
			},
		}

		cmd := &main.LookupCmd{URL: "not-a-url"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
		assert.JSONEq(t, `{"error":"Invalid website URL","details":"websiteUrl must be a valid URL"}`, stdout.String())
	})
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shuts down when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      ctx,
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metadata: &mock.MetadataService{},
		}

		cmd := &main.ServeCmd{Addr: "127.0.0.1:0"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Listening on http://127.0.0.1:")
	})

	t.Run("returns error when serving fails", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		t.Cleanup(func() { _ = ln.Close() })

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metadata: &mock.MetadataService{},
			Listener: &brokenListener{Listener: ln},
		}

		done := make(chan error, 1)
		go func() { done <- (&main.ServeCmd{}).Run(deps) }()

		select {
		case err := <-done:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "server stopped")
			assert.Contains(t, err.Error(), "listener broke")
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after listener failure")
		}
	})

	t.Run("fails on invalid address", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metadata: &mock.MetadataService{},
		}

		cmd := &main.ServeCmd{Addr: "not-an-address"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to start server")
	})
}

// brokenListener is a net.Listener whose Accept always fails.
type brokenListener struct {
	net.Listener
}

func (l *brokenListener) Accept() (net.Conn, error) {
	return nil, errors.New("listener broke")
}
