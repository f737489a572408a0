// Package echo serves pagemeta.MetadataService over HTTP using
// github.com/labstack/echo/v4.
package echo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagemeta"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server shuts down.
const ShutdownTimeout = 5 * time.Second

// Server is the HTTP server exposing metadata lookups.
type Server struct {
	ln     net.Listener
	server *http.Server
	echo   *echo.Echo

	done     chan struct{}
	serveErr error

	// Bind address for the server's listener, e.g. ":3000".
	Addr string

	// Listener, when set, is served instead of listening on Addr.
	Listener net.Listener

	// Logger receives one entry per request. Defaults to slog.Default().
	Logger *slog.Logger

	// Services used by the HTTP routes.
	MetadataService pagemeta.MetadataService
}

// NewServer returns a new instance of Server with its routes and
// middleware registered.
func NewServer() *Server {
	s := &Server{
		echo:   echo.New(),
		Logger: slog.Default(),
	}
	s.server = &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: 10 * time.Second,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.Logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.Logger.ErrorContext(c.Request().Context(), "panic recovered",
				"err", err,
				"stack", string(stack),
			)
			return err
		},
	}))

	e.GET("/api/website-data", s.handleWebsiteData)
	e.GET("/healthz", s.handleHealth)

	return s
}

// ServeHTTP lets the server be used directly as an http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Open begins listening on the bind address and serves in the background.
// Use Wait to learn when serving stops.
func (s *Server) Open() (err error) {
	if s.MetadataService == nil {
		return fmt.Errorf("metadata service required")
	}
	if s.Listener != nil {
		s.ln = s.Listener
	} else if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.serveErr = err
		}
	}()

	return nil
}

// Wait blocks until the server stops serving. It returns nil after Close
// and the serve error if the listener failed.
func (s *Server) Wait() error {
	if s.done == nil {
		return nil
	}
	<-s.done
	return s.serveErr
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the TCP port the server is listening on, or zero when the
// server is not open.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the base URL of the running server. Unspecified hosts are
// reported as localhost.
func (s *Server) URL() string {
	host, _, _ := net.SplitHostPort(s.Addr)
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(s.Port())))
}
