package main

import (
	"fmt"

	pmecho "github.com/fwojciec/pagemeta/echo"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the context is cancelled,
// then shuts the server down gracefully, or until serving fails.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := pmecho.NewServer()
	server.Addr = c.Addr
	server.Listener = deps.Listener
	server.Logger = deps.Logger
	server.MetadataService = deps.Metadata

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	deps.Logger.Info("listening", "url", server.URL())
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		if err := server.Wait(); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		deps.Logger.Info("shutting down")
		return server.Close()
	})
	return g.Wait()
}
