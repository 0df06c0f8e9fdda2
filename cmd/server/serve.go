package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganot/roadmap/internal/config"
	"github.com/ganot/roadmap/internal/mcp"
	"github.com/ganot/roadmap/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over stdio or HTTP",
		Long: `Serve MCP tools over stdio or HTTP, as selected by ROADMAP_TRANSPORT.

In HTTP mode the server exposes the streamable MCP transport at /mcp,
JSON-RPC at /rpc and a liveness probe at /health.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	rt, err := newRuntime(serveLog)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if rt.cfg.Seed.Path != "" {
		if _, err := importSeed(ctx, rt, rt.cfg.Seed.Path, mcp.DefaultTenant); err != nil {
			return err
		}
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Catalog:  rt.catalog,
			Charts:   rt.charts,
			Activity: rt.activity,
		},
		Resolver:      rt.apiKeys,
		AuthEnabled:   rt.cfg.Auth.Enabled,
		TransportMode: rt.cfg.Transport.Mode,
		Logger:        rt.logger,
	})

	if rt.cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, rt.logger, mcpServer)
	}
	return runHTTPMode(rt, mcpServer)
}

// serveLog uses stderr in stdio mode to keep stdout clean for JSON-RPC.
func serveLog(cfg config.Config) io.Writer {
	if cfg.Transport.Mode == "stdio" {
		return os.Stderr
	}
	return os.Stdout
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(rt *runtime, mcpServer *sdkmcp.Server) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	var auth func(http.Handler) http.Handler
	if rt.cfg.Auth.Enabled {
		auth = transport.AuthMiddleware(rt.apiKeys)
	}
	handler := mcp.NewHandler(rt.catalog, rt.charts, rt.activity)

	addr := fmt.Sprintf("%s:%d", rt.cfg.Server.Host, rt.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(handler, auth, mcpHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("server listening", "addr", addr, "auth", rt.cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(rt.logger, httpServer, errCh)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
