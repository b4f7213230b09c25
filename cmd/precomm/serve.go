package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/precomm/internal/gantt"
	"github.com/rpggio/precomm/internal/mcp"
	"github.com/rpggio/precomm/internal/transport"
	"github.com/spf13/cobra"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		mode string
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio or HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve the transport before building the logger: stdio must keep
			// stdout clean for JSON-RPC.
			transportMode := os.Getenv("PRECOMM_TRANSPORT")
			if mode != "" {
				transportMode = mode
			}
			logWriter := io.Writer(os.Stdout)
			if transportMode == "" || transportMode == "stdio" {
				logWriter = os.Stderr
			}

			a, err := openApp(flags, logWriter)
			if err != nil {
				return err
			}
			defer a.Close()

			if mode != "" {
				a.cfg.Transport.Mode = mode
			}
			if host != "" {
				a.cfg.Server.Host = host
			}
			if port != 0 {
				a.cfg.Server.Port = port
			}

			engine := gantt.NewEngine(a.logger)
			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Projects:   a.projects,
					Activities: a.activities,
					ITRs:       a.itrs,
				},
				Engine: engine,
				Logger: a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			switch a.cfg.Transport.Mode {
			case "http":
				return runHTTPMode(ctx, a, server, engine)
			case "stdio":
				return runStdioMode(ctx, a.logger, server)
			default:
				return fmt.Errorf("invalid transport mode %q: want stdio or http", a.cfg.Transport.Mode)
			}
		},
	}
	cmd.Flags().StringVar(&mode, "transport", "", "stdio or http (default from config)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP listen host")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP listen port")
	return cmd
}

func runStdioMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, a *app, server *sdkmcp.Server, engine *gantt.Engine) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := transport.NewServer(transport.Options{
		MCP:      mcpHandler,
		Source:   a.source,
		Engine:   engine,
		Logger:   a.logger,
		DarkMode: a.cfg.Gantt.DarkMode,
	})

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
