// Package transport serves the MCP endpoint and rendered timelines over HTTP.
package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/precomm/internal/gantt"
)

// Server wires HTTP handlers.
type Server struct {
	source gantt.Source
	engine *gantt.Engine
	logger *slog.Logger
	now    func() time.Time
	dark   bool
}

// Options configures NewServer.
type Options struct {
	// MCP serves /mcp. Nil leaves the route unmounted.
	MCP    http.Handler
	Source gantt.Source
	Engine *gantt.Engine
	Logger *slog.Logger
	Now    func() time.Time
	// DarkMode is the default theme for SVG output.
	DarkMode bool
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	srv := &Server{
		source: opts.Source,
		engine: opts.Engine,
		logger: opts.Logger,
		now:    opts.Now,
		dark:   opts.DarkMode,
	}
	if srv.logger == nil {
		srv.logger = slog.New(slog.DiscardHandler)
	}
	if srv.engine == nil {
		srv.engine = gantt.NewEngine(srv.logger)
	}
	if srv.now == nil {
		srv.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(srv.logger))

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}
	r.Get("/health", srv.handleHealth)
	r.Route("/gantt", func(r chi.Router) {
		r.Get("/model.json", srv.handleModel)
		r.Get("/chart.svg", srv.handleSVG)
		r.Get("/chart.txt", srv.handleText)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
