package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/rpggio/precomm/internal/gantt"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Create(ctx context.Context, req activity.CreateRequest) (*activity.Activity, error)
	Reschedule(ctx context.Context, id string, start, end time.Time) (*activity.Activity, error)
	List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error)
	Search(ctx context.Context, query string, opts activity.SearchOptions) ([]activity.SearchResult, error)
}

// ITRService defines ITR operations needed by MCP.
type ITRService interface {
	Create(ctx context.Context, req itr.CreateRequest) (*itr.ITR, error)
	Update(ctx context.Context, req itr.UpdateRequest) (*itr.ITR, error)
	List(ctx context.Context, opts itr.ListOptions) ([]itr.ITR, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects   ProjectService
	Activities ActivityService
	ITRs       ITRService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Engine   *gantt.Engine
	Logger   *slog.Logger
	// Now supplies "today" when neither the call nor its _meta names one.
	Now func() time.Time
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "precomm",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(todayMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg))

	return server
}
