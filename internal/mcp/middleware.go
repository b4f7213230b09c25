package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/precomm/internal/dates"
)

type contextKey int

const todayKey contextKey = iota

// getToday returns the day pinned by todayMiddleware, or the zero time.
func getToday(ctx context.Context) time.Time {
	v, _ := ctx.Value(todayKey).(time.Time)
	return v
}

// todayMiddleware pins "today" for a request from _meta.today (YYYY-MM-DD),
// so clients can reproduce a status snapshot as of a given day.
func todayMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var raw string

			// Notifications like "initialized" can carry nil params and GetMeta
			// panics on a nil underlying value.
			if params := req.GetParams(); params != nil {
				func() {
					defer func() { recover() }()
					if meta := params.GetMeta(); meta != nil {
						raw, _ = meta["today"].(string)
					}
				}()
			}

			if day, ok := dates.Parse(raw); ok {
				ctx = context.WithValue(ctx, todayKey, day)
			}

			return next(ctx, method, req)
		}
	}
}
