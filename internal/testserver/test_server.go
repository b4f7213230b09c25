// Package testserver hosts the full MCP stack over streamable HTTP with an
// in-memory database for end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/precomm/internal/domain/activity"
	"github.com/rpggio/precomm/internal/domain/itr"
	"github.com/rpggio/precomm/internal/domain/project"
	"github.com/rpggio/precomm/internal/mcp"
	"github.com/rpggio/precomm/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Session *sdkmcp.ClientSession
}

// New starts a server whose clock reads now and connects a client to it.
func New(t *testing.T, now time.Time) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectSvc := project.NewService(sqlite.NewProjectRepository(db), nil)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), sqlite.NewSearchRepository(db), nil)
	itrSvc := itr.NewService(sqlite.NewITRRepository(db), nil)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:   projectSvc,
			Activities: activitySvc,
			ITRs:       itrSvc,
		},
		Now: func() time.Time { return now },
	})
	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server { return server }, nil)
	httpServer := httptest.NewServer(handler)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{Endpoint: httpServer.URL}, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		httpServer.Close()
		_ = db.Close()
	})

	return &TestServer{Server: httpServer, DB: db, Session: session}
}

// Call invokes a tool, fails the test on a tool error, and decodes the JSON
// text result into out when out is non-nil.
func (ts *TestServer) Call(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	res, text := ts.call(t, name, args)
	require.False(t, res.IsError, "%s failed: %s", name, text)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text), out))
	}
}

// CallError invokes a tool that is expected to fail and returns the error code.
func (ts *TestServer) CallError(t *testing.T, name string, args map[string]any) string {
	t.Helper()
	res, text := ts.call(t, name, args)
	require.True(t, res.IsError, "%s unexpectedly succeeded: %s", name, text)
	var apiErr mcp.APIError
	require.NoError(t, json.Unmarshal([]byte(text), &apiErr))
	return apiErr.Code
}

func (ts *TestServer) call(t *testing.T, name string, args map[string]any) (*sdkmcp.CallToolResult, string) {
	t.Helper()
	res, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return res, text.Text
}
