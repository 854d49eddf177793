package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mealie-mcp/mealie-mcp-server/internal/mcp"
	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
)

// newHarness spins up a fake Mealie backend and the full tool catalogue wired
// through a dispatcher, so tests exercise the same path real calls take:
// lookup, validation, invocation, and output shaping.
func newHarness(t *testing.T, handler http.Handler) *mcp.Dispatcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := mealie.NewClient(mealie.Credentials{BaseURL: server.URL, APIToken: "test-token"}, 5*time.Second, nil)
	tb, err := mcp.NewToolbox(All(client)...)
	require.NoError(t, err)
	return mcp.NewDispatcher(tb, nil, 0)
}

func dispatch(t *testing.T, d *mcp.Dispatcher, tool string, args map[string]any) mcp.Result {
	t.Helper()
	return d.Dispatch(context.Background(), mcp.Request{Tool: tool, Args: args})
}

func requireSuccess(t *testing.T, result mcp.Result) map[string]any {
	t.Helper()
	if result.Failed() {
		t.Fatalf("tool call failed: %v", result.Err)
	}
	return result.Payload
}
