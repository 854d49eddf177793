package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStdio(t *testing.T, srv *Server, input string) []map[string]any {
	t.Helper()
	var out strings.Builder
	require.NoError(t, RunStdio(context.Background(), srv, strings.NewReader(input), &out, nil))

	var responses []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		var resp map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestRunStdioOneResponsePerLine(t *testing.T) {
	srv := newTestServer(t, newStubTool("get_recipe"))

	input := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_recipe"}}` + "\n"

	responses := runStdio(t, srv, input)
	require.Len(t, responses, 2)
	assert.Equal(t, float64(1), responses[0]["id"])
	assert.Equal(t, float64(2), responses[1]["id"])
}

func TestRunStdioSkipsNotificationsAndBlankLines(t *testing.T) {
	srv := newTestServer(t)

	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n\n" +
		`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	responses := runStdio(t, srv, input)
	require.Len(t, responses, 1)
	assert.Equal(t, float64(1), responses[0]["id"])
}

func TestRunStdioInvalidJSONGetsParseError(t *testing.T) {
	srv := newTestServer(t)

	responses := runStdio(t, srv, "{not json}\n")
	require.Len(t, responses, 1)

	errObj, ok := responses[0]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(-32700), errObj["code"])
}

func TestRunStdioToolFailureStaysInResult(t *testing.T) {
	srv := newTestServer(t, newStubTool("get_recipe"))

	input := `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"delete_universe"}}` + "\n"

	responses := runStdio(t, srv, input)
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0]["error"])

	result, ok := responses[0]["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, result["isError"])
}
