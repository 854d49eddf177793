package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// stdio frames are single-line JSON-RPC messages; generous buffer for large
// tool payloads such as base64 images.
const maxStdioLine = 10 * 1024 * 1024

// RunStdio serves MCP over newline-delimited JSON-RPC, one message per line.
// Notifications (no ID, notifications/* method) are consumed without a
// response, per MCP framing. Returns when the input stream closes.
func RunStdio(ctx context.Context, server *Server, in io.Reader, out io.Writer, log *logrus.Entry) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxStdioLine)
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	if log != nil {
		log.Info("stdio MCP server ready")
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req protocol.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(protocol.Response{JSONRPC: "2.0", ID: "0", Error: &protocol.ResponseError{Code: -32700, Message: "invalid JSON"}}); encErr != nil {
				return encErr
			}
			continue
		}
		if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
			continue
		}

		resp, err := server.Handle(ctx, req)
		if err != nil {
			resp = WriteError(req.ID, -32603, "internal error", err)
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}
