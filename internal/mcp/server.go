package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
	"github.com/mealie-mcp/mealie-mcp-server/internal/version"
)

const protocolVersion = "2024-11-05"

// Server handles MCP JSON-RPC requests against a dispatcher. JSON-RPC errors
// are reserved for malformed protocol traffic; tool-level failures travel as
// tool results with isError set, so the caller always gets a typed failure.
type Server struct {
	toolbox  *Toolbox
	dispatch *Dispatcher
}

// NewServer wires a toolbox and its dispatcher into an MCP server.
func NewServer(tb *Toolbox, d *Dispatcher) *Server {
	return &Server{toolbox: tb, dispatch: d}
}

// Handle routes a single request.
func (s *Server) Handle(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	if err := validateJSONRPC(req); err != nil {
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: err}, nil
	}

	switch req.Method {
	case "initialize":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]string{
				"name":    "mealie-mcp-server",
				"version": version.Get().Version,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		}}, nil
	case "ping":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: map[string]any{}}, nil
	case "tools/list":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: protocol.ListResult{Tools: s.toolbox.Describe()}}, nil
	case "tools/call":
		var params protocol.CallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: &protocol.ResponseError{Code: -32602, Message: "invalid params"}}, nil
		}
		if params.Name == "" {
			return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: &protocol.ResponseError{Code: -32602, Message: "tool name required"}}, nil
		}
		args := map[string]any{}
		if len(params.Args) > 0 {
			if err := json.Unmarshal(params.Args, &args); err != nil {
				return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: &protocol.ResponseError{Code: -32602, Message: "arguments must be an object"}}, nil
			}
		}
		result := s.dispatch.Dispatch(ctx, Request{Tool: params.Name, Args: args})
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: encodeResult(result)}, nil
	default:
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: &protocol.ResponseError{Code: -32601, Message: "method not found"}}, nil
	}
}

// WriteError builds a response with an error and wraps encode issues.
func WriteError(id any, code int, message string, err error) protocol.Response {
	detail := message
	if err != nil {
		detail = fmt.Sprintf("%s: %v", message, err)
	}
	return protocol.Response{JSONRPC: "2.0", ID: normalizeID(id), Error: &protocol.ResponseError{Code: code, Message: detail}}
}

func encodeResult(result Result) protocol.CallResult {
	if result.Failed() {
		return protocol.CallResult{
			IsError: true,
			Content: []protocol.ContentPart{{Type: "text", Text: prettyJSON(failureBody(result.Err))}},
		}
	}
	return protocol.CallResult{
		Content: []protocol.ContentPart{{Type: "text", Text: prettyJSON(result.Payload)}},
	}
}

func failureBody(err *fault.Error) map[string]any {
	body := map[string]any{
		"kind":    string(err.Kind),
		"message": err.Message,
	}
	if err.Field != "" {
		body["field"] = err.Field
		body["reason"] = err.Reason
	}
	if err.RetryAfter > 0 {
		body["retry_after_seconds"] = int(err.RetryAfter.Seconds())
	}
	return body
}

func prettyJSON(v any) string {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(buf)
}

func validateJSONRPC(req protocol.Request) *protocol.ResponseError {
	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		return &protocol.ResponseError{Code: -32600, Message: "invalid jsonrpc version"}
	}
	return nil
}

func normalizeID(id any) any {
	if id == nil {
		return "0"
	}
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return v
	case int, int32, int64, uint32, uint64:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
