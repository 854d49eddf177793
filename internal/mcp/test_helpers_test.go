package mcp

import (
	"context"
	"sync/atomic"

	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// stubTool is a scriptable tool for registry, dispatcher, and server tests.
type stubTool struct {
	desc   protocol.ToolDescriptor
	invoke func(ctx context.Context, args map[string]any) (map[string]any, error)
	calls  atomic.Int32
}

func newStubTool(name string) *stubTool {
	return &stubTool{
		desc: protocol.ToolDescriptor{
			Name:        name,
			Description: "stub tool for tests",
			InputSchema: &protocol.JSONSchema{
				Type:                 "object",
				Properties:           map[string]protocol.JSONSchema{},
				AdditionalProperties: false,
			},
		},
		invoke: func(context.Context, map[string]any) (map[string]any, error) {
			return map[string]any{"ok": true}, nil
		},
	}
}

func (t *stubTool) Descriptor() protocol.ToolDescriptor { return t.desc }

func (t *stubTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	t.calls.Add(1)
	return t.invoke(ctx, args)
}
