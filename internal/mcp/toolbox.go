package mcp

import (
	"context"
	"sort"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// Tool defines the behavior of a single MCP tool. Invoke receives arguments
// that have already passed schema validation.
type Tool interface {
	Descriptor() protocol.ToolDescriptor
	Invoke(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Toolbox stores tools by name. It is populated once at startup and is
// read-only afterwards, so concurrent lookups need no locking.
type Toolbox struct {
	tools map[string]Tool
}

// NewToolbox constructs a toolbox with the provided tools. Duplicate names
// are a startup error.
func NewToolbox(tools ...Tool) (*Toolbox, error) {
	tb := &Toolbox{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if err := tb.Register(t); err != nil {
			return nil, err
		}
	}
	return tb, nil
}

// Register inserts a tool, rejecting duplicate names.
func (tb *Toolbox) Register(t Tool) error {
	name := t.Descriptor().Name
	if _, exists := tb.tools[name]; exists {
		return fault.DuplicateTool(name)
	}
	tb.tools[name] = t
	return nil
}

// Lookup returns the named tool or an unknown-tool error.
func (tb *Toolbox) Lookup(name string) (Tool, error) {
	tool, ok := tb.tools[name]
	if !ok {
		return nil, fault.UnknownTool(name)
	}
	return tool, nil
}

// Describe returns all tool descriptors, sorted by name for stable listings.
func (tb *Toolbox) Describe() []protocol.ToolDescriptor {
	list := make([]protocol.ToolDescriptor, 0, len(tb.tools))
	for _, t := range tb.tools {
		list = append(list, t.Descriptor())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
