package tools

import (
	"context"

	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// parseIngredientTool runs Mealie's ingredient parser over free-form text,
// returning structured quantity/unit/food data.
type parseIngredientTool struct {
	client *mealie.Client
}

// ParseIngredient constructs the tool.
func ParseIngredient(client *mealie.Client) *parseIngredientTool {
	return &parseIngredientTool{client: client}
}

func (t *parseIngredientTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "parse_ingredient",
		Description: "Parse a free-form ingredient string (e.g. '2 cups flour') into structured data with unit and food references.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"text": {Type: "string", Description: "The ingredient text to parse"},
			},
			Required:             []string{"text"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"ingredient": {Type: "object"},
			},
			Required: []string{"ingredient"},
		},
	}
}

func (t *parseIngredientTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	parsed, err := t.client.ParseIngredient(ctx, stringArg(args, "text"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"ingredient": parsed}, nil
}

// createFoodTool registers a new food for use in structured ingredients.
type createFoodTool struct {
	client *mealie.Client
}

// CreateFood constructs the tool.
func CreateFood(client *mealie.Client) *createFoodTool {
	return &createFoodTool{client: client}
}

func (t *createFoodTool) Descriptor() protocol.ToolDescriptor {
	return namedCreateDescriptor("create_food", "Create a new food for use in structured recipe ingredients.")
}

func (t *createFoodTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	ref, err := t.client.CreateFood(ctx, stringArg(args, "name"))
	if err != nil {
		return nil, err
	}
	return namedCreatePayload(ref), nil
}

// createUnitTool registers a new measurement unit.
type createUnitTool struct {
	client *mealie.Client
}

// CreateUnit constructs the tool.
func CreateUnit(client *mealie.Client) *createUnitTool {
	return &createUnitTool{client: client}
}

func (t *createUnitTool) Descriptor() protocol.ToolDescriptor {
	return namedCreateDescriptor("create_unit", "Create a new measurement unit for use in structured recipe ingredients.")
}

func (t *createUnitTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	ref, err := t.client.CreateUnit(ctx, stringArg(args, "name"))
	if err != nil {
		return nil, err
	}
	return namedCreatePayload(ref), nil
}

func namedCreateDescriptor(name, description string) protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        name,
		Description: description,
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"name": {Type: "string"},
			},
			Required:             []string{"name"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success": {Type: "boolean"},
				"id":      {Type: "string"},
				"name":    {Type: "string"},
			},
			Required: []string{"name"},
		},
	}
}

func namedCreatePayload(ref *mealie.NamedRef) map[string]any {
	return map[string]any{
		"success": true,
		"id":      ref.ID,
		"name":    ref.Name,
	}
}
