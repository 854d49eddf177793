package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealie-mcp/mealie-mcp-server/internal/mcp"
	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

func catalogue(t *testing.T) []mcp.Tool {
	t.Helper()
	client := mealie.NewClient(mealie.Credentials{BaseURL: "http://localhost:9", APIToken: "tok"}, time.Second, nil)
	return All(client)
}

func TestCatalogueNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tool := range catalogue(t) {
		name := tool.Descriptor().Name
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate tool name %q", name)
		seen[name] = true
	}
	assert.Len(t, seen, 22)
}

func TestCatalogueSchemasAreWellFormed(t *testing.T) {
	for _, tool := range catalogue(t) {
		desc := tool.Descriptor()
		t.Run(desc.Name, func(t *testing.T) {
			assert.NotEmpty(t, desc.Description)

			require.NotNil(t, desc.InputSchema)
			checkObjectSchema(t, desc.InputSchema)
			// inputs reject stray arguments so callers get a clear error
			// instead of silently ignored fields
			assert.Equal(t, false, desc.InputSchema.AdditionalProperties)

			require.NotNil(t, desc.OutputSchema)
			checkObjectSchema(t, desc.OutputSchema)
		})
	}
}

func checkObjectSchema(t *testing.T, schema *protocol.JSONSchema) {
	t.Helper()
	assert.Equal(t, "object", schema.Type)
	for _, name := range schema.Required {
		_, ok := schema.Properties[name]
		assert.True(t, ok, "required field %q is not declared", name)
	}
	for name, prop := range schema.Properties {
		assert.NotEmpty(t, prop.Type, "property %q has no type", name)
	}
}

// Minimal arguments synthesized from each schema must pass validation, so a
// caller following the published schema is never rejected.
func TestCatalogueSchemasAcceptTheirOwnRequiredArguments(t *testing.T) {
	for _, tool := range catalogue(t) {
		desc := tool.Descriptor()
		t.Run(desc.Name, func(t *testing.T) {
			args := map[string]any{}
			for _, name := range desc.InputSchema.Required {
				args[name] = sampleValue(desc.InputSchema.Properties[name])
			}
			assert.NoError(t, mcp.Validate(desc.InputSchema, args))
		})
	}
}

func sampleValue(schema protocol.JSONSchema) any {
	switch schema.Type {
	case "string":
		if len(schema.Enum) > 0 {
			return schema.Enum[0]
		}
		return "2026-01-01"
	case "integer", "number":
		if schema.Minimum != nil {
			return *schema.Minimum
		}
		return float64(1)
	case "boolean":
		return true
	case "array":
		if schema.Items != nil {
			return []any{sampleValue(*schema.Items)}
		}
		return []any{}
	case "object":
		obj := map[string]any{}
		for _, name := range schema.Required {
			obj[name] = sampleValue(schema.Properties[name])
		}
		return obj
	default:
		return nil
	}
}
