package mcp

import (
	"fmt"
	"math"
	"sort"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// Validate checks arguments against a tool's input schema and reports the
// first offending field. Ordering is deterministic: required fields in their
// declared order, then per-property checks and unknown-argument rejection in
// sorted name order.
func Validate(schema *protocol.JSONSchema, args map[string]any) error {
	if schema == nil {
		return nil
	}

	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			return fault.Validation(name, "required argument is missing")
		}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value, ok := args[name]
		if !ok {
			continue
		}
		prop := schema.Properties[name]
		if err := checkValue(name, &prop, value); err != nil {
			return err
		}
	}

	if rejectsUnknown(schema) {
		var unknown []string
		for name := range args {
			if _, ok := schema.Properties[name]; !ok {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		if len(unknown) > 0 {
			return fault.Validation(unknown[0], "unknown argument")
		}
	}

	return nil
}

func rejectsUnknown(schema *protocol.JSONSchema) bool {
	allow, ok := schema.AdditionalProperties.(bool)
	return ok && !allow
}

func checkValue(field string, prop *protocol.JSONSchema, value any) error {
	if value == nil {
		return fault.Validation(field, "must not be null")
	}

	switch prop.Type {
	case "", "object":
		if prop.Type == "object" {
			if _, ok := value.(map[string]any); !ok {
				return fault.Validation(field, "expected an object")
			}
		}
	case "string":
		s, ok := value.(string)
		if !ok {
			return fault.Validation(field, "expected a string")
		}
		if len(prop.Enum) > 0 && !containsString(prop.Enum, s) {
			return fault.Validation(field, fmt.Sprintf("must be one of %v", prop.Enum))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fault.Validation(field, "expected a boolean")
		}
	case "number":
		n, ok := value.(float64)
		if !ok {
			return fault.Validation(field, "expected a number")
		}
		if err := checkRange(field, prop, n); err != nil {
			return err
		}
	case "integer":
		n, ok := value.(float64)
		if !ok || n != math.Trunc(n) {
			return fault.Validation(field, "expected an integer")
		}
		if err := checkRange(field, prop, n); err != nil {
			return err
		}
	case "array":
		items, ok := value.([]any)
		if !ok {
			return fault.Validation(field, "expected an array")
		}
		if prop.Items != nil {
			for i, item := range items {
				if err := checkValue(fmt.Sprintf("%s[%d]", field, i), prop.Items, item); err != nil {
					return err
				}
			}
		}
	default:
		return fault.Validation(field, fmt.Sprintf("unsupported schema type %q", prop.Type))
	}

	return nil
}

func checkRange(field string, prop *protocol.JSONSchema, n float64) error {
	if prop.Minimum != nil && n < *prop.Minimum {
		return fault.Validation(field, fmt.Sprintf("must be at least %v", *prop.Minimum))
	}
	if prop.Maximum != nil && n > *prop.Maximum {
		return fault.Validation(field, fmt.Sprintf("must be at most %v", *prop.Maximum))
	}
	return nil
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
