package tools

import "strings"

// Argument extraction helpers. Arguments arrive schema-validated, so these
// only coerce JSON decoding artifacts (numbers as float64) and apply
// defaults for optional fields.

func stringArg(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return strings.TrimSpace(v)
}

func stringArgOr(args map[string]any, name, fallback string) string {
	if v := stringArg(args, name); v != "" {
		return v
	}
	return fallback
}

func intArg(args map[string]any, name string, fallback int) int {
	v, ok := args[name].(float64)
	if !ok {
		return fallback
	}
	return int(v)
}

func floatArgPtr(args map[string]any, name string) *float64 {
	v, ok := args[name].(float64)
	if !ok {
		return nil
	}
	return &v
}

func boolArg(args map[string]any, name string) bool {
	v, _ := args[name].(bool)
	return v
}

// csvArg splits a comma-separated argument into trimmed values.
func csvArg(args map[string]any, name string) []string {
	raw := stringArg(args, name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
