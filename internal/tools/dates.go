package tools

import (
	"context"
	"time"

	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// getTodaysDateTool reports today's date for meal planning prompts.
type getTodaysDateTool struct{}

// GetTodaysDate constructs the tool.
func GetTodaysDate() *getTodaysDateTool { return &getTodaysDateTool{} }

func (t *getTodaysDateTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_todays_date",
		Description: "Get today's date in YYYY-MM-DD format along with the day of the week. Useful for creating meal plans for specific dates.",
		InputSchema: &protocol.JSONSchema{
			Type:                 "object",
			Properties:           map[string]protocol.JSONSchema{},
			AdditionalProperties: false,
		},
		OutputSchema: dateOutputSchema(),
	}
}

func (t *getTodaysDateTool) Invoke(_ context.Context, _ map[string]any) (map[string]any, error) {
	return datePayload(time.Now()), nil
}

// getDateOffsetTool resolves a date relative to today.
type getDateOffsetTool struct{}

// GetDateOffset constructs the tool.
func GetDateOffset() *getDateOffsetTool { return &getDateOffsetTool{} }

func (t *getDateOffsetTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_date_offset",
		Description: "Get a date relative to today. Positive offsets are in the future, negative offsets in the past.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"days_from_today": {Type: "integer", Description: "Number of days from today (positive for future, negative for past)"},
			},
			Required:             []string{"days_from_today"},
			AdditionalProperties: false,
		},
		OutputSchema: dateOutputSchema(),
	}
}

func (t *getDateOffsetTool) Invoke(_ context.Context, args map[string]any) (map[string]any, error) {
	offset := intArg(args, "days_from_today", 0)
	return datePayload(time.Now().AddDate(0, 0, offset)), nil
}

func dateOutputSchema() *protocol.JSONSchema {
	return &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"date":        {Type: "string"},
			"day_of_week": {Type: "string"},
			"formatted":   {Type: "string"},
		},
		Required: []string{"date", "day_of_week", "formatted"},
	}
}

func datePayload(t time.Time) map[string]any {
	return map[string]any{
		"date":        t.Format("2006-01-02"),
		"day_of_week": t.Weekday().String(),
		"formatted":   t.Format("January 02, 2006"),
	}
}
