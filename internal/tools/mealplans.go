package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

const dateLayout = "2006-01-02"

var mealEntryTypes = []string{"breakfast", "lunch", "dinner", "side"}

// getMealPlansTool lists meal plan entries in a date range.
type getMealPlansTool struct {
	client *mealie.Client
}

// GetMealPlans constructs the tool.
func GetMealPlans(client *mealie.Client) *getMealPlansTool {
	return &getMealPlansTool{client: client}
}

func (t *getMealPlansTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_meal_plans",
		Description: "Get meal plans within a date range. Defaults to the next seven days starting today.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"start_date": {Type: "string", Description: "Start date in YYYY-MM-DD format (defaults to today)"},
				"end_date":   {Type: "string", Description: "End date in YYYY-MM-DD format (defaults to 7 days from start)"},
				"page":       {Type: "integer", Minimum: protocol.Float(1), Default: 1},
				"page_size":  {Type: "integer", Minimum: protocol.Float(1), Maximum: protocol.Float(100), Default: 50},
			},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"start_date":  {Type: "string"},
				"end_date":    {Type: "string"},
				"meals":       {Type: "array"},
				"page":        {Type: "integer"},
				"total":       {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
			Required: []string{"meals", "page", "total_pages"},
		},
	}
}

func (t *getMealPlansTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	start := stringArg(args, "start_date")
	if start == "" {
		start = time.Now().Format(dateLayout)
	} else if err := checkDate("start_date", start); err != nil {
		return nil, err
	}
	end := stringArg(args, "end_date")
	if end == "" {
		end = time.Now().AddDate(0, 0, 7).Format(dateLayout)
	} else if err := checkDate("end_date", end); err != nil {
		return nil, err
	}

	page, err := t.client.GetMealPlans(ctx, mealie.MealPlanParams{
		StartDate: start,
		EndDate:   end,
		Page:      intArg(args, "page", 1),
		PerPage:   intArg(args, "page_size", 50),
	})
	if err != nil {
		return nil, err
	}

	meals := make([]map[string]any, 0, len(page.Items))
	for _, entry := range page.Items {
		meal := map[string]any{
			"id":         entry.ID,
			"date":       entry.Date,
			"entry_type": entry.EntryType,
			"title":      entry.Title,
		}
		if entry.Recipe != nil {
			meal["recipe_name"] = entry.Recipe.Name
			meal["recipe_slug"] = entry.Recipe.Slug
		}
		meals = append(meals, meal)
	}

	return map[string]any{
		"start_date":  start,
		"end_date":    end,
		"meals":       meals,
		"page":        page.Page,
		"total":       page.Total,
		"total_pages": page.TotalPages,
	}, nil
}

// getTodaysMealsTool lists today's meal plan entries.
type getTodaysMealsTool struct {
	client *mealie.Client
}

// GetTodaysMeals constructs the tool.
func GetTodaysMeals(client *mealie.Client) *getTodaysMealsTool {
	return &getTodaysMealsTool{client: client}
}

func (t *getTodaysMealsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_todays_meals",
		Description: "Get all meal plan entries for today.",
		InputSchema: &protocol.JSONSchema{
			Type:                 "object",
			Properties:           map[string]protocol.JSONSchema{},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"date":  {Type: "string"},
				"meals": {Type: "array"},
			},
			Required: []string{"date", "meals"},
		},
	}
}

func (t *getTodaysMealsTool) Invoke(ctx context.Context, _ map[string]any) (map[string]any, error) {
	entries, err := t.client.GetTodaysMeals(ctx)
	if err != nil {
		return nil, err
	}

	meals := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		meal := map[string]any{
			"id":         entry.ID,
			"date":       entry.Date,
			"entry_type": entry.EntryType,
			"title":      entry.Title,
		}
		if entry.Recipe != nil {
			meal["recipe"] = map[string]any{
				"id":   entry.Recipe.ID,
				"name": entry.Recipe.Name,
				"slug": entry.Recipe.Slug,
			}
		}
		meals = append(meals, meal)
	}

	return map[string]any{
		"date":  time.Now().Format(dateLayout),
		"meals": meals,
	}, nil
}

// createMealPlanTool creates a meal plan entry, resolving a recipe slug to
// its ID when one is given.
type createMealPlanTool struct {
	client *mealie.Client
}

// CreateMealPlan constructs the tool.
func CreateMealPlan(client *mealie.Client) *createMealPlanTool {
	return &createMealPlanTool{client: client}
}

func (t *createMealPlanTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "create_meal_plan",
		Description: "Create a meal plan entry for a date, linked to a recipe or carrying a custom title.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"date":        {Type: "string", Description: "Date for the meal in YYYY-MM-DD format"},
				"entry_type":  {Type: "string", Description: "Type of meal", Enum: mealEntryTypes},
				"recipe_slug": {Type: "string", Description: "Slug of an existing recipe to link (optional)"},
				"title":       {Type: "string", Description: "Custom title if not using a recipe (optional)"},
			},
			Required:             []string{"date", "entry_type"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success":    {Type: "boolean"},
				"id":         {Type: "integer"},
				"date":       {Type: "string"},
				"entry_type": {Type: "string"},
				"message":    {Type: "string"},
			},
			Required: []string{"id"},
		},
	}
}

func (t *createMealPlanTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	date := stringArg(args, "date")
	if err := checkDate("date", date); err != nil {
		return nil, err
	}

	var recipeID string
	if slug := stringArg(args, "recipe_slug"); slug != "" {
		recipe, err := t.client.GetRecipe(ctx, slug)
		if err != nil {
			return nil, err
		}
		recipeID = recipe.ID
	}

	entry, err := t.client.CreateMealPlan(ctx, mealie.CreateMealPlanParams{
		Date:      date,
		EntryType: stringArg(args, "entry_type"),
		RecipeID:  recipeID,
		Title:     stringArg(args, "title"),
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success":    true,
		"id":         entry.ID,
		"date":       entry.Date,
		"entry_type": entry.EntryType,
		"message":    fmt.Sprintf("Meal plan entry created for %s", date),
	}, nil
}

// updateMealPlanTool applies a partial update to a meal plan entry.
type updateMealPlanTool struct {
	client *mealie.Client
}

// UpdateMealPlan constructs the tool.
func UpdateMealPlan(client *mealie.Client) *updateMealPlanTool {
	return &updateMealPlanTool{client: client}
}

func (t *updateMealPlanTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "update_meal_plan",
		Description: "Update a meal plan entry's date, meal type, or title.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"id":         {Type: "integer", Description: "The ID of the meal plan entry to update"},
				"date":       {Type: "string", Description: "New date in YYYY-MM-DD format"},
				"entry_type": {Type: "string", Enum: mealEntryTypes},
				"title":      {Type: "string"},
			},
			Required:             []string{"id"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success":    {Type: "boolean"},
				"id":         {Type: "integer"},
				"date":       {Type: "string"},
				"entry_type": {Type: "string"},
				"message":    {Type: "string"},
			},
			Required: []string{"id"},
		},
	}
}

func (t *updateMealPlanTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	fields := map[string]any{}
	if v := stringArg(args, "date"); v != "" {
		if err := checkDate("date", v); err != nil {
			return nil, err
		}
		fields["date"] = v
	}
	if v := stringArg(args, "entry_type"); v != "" {
		fields["entryType"] = v
	}
	if v := stringArg(args, "title"); v != "" {
		fields["title"] = v
	}

	entry, err := t.client.UpdateMealPlan(ctx, int64(intArg(args, "id", 0)), fields)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success":    true,
		"id":         entry.ID,
		"date":       entry.Date,
		"entry_type": entry.EntryType,
		"message":    "Meal plan entry updated successfully",
	}, nil
}

// deleteMealPlanTool removes a meal plan entry.
type deleteMealPlanTool struct {
	client *mealie.Client
}

// DeleteMealPlan constructs the tool.
func DeleteMealPlan(client *mealie.Client) *deleteMealPlanTool {
	return &deleteMealPlanTool{client: client}
}

func (t *deleteMealPlanTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "delete_meal_plan",
		Description: "Delete a meal plan entry by its ID.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"id": {Type: "integer", Description: "The ID of the meal plan entry to delete"},
			},
			Required:             []string{"id"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success": {Type: "boolean"},
				"message": {Type: "string"},
			},
			Required: []string{"success"},
		},
	}
}

func (t *deleteMealPlanTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	id := int64(intArg(args, "id", 0))
	if err := t.client.DeleteMealPlan(ctx, id); err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Meal plan entry %d deleted successfully", id),
	}, nil
}

func checkDate(field, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fault.Validation(field, "must be a date in YYYY-MM-DD format")
	}
	return nil
}
