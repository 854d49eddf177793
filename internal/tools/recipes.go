package tools

import (
	"context"
	"fmt"

	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// searchRecipesTool pages through Mealie's recipe index.
type searchRecipesTool struct {
	client *mealie.Client
}

// SearchRecipes constructs the tool.
func SearchRecipes(client *mealie.Client) *searchRecipesTool {
	return &searchRecipesTool{client: client}
}

func (t *searchRecipesTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "search_recipes",
		Description: "Search for recipes by name or description, optionally filtered by categories and tags. Results are paginated.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"query":      {Type: "string", Description: "Search term to filter recipes by name or description"},
				"categories": {Type: "string", Description: "Comma-separated list of category names to filter by"},
				"tags":       {Type: "string", Description: "Comma-separated list of tag names to filter by"},
				"page":       {Type: "integer", Description: "Page number for pagination", Minimum: protocol.Float(1), Default: 1},
				"page_size":  {Type: "integer", Description: "Number of results per page", Minimum: protocol.Float(1), Maximum: protocol.Float(100), Default: 20},
			},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"items":       {Type: "array"},
				"page":        {Type: "integer"},
				"per_page":    {Type: "integer"},
				"total":       {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
			Required: []string{"items", "page", "total_pages"},
		},
	}
}

func (t *searchRecipesTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	page, err := t.client.SearchRecipes(ctx, mealie.SearchParams{
		Query:      stringArg(args, "query"),
		Categories: csvArg(args, "categories"),
		Tags:       csvArg(args, "tags"),
		Page:       intArg(args, "page", 1),
		PerPage:    intArg(args, "page_size", 20),
	})
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, map[string]any{
			"id":          r.ID,
			"slug":        r.Slug,
			"name":        r.Name,
			"description": r.Description,
			"rating":      r.Rating,
			"total_time":  r.TotalTime,
		})
	}
	return map[string]any{
		"items":       items,
		"page":        page.Page,
		"per_page":    page.PerPage,
		"total":       page.Total,
		"total_pages": page.TotalPages,
	}, nil
}

// getRecipeTool fetches one recipe in full detail.
type getRecipeTool struct {
	client *mealie.Client
}

// GetRecipe constructs the tool.
func GetRecipe(client *mealie.Client) *getRecipeTool {
	return &getRecipeTool{client: client}
}

func (t *getRecipeTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_recipe",
		Description: "Get detailed information about a specific recipe, including ingredients, instructions, and metadata.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"slug": {Type: "string", Description: "The unique slug identifier for the recipe"},
			},
			Required:             []string{"slug"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"id":           {Type: "string"},
				"slug":         {Type: "string"},
				"name":         {Type: "string"},
				"description":  {Type: "string"},
				"ingredients":  {Type: "array"},
				"instructions": {Type: "array"},
				"prep_time":    {Type: "string"},
				"cook_time":    {Type: "string"},
				"total_time":   {Type: "string"},
				"servings":     {Type: "string"},
				"rating":       {Type: "number"},
				"categories":   {Type: "array"},
				"tags":         {Type: "array"},
				"notes":        {Type: "array"},
			},
			Required: []string{"slug", "name"},
		},
	}
}

func (t *getRecipeTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	recipe, err := t.client.GetRecipe(ctx, stringArg(args, "slug"))
	if err != nil {
		return nil, err
	}

	ingredients := make([]map[string]any, 0, len(recipe.RecipeIngredient))
	for _, ing := range recipe.RecipeIngredient {
		entry := map[string]any{
			"note":     ing.Note,
			"quantity": ing.Quantity,
		}
		if ing.Unit != nil {
			entry["unit"] = ing.Unit.Name
		}
		if ing.Food != nil {
			entry["food"] = ing.Food.Name
		}
		ingredients = append(ingredients, entry)
	}

	instructions := make([]map[string]any, 0, len(recipe.RecipeInstructions))
	for _, inst := range recipe.RecipeInstructions {
		instructions = append(instructions, map[string]any{"text": inst.Text})
	}

	categories := make([]string, 0, len(recipe.RecipeCategory))
	for _, c := range recipe.RecipeCategory {
		categories = append(categories, c.Name)
	}
	tags := make([]string, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, tag.Name)
	}
	notes := make([]string, 0, len(recipe.Notes))
	for _, n := range recipe.Notes {
		notes = append(notes, n.Text)
	}

	return map[string]any{
		"id":           recipe.ID,
		"slug":         recipe.Slug,
		"name":         recipe.Name,
		"description":  recipe.Description,
		"ingredients":  ingredients,
		"instructions": instructions,
		"prep_time":    recipe.PrepTime,
		"cook_time":    recipe.PerformTime,
		"total_time":   recipe.TotalTime,
		"servings":     recipe.RecipeYield,
		"rating":       recipe.Rating,
		"categories":   categories,
		"tags":         tags,
		"notes":        notes,
	}, nil
}

// createRecipeTool creates a recipe via Mealie's two-step flow: a name-only
// stub first, then an update filling in the details.
type createRecipeTool struct {
	client *mealie.Client
}

// CreateRecipe constructs the tool.
func CreateRecipe(client *mealie.Client) *createRecipeTool {
	return &createRecipeTool{client: client}
}

func ingredientItemSchema() *protocol.JSONSchema {
	return &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"note":     {Type: "string", Description: "Free-form ingredient text, e.g. '2 cups flour'"},
			"quantity": {Type: "number"},
			"unit":     {Type: "string"},
		},
		Required: []string{"note"},
	}
}

func instructionItemSchema() *protocol.JSONSchema {
	return &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"text": {Type: "string"},
		},
		Required: []string{"text"},
	}
}

func (t *createRecipeTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "create_recipe",
		Description: "Create a new recipe with ingredients and instructions. Returns the created recipe's slug and ID.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"name":         {Type: "string", Description: "Name of the recipe"},
				"description":  {Type: "string", Description: "Brief description of the recipe"},
				"ingredients":  {Type: "array", Description: "Ingredients, each with 'note' (required), 'quantity' and 'unit' (optional)", Items: ingredientItemSchema()},
				"instructions": {Type: "array", Description: "Instruction steps, each with 'text'", Items: instructionItemSchema()},
				"prep_time":    {Type: "string", Description: "Preparation time, e.g. '15 minutes'"},
				"cook_time":    {Type: "string", Description: "Cooking time, e.g. '30 minutes'"},
				"servings":     {Type: "string", Description: "Number of servings, e.g. '4 servings'"},
			},
			Required:             []string{"name", "description", "ingredients", "instructions"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success": {Type: "boolean"},
				"slug":    {Type: "string"},
				"id":      {Type: "string"},
				"name":    {Type: "string"},
				"message": {Type: "string"},
			},
			Required: []string{"slug"},
		},
	}
}

func (t *createRecipeTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	name := stringArg(args, "name")

	slug, err := t.client.CreateRecipe(ctx, name)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"name":               name,
		"description":        stringArg(args, "description"),
		"recipeIngredient":   ingredientFields(args["ingredients"]),
		"recipeInstructions": instructionFields(args["instructions"]),
	}
	applyRecipeTimes(fields, args)

	updated, err := t.client.UpdateRecipe(ctx, slug, fields)
	if err != nil {
		return nil, err
	}

	finalSlug := updated.Slug
	if finalSlug == "" {
		finalSlug = slug
	}
	return map[string]any{
		"success": true,
		"slug":    finalSlug,
		"id":      updated.ID,
		"name":    name,
		"message": fmt.Sprintf("Recipe %q created successfully", name),
	}, nil
}

// updateRecipeTool applies a partial recipe update.
type updateRecipeTool struct {
	client *mealie.Client
}

// UpdateRecipe constructs the tool.
func UpdateRecipe(client *mealie.Client) *updateRecipeTool {
	return &updateRecipeTool{client: client}
}

func (t *updateRecipeTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "update_recipe",
		Description: "Update an existing recipe. Only provided fields are changed; ingredients and instructions replace the existing lists.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"slug":         {Type: "string", Description: "The unique slug identifier for the recipe to update"},
				"name":         {Type: "string"},
				"description":  {Type: "string"},
				"ingredients":  {Type: "array", Items: ingredientItemSchema()},
				"instructions": {Type: "array", Items: instructionItemSchema()},
				"prep_time":    {Type: "string"},
				"cook_time":    {Type: "string"},
				"servings":     {Type: "string"},
			},
			Required:             []string{"slug"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success": {Type: "boolean"},
				"slug":    {Type: "string"},
				"name":    {Type: "string"},
				"message": {Type: "string"},
			},
			Required: []string{"slug"},
		},
	}
}

func (t *updateRecipeTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	fields := map[string]any{}
	if v := stringArg(args, "name"); v != "" {
		fields["name"] = v
	}
	if v := stringArg(args, "description"); v != "" {
		fields["description"] = v
	}
	if _, ok := args["ingredients"]; ok {
		fields["recipeIngredient"] = ingredientFields(args["ingredients"])
	}
	if _, ok := args["instructions"]; ok {
		fields["recipeInstructions"] = instructionFields(args["instructions"])
	}
	applyRecipeTimes(fields, args)

	updated, err := t.client.UpdateRecipe(ctx, stringArg(args, "slug"), fields)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"slug":    updated.Slug,
		"name":    updated.Name,
		"message": "Recipe updated successfully",
	}, nil
}

// deleteRecipeTool removes a recipe.
type deleteRecipeTool struct {
	client *mealie.Client
}

// DeleteRecipe constructs the tool.
func DeleteRecipe(client *mealie.Client) *deleteRecipeTool {
	return &deleteRecipeTool{client: client}
}

func (t *deleteRecipeTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "delete_recipe",
		Description: "Delete a recipe by its slug.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"slug": {Type: "string", Description: "The unique slug identifier for the recipe to delete"},
			},
			Required:             []string{"slug"},
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

func (t *deleteRecipeTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	slug := stringArg(args, "slug")
	if err := t.client.DeleteRecipe(ctx, slug); err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Recipe %q deleted successfully", slug),
	}, nil
}

// ingredientFields converts validated ingredient arguments into Mealie's
// recipeIngredient payload shape.
func ingredientFields(raw any) []map[string]any {
	items, _ := raw.([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		out = append(out, map[string]any{
			"note":     obj["note"],
			"quantity": obj["quantity"],
			"unit":     obj["unit"],
		})
	}
	return out
}

func instructionFields(raw any) []map[string]any {
	items, _ := raw.([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		out = append(out, map[string]any{"text": obj["text"]})
	}
	return out
}

func applyRecipeTimes(fields map[string]any, args map[string]any) {
	if v := stringArg(args, "prep_time"); v != "" {
		fields["prepTime"] = v
	}
	if v := stringArg(args, "cook_time"); v != "" {
		fields["performTime"] = v
	}
	if v := stringArg(args, "servings"); v != "" {
		fields["recipeYield"] = v
	}
}
