package tools

import (
	"github.com/mealie-mcp/mealie-mcp-server/internal/mcp"
	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
)

// All returns the full Mealie tool catalogue bound to the given client.
func All(client *mealie.Client) []mcp.Tool {
	return []mcp.Tool{
		// Date helpers for meal planning
		GetTodaysDate(),
		GetDateOffset(),

		// Recipes
		SearchRecipes(client),
		GetRecipe(client),
		CreateRecipe(client),
		UpdateRecipe(client),
		DeleteRecipe(client),
		UploadRecipeImage(client),
		UploadRecipeImageBase64(client),

		// Meal plans
		GetMealPlans(client),
		GetTodaysMeals(client),
		CreateMealPlan(client),
		UpdateMealPlan(client),
		DeleteMealPlan(client),

		// Shopping lists
		GetShoppingLists(client),
		GetShoppingList(client),
		CreateShoppingListItem(client),
		UpdateShoppingListItem(client),
		DeleteShoppingListItem(client),

		// Ingredient parsing and pantry data
		ParseIngredient(client),
		CreateFood(client),
		CreateUnit(client),
	}
}
