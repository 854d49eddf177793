package mealie

import "encoding/json"

// Credentials locate and authenticate against a Mealie instance. They are
// built once at startup and passed to NewClient; the client treats them as
// read-only.
type Credentials struct {
	BaseURL  string
	APIToken string
}

// NamedRef is Mealie's {id, name} reference shape (units, foods, categories, tags).
type NamedRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Ingredient is a single recipe ingredient.
type Ingredient struct {
	Note     string    `json:"note"`
	Quantity *float64  `json:"quantity,omitempty"`
	Unit     *NamedRef `json:"unit,omitempty"`
	Food     *NamedRef `json:"food,omitempty"`
}

// Instruction is a single recipe step.
type Instruction struct {
	Text string `json:"text"`
}

// RecipeNote is a free-form note attached to a recipe.
type RecipeNote struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// RecipeSummary is the listing shape returned by recipe search.
type RecipeSummary struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating"`
	TotalTime   string   `json:"totalTime"`
}

// Recipe is the full recipe record.
type Recipe struct {
	ID                 string        `json:"id"`
	Slug               string        `json:"slug"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	RecipeIngredient   []Ingredient  `json:"recipeIngredient"`
	RecipeInstructions []Instruction `json:"recipeInstructions"`
	PrepTime           string        `json:"prepTime"`
	PerformTime        string        `json:"performTime"`
	TotalTime          string        `json:"totalTime"`
	RecipeYield        string        `json:"recipeYield"`
	Rating             *float64      `json:"rating"`
	RecipeCategory     []NamedRef    `json:"recipeCategory"`
	Tags               []NamedRef    `json:"tags"`
	Notes              []RecipeNote  `json:"notes"`
}

// MealPlanEntry is one planned meal. Mealie keys meal plans by integer IDs.
type MealPlanEntry struct {
	ID        int64          `json:"id"`
	Date      string         `json:"date"`
	EntryType string         `json:"entryType"`
	Title     string         `json:"title"`
	Text      string         `json:"text"`
	RecipeID  string         `json:"recipeId,omitempty"`
	Recipe    *RecipeSummary `json:"recipe,omitempty"`
}

// ShoppingListSummary is the listing shape for shopping lists.
type ShoppingListSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShoppingList is a full shopping list with its items.
type ShoppingList struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ListItems []ShoppingListItem `json:"listItems"`
}

// ShoppingListItem is one entry on a shopping list.
type ShoppingListItem struct {
	ID             string    `json:"id"`
	ShoppingListID string    `json:"shoppingListId"`
	Note           string    `json:"note"`
	Quantity       float64   `json:"quantity"`
	Checked        bool      `json:"checked"`
	Unit           *NamedRef `json:"unit,omitempty"`
	Food           *NamedRef `json:"food,omitempty"`
}

// ShoppingListItemCreate is the payload for creating a shopping list item.
type ShoppingListItemCreate struct {
	ShoppingListID string   `json:"shoppingListId"`
	Note           string   `json:"note"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Checked        bool     `json:"checked"`
}

// PageInfo is the normalized pagination shape exposed to handlers, regardless
// of the upstream's envelope dialect.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// RecipePage is a normalized page of recipe summaries.
type RecipePage struct {
	PageInfo
	Items []RecipeSummary `json:"items"`
}

// MealPlanPage is a normalized page of meal plan entries.
type MealPlanPage struct {
	PageInfo
	Items []MealPlanEntry `json:"items"`
}

// ShoppingListPage is a normalized page of shopping list summaries.
type ShoppingListPage struct {
	PageInfo
	Items []ShoppingListSummary `json:"items"`
}

// pageEnvelope matches Mealie's paginated response envelope. Older versions
// omit totalPages, so info() recomputes it from total and perPage.
type pageEnvelope struct {
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
	Items      []json.RawMessage `json:"items"`
}

func (e *pageEnvelope) info() PageInfo {
	page := e.Page
	if page <= 0 {
		page = 1
	}
	per := e.PerPage
	if per <= 0 {
		per = len(e.Items)
	}
	totalPages := e.TotalPages
	if totalPages <= 0 && per > 0 {
		totalPages = (e.Total + per - 1) / per
	}
	return PageInfo{Page: page, PerPage: per, Total: e.Total, TotalPages: totalPages}
}
