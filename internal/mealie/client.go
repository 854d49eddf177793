// Package mealie is a typed HTTP client for the Mealie recipe management API.
// It owns authentication, pagination normalization, and the mapping from HTTP
// failures onto the fault taxonomy. It performs no retries and keeps no state
// between calls.
package mealie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
)

// Client calls the Mealie REST API with bearer authentication.
type Client struct {
	creds Credentials
	httpc *http.Client
	log   *logrus.Entry
}

// NewClient builds a client around the given credentials. The timeout bounds
// every call; request contexts still cancel in-flight calls earlier.
func NewClient(creds Credentials, timeout time.Duration, log *logrus.Entry) *Client {
	creds.BaseURL = strings.TrimSuffix(strings.TrimSpace(creds.BaseURL), "/")
	creds.APIToken = strings.TrimSpace(creds.APIToken)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		creds: creds,
		httpc: &http.Client{Timeout: timeout},
		log:   log,
	}
}

func (c *Client) checkConfig() error {
	if c.creds.BaseURL == "" {
		return fault.Configuration("MEALIE_URL is not set")
	}
	if c.creds.APIToken == "" {
		return fault.Configuration("MEALIE_API_TOKEN is not set")
	}
	return nil
}

// do executes one JSON request and returns the raw response body. All error
// paths come back classified; callers never see a bare HTTP status.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	endpoint := c.creds.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fault.Upstream("encode request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fault.Transport("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.APIToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req)
}

// doMultipart uploads a file as multipart/form-data. Mealie wants the raw
// file under "image" and the bare extension as a separate field.
func (c *Client) doMultipart(ctx context.Context, method, path, filename string, data []byte) (json.RawMessage, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, fault.Transport("build multipart body: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fault.Transport("build multipart body: %v", err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filenameExt(filename)), ".")
	if err := w.WriteField("extension", ext); err != nil {
		return nil, fault.Transport("build multipart body: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, fault.Transport("build multipart body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.creds.BaseURL+path, &buf)
	if err != nil {
		return nil, fault.Transport("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.APIToken)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.execute(req)
}

func (c *Client) execute(req *http.Request) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fault.Transport("%s %s: %v", req.Method, req.URL.Path, ctxErr)
		}
		return nil, fault.Transport("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
		}).Debug("mealie request")
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, classifyStatus(resp, body)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.Transport("read response: %v", err)
	}
	return json.RawMessage(raw), nil
}

func classifyStatus(resp *http.Response, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = resp.Status
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fault.Auth("mealie rejected credentials (status %d): %s", resp.StatusCode, detail)
	case resp.StatusCode == http.StatusNotFound:
		return fault.NotFound("%s", detail)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fault.RateLimited(parseRetryAfter(resp.Header.Get("Retry-After")), "mealie rate limited: %s", detail)
	case resp.StatusCode >= 500:
		return fault.Upstream("mealie server error (status %d): %s", resp.StatusCode, detail)
	default:
		return fault.Upstream("mealie request failed (status %d): %s", resp.StatusCode, detail)
	}
}

func parseRetryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func filenameExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

func decodeInto(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fault.UpstreamShape("decode mealie response: %v", err)
	}
	return nil
}

// SearchParams filter and paginate recipe search.
type SearchParams struct {
	Query      string
	Categories []string
	Tags       []string
	Page       int
	PerPage    int
}

// SearchRecipes returns a normalized page of recipe summaries.
func (c *Client) SearchRecipes(ctx context.Context, p SearchParams) (*RecipePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(defaultPage(p.Page)))
	query.Set("perPage", strconv.Itoa(defaultPerPage(p.PerPage)))
	if p.Query != "" {
		query.Set("search", p.Query)
	}
	for _, cat := range p.Categories {
		query.Add("categories", cat)
	}
	for _, tag := range p.Tags {
		query.Add("tags", tag)
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/recipes", query, nil)
	if err != nil {
		return nil, err
	}

	var env pageEnvelope
	if err := decodeInto(raw, &env); err != nil {
		return nil, err
	}
	page := &RecipePage{PageInfo: env.info()}
	for _, item := range env.Items {
		var summary RecipeSummary
		if err := decodeInto(item, &summary); err != nil {
			return nil, err
		}
		page.Items = append(page.Items, summary)
	}
	return page, nil
}

// GetRecipe fetches a full recipe by slug.
func (c *Client) GetRecipe(ctx context.Context, slug string) (*Recipe, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return nil, err
	}
	var recipe Recipe
	if err := decodeInto(raw, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe creates a named stub and returns its slug; details are filled
// in with UpdateRecipe, matching Mealie's two-step creation flow.
func (c *Client) CreateRecipe(ctx context.Context, name string) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/recipes", nil, map[string]string{"name": name})
	if err != nil {
		return "", err
	}
	var slug string
	if err := decodeInto(raw, &slug); err != nil {
		return "", err
	}
	if slug == "" {
		return "", fault.UpstreamShape("create recipe returned an empty slug")
	}
	return slug, nil
}

// UpdateRecipe applies a partial update and returns the updated recipe.
func (c *Client) UpdateRecipe(ctx context.Context, slug string, fields map[string]any) (*Recipe, error) {
	raw, err := c.do(ctx, http.MethodPut, "/api/recipes/"+url.PathEscape(slug), nil, fields)
	if err != nil {
		return nil, err
	}
	var recipe Recipe
	if err := decodeInto(raw, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe by slug.
func (c *Client) DeleteRecipe(ctx context.Context, slug string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/recipes/"+url.PathEscape(slug), nil, nil)
	return err
}

// UploadRecipeImage replaces the recipe's image.
func (c *Client) UploadRecipeImage(ctx context.Context, slug, filename string, data []byte) error {
	_, err := c.doMultipart(ctx, http.MethodPut, "/api/recipes/"+url.PathEscape(slug)+"/image", filename, data)
	return err
}

// MealPlanParams filter and paginate meal plan queries.
type MealPlanParams struct {
	StartDate string
	EndDate   string
	Page      int
	PerPage   int
}

// GetMealPlans returns a normalized page of meal plan entries.
func (c *Client) GetMealPlans(ctx context.Context, p MealPlanParams) (*MealPlanPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(defaultPage(p.Page)))
	query.Set("perPage", strconv.Itoa(defaultPerPage(p.PerPage)))
	if p.StartDate != "" {
		query.Set("start_date", p.StartDate)
	}
	if p.EndDate != "" {
		query.Set("end_date", p.EndDate)
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/households/mealplans", query, nil)
	if err != nil {
		return nil, err
	}

	var env pageEnvelope
	if err := decodeInto(raw, &env); err != nil {
		return nil, err
	}
	page := &MealPlanPage{PageInfo: env.info()}
	for _, item := range env.Items {
		var entry MealPlanEntry
		if err := decodeInto(item, &entry); err != nil {
			return nil, err
		}
		page.Items = append(page.Items, entry)
	}
	return page, nil
}

// GetTodaysMeals returns today's meal plan entries.
func (c *Client) GetTodaysMeals(ctx context.Context) ([]MealPlanEntry, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/households/mealplans/today", nil, nil)
	if err != nil {
		return nil, err
	}
	var entries []MealPlanEntry
	if err := decodeInto(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateMealPlanParams describe a new meal plan entry. Either RecipeID or
// Title should be set.
type CreateMealPlanParams struct {
	Date      string
	EntryType string
	RecipeID  string
	Title     string
}

// CreateMealPlan creates a meal plan entry.
func (c *Client) CreateMealPlan(ctx context.Context, p CreateMealPlanParams) (*MealPlanEntry, error) {
	body := map[string]any{
		"date":      p.Date,
		"entryType": p.EntryType,
	}
	if p.RecipeID != "" {
		body["recipeId"] = p.RecipeID
	}
	if p.Title != "" {
		body["title"] = p.Title
	}

	raw, err := c.do(ctx, http.MethodPost, "/api/households/mealplans", nil, body)
	if err != nil {
		return nil, err
	}
	var entry MealPlanEntry
	if err := decodeInto(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateMealPlan applies a partial update to a meal plan entry.
func (c *Client) UpdateMealPlan(ctx context.Context, id int64, fields map[string]any) (*MealPlanEntry, error) {
	raw, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/households/mealplans/%d", id), nil, fields)
	if err != nil {
		return nil, err
	}
	var entry MealPlanEntry
	if err := decodeInto(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteMealPlan removes a meal plan entry.
func (c *Client) DeleteMealPlan(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/households/mealplans/%d", id), nil, nil)
	return err
}

// GetShoppingLists returns a normalized page of shopping list summaries.
func (c *Client) GetShoppingLists(ctx context.Context, page, perPage int) (*ShoppingListPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(defaultPage(page)))
	query.Set("perPage", strconv.Itoa(defaultPerPage(perPage)))

	raw, err := c.do(ctx, http.MethodGet, "/api/households/shopping/lists", query, nil)
	if err != nil {
		return nil, err
	}

	var env pageEnvelope
	if err := decodeInto(raw, &env); err != nil {
		return nil, err
	}
	result := &ShoppingListPage{PageInfo: env.info()}
	for _, item := range env.Items {
		var summary ShoppingListSummary
		if err := decodeInto(item, &summary); err != nil {
			return nil, err
		}
		result.Items = append(result.Items, summary)
	}
	return result, nil
}

// GetShoppingList fetches one shopping list with its items.
func (c *Client) GetShoppingList(ctx context.Context, id string) (*ShoppingList, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/households/shopping/lists/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var list ShoppingList
	if err := decodeInto(raw, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateShoppingListItem adds an item to a shopping list. Newer Mealie
// versions wrap the result in a createdItems array; both shapes are accepted.
func (c *Client) CreateShoppingListItem(ctx context.Context, item ShoppingListItemCreate) (*ShoppingListItem, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/households/shopping/items", nil, item)
	if err != nil {
		return nil, err
	}

	var env struct {
		ShoppingListItem
		CreatedItems []ShoppingListItem `json:"createdItems"`
	}
	if err := decodeInto(raw, &env); err != nil {
		return nil, err
	}
	if len(env.CreatedItems) > 0 {
		return &env.CreatedItems[0], nil
	}
	if env.ID == "" {
		return nil, fault.UpstreamShape("create shopping list item returned no item")
	}
	created := env.ShoppingListItem
	return &created, nil
}

// UpdateShoppingListItem applies a partial update to a shopping list item.
func (c *Client) UpdateShoppingListItem(ctx context.Context, id string, fields map[string]any) (*ShoppingListItem, error) {
	raw, err := c.do(ctx, http.MethodPut, "/api/households/shopping/items/"+url.PathEscape(id), nil, fields)
	if err != nil {
		return nil, err
	}
	var item ShoppingListItem
	if err := decodeInto(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteShoppingListItem removes a shopping list item.
func (c *Client) DeleteShoppingListItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/households/shopping/items/"+url.PathEscape(id), nil, nil)
	return err
}

// ParseIngredient runs Mealie's ingredient parser over free-form text.
func (c *Client) ParseIngredient(ctx context.Context, text string) (map[string]any, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/parser/ingredient", nil, map[string]string{"ingredient": text})
	if err != nil {
		return nil, err
	}
	var env struct {
		Ingredient map[string]any `json:"ingredient"`
	}
	if err := decodeInto(raw, &env); err != nil {
		return nil, err
	}
	if env.Ingredient == nil {
		env.Ingredient = map[string]any{}
	}
	return env.Ingredient, nil
}

// CreateFood registers a new food.
func (c *Client) CreateFood(ctx context.Context, name string) (*NamedRef, error) {
	return c.createNamed(ctx, "/api/foods", name)
}

// CreateUnit registers a new unit.
func (c *Client) CreateUnit(ctx context.Context, name string) (*NamedRef, error) {
	return c.createNamed(ctx, "/api/units", name)
}

func (c *Client) createNamed(ctx context.Context, path, name string) (*NamedRef, error) {
	raw, err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	var ref NamedRef
	if err := decodeInto(raw, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func defaultPage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func defaultPerPage(perPage int) int {
	if perPage <= 0 {
		return 50
	}
	return perPage
}
