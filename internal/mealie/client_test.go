package mealie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Credentials{BaseURL: server.URL, APIToken: "test-token"}, 5*time.Second, nil)
	return client, server
}

func TestSearchRecipesSendsAuthAndQuery(t *testing.T) {
	var gotAuth, gotSearch, gotPerPage string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSearch = r.URL.Query().Get("search")
		gotPerPage = r.URL.Query().Get("perPage")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page": 1, "perPage": 10, "total": 0, "totalPages": 0, "items": []any{},
		})
	}))

	_, err := client.SearchRecipes(context.Background(), SearchParams{Query: "pasta", Page: 1, PerPage: 10})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "pasta", gotSearch)
	assert.Equal(t, "10", gotPerPage)
}

func TestSearchRecipesNormalizesPagination(t *testing.T) {
	items := make([]map[string]any, 10)
	for i := range items {
		items[i] = map[string]any{"id": fmt.Sprintf("id-%d", i), "slug": fmt.Sprintf("recipe-%d", i), "name": fmt.Sprintf("Recipe %d", i)}
	}
	// upstream omits totalPages; the client recomputes it from total/perPage
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page": 1, "perPage": 10, "total": 25, "items": items,
		})
	}))

	page, err := client.SearchRecipes(context.Background(), SearchParams{Query: "pasta", Page: 1, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.Total)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		header     http.Header
		wantKind   fault.Kind
		retryAfter time.Duration
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantKind: fault.KindAuth},
		{name: "forbidden", status: http.StatusForbidden, wantKind: fault.KindAuth},
		{name: "not found", status: http.StatusNotFound, wantKind: fault.KindNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, header: http.Header{"Retry-After": []string{"7"}}, wantKind: fault.KindRateLimited, retryAfter: 7 * time.Second},
		{name: "server error", status: http.StatusInternalServerError, wantKind: fault.KindUpstream},
		{name: "other client error", status: http.StatusTeapot, wantKind: fault.KindUpstream},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				for key, values := range tc.header {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				}
				w.WriteHeader(tc.status)
			}))

			_, err := client.GetRecipe(context.Background(), "anything")
			require.Error(t, err)

			fe := fault.From(err)
			assert.Equal(t, tc.wantKind, fe.Kind)
			assert.Equal(t, tc.retryAfter, fe.RetryAfter)
		})
	}
}

func TestMissingCredentialsFailBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL}, time.Second, nil)

	_, err := client.GetRecipe(context.Background(), "pasta")
	require.Error(t, err)

	assert.Equal(t, fault.KindConfiguration, fault.From(err).Kind)
	assert.Equal(t, int32(0), calls.Load())
}

func TestNetworkFailureIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(Credentials{BaseURL: server.URL, APIToken: "tok"}, time.Second, nil)

	_, err := client.GetRecipe(context.Background(), "pasta")
	require.Error(t, err)
	assert.Equal(t, fault.KindTransport, fault.From(err).Kind)
}

func TestCanceledContextIsTransport(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetRecipe(ctx, "pasta")
	require.Error(t, err)
	assert.Equal(t, fault.KindTransport, fault.From(err).Kind)
}

func TestCreateRecipeReturnsSlug(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/recipes", r.URL.Path)
		_ = json.NewEncoder(w).Encode("tomato-soup")
	}))

	slug, err := client.CreateRecipe(context.Background(), "Tomato Soup")
	require.NoError(t, err)
	assert.Equal(t, "tomato-soup", slug)
}

func TestCreateRecipeEmptySlugIsShapeError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode("")
	}))

	_, err := client.CreateRecipe(context.Background(), "Tomato Soup")
	require.Error(t, err)
	assert.Equal(t, fault.KindUpstreamShape, fault.From(err).Kind)
}

func TestGetRecipeDecodesTypedFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/tomato-soup", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "abc-123",
			"slug": "tomato-soup",
			"name": "Tomato Soup",
			"recipeIngredient": []map[string]any{
				{"note": "2 cups tomatoes", "quantity": 2.0, "unit": map[string]any{"name": "cup"}, "food": map[string]any{"name": "tomato"}},
			},
			"recipeInstructions": []map[string]any{{"text": "Simmer."}},
			"prepTime":           "10 minutes",
			"performTime":        "20 minutes",
		})
	}))

	recipe, err := client.GetRecipe(context.Background(), "tomato-soup")
	require.NoError(t, err)

	assert.Equal(t, "Tomato Soup", recipe.Name)
	require.Len(t, recipe.RecipeIngredient, 1)
	assert.Equal(t, "cup", recipe.RecipeIngredient[0].Unit.Name)
	assert.Equal(t, "tomato", recipe.RecipeIngredient[0].Food.Name)
	assert.Equal(t, "20 minutes", recipe.PerformTime)
}

func TestCreateShoppingListItemAcceptsWrappedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"createdItems": []map[string]any{
				{"id": "item-1", "shoppingListId": "list-1", "note": "milk"},
			},
		})
	}))

	item, err := client.CreateShoppingListItem(context.Background(), ShoppingListItemCreate{ShoppingListID: "list-1", Note: "milk"})
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "milk", item.Note)
}

func TestCreateShoppingListItemAcceptsFlatResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "item-2", "shoppingListId": "list-1", "note": "eggs"})
	}))

	item, err := client.CreateShoppingListItem(context.Background(), ShoppingListItemCreate{ShoppingListID: "list-1", Note: "eggs"})
	require.NoError(t, err)
	assert.Equal(t, "item-2", item.ID)
}

func TestParseIngredientUnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2 cups flour", body["ingredient"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ingredient": map[string]any{"quantity": 2.0, "note": "flour"},
		})
	}))

	parsed, err := client.ParseIngredient(context.Background(), "2 cups flour")
	require.NoError(t, err)
	assert.Equal(t, 2.0, parsed["quantity"])
}

func TestUploadRecipeImageSendsMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "soup.jpg", header.Filename)
		assert.Equal(t, "jpg", r.FormValue("extension"))
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	err := client.UploadRecipeImage(context.Background(), "tomato-soup", "soup.jpg", []byte("fake-image"))
	require.NoError(t, err)
}

func TestMalformedEnvelopeIsShapeError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": "not-an-array"}`))
	}))

	_, err := client.SearchRecipes(context.Background(), SearchParams{})
	require.Error(t, err)
	assert.Equal(t, fault.KindUpstreamShape, fault.From(err).Kind)
}
