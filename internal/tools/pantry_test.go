package tools

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredient(t *testing.T) {
	d := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/parser/ingredient", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2 cups flour", body["ingredient"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ingredient": map[string]any{
				"quantity": 2.0,
				"unit":     map[string]any{"name": "cup"},
				"food":     map[string]any{"name": "flour"},
			},
		})
	}))

	payload := requireSuccess(t, dispatch(t, d, "parse_ingredient", map[string]any{"text": "2 cups flour"}))

	parsed := payload["ingredient"].(map[string]any)
	assert.Equal(t, 2.0, parsed["quantity"])
	assert.Equal(t, "cup", parsed["unit"].(map[string]any)["name"])
}

func TestCreateFood(t *testing.T) {
	d := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/foods", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "food-1", "name": "tomato"})
	}))

	payload := requireSuccess(t, dispatch(t, d, "create_food", map[string]any{"name": "tomato"}))

	assert.Equal(t, "tomato", payload["name"])
	assert.Equal(t, "food-1", payload["id"])
	assert.Equal(t, true, payload["success"])
}

func TestCreateUnit(t *testing.T) {
	d := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/units", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "unit-1", "name": "tablespoon"})
	}))

	payload := requireSuccess(t, dispatch(t, d, "create_unit", map[string]any{"name": "tablespoon"}))

	assert.Equal(t, "tablespoon", payload["name"])
	assert.Equal(t, "unit-1", payload["id"])
}
