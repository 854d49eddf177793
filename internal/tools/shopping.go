package tools

import (
	"context"
	"fmt"

	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// getShoppingListsTool pages through the household's shopping lists.
type getShoppingListsTool struct {
	client *mealie.Client
}

// GetShoppingLists constructs the tool.
func GetShoppingLists(client *mealie.Client) *getShoppingListsTool {
	return &getShoppingListsTool{client: client}
}

func (t *getShoppingListsTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_shopping_lists",
		Description: "List the household's shopping lists with their IDs.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"page":      {Type: "integer", Minimum: protocol.Float(1), Default: 1},
				"page_size": {Type: "integer", Minimum: protocol.Float(1), Maximum: protocol.Float(100), Default: 50},
			},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"lists":       {Type: "array"},
				"page":        {Type: "integer"},
				"total":       {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
			Required: []string{"lists", "page", "total_pages"},
		},
	}
}

func (t *getShoppingListsTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	page, err := t.client.GetShoppingLists(ctx, intArg(args, "page", 1), intArg(args, "page_size", 50))
	if err != nil {
		return nil, err
	}

	lists := make([]map[string]any, 0, len(page.Items))
	for _, list := range page.Items {
		lists = append(lists, map[string]any{
			"id":   list.ID,
			"name": list.Name,
		})
	}
	return map[string]any{
		"lists":       lists,
		"page":        page.Page,
		"total":       page.Total,
		"total_pages": page.TotalPages,
	}, nil
}

// getShoppingListTool fetches one list with its items.
type getShoppingListTool struct {
	client *mealie.Client
}

// GetShoppingList constructs the tool.
func GetShoppingList(client *mealie.Client) *getShoppingListTool {
	return &getShoppingListTool{client: client}
}

func (t *getShoppingListTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "get_shopping_list",
		Description: "Get a shopping list and all of its items.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"list_id": {Type: "string", Description: "The ID of the shopping list"},
			},
			Required:             []string{"list_id"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"id":    {Type: "string"},
				"name":  {Type: "string"},
				"items": {Type: "array"},
			},
			Required: []string{"id", "items"},
		},
	}
}

func (t *getShoppingListTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	list, err := t.client.GetShoppingList(ctx, stringArg(args, "list_id"))
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(list.ListItems))
	for _, item := range list.ListItems {
		entry := map[string]any{
			"id":       item.ID,
			"note":     item.Note,
			"quantity": item.Quantity,
			"checked":  item.Checked,
		}
		if item.Food != nil {
			entry["food"] = item.Food.Name
		}
		if item.Unit != nil {
			entry["unit"] = item.Unit.Name
		}
		items = append(items, entry)
	}
	return map[string]any{
		"id":    list.ID,
		"name":  list.Name,
		"items": items,
	}, nil
}

// createShoppingListItemTool adds an item to a shopping list.
type createShoppingListItemTool struct {
	client *mealie.Client
}

// CreateShoppingListItem constructs the tool.
func CreateShoppingListItem(client *mealie.Client) *createShoppingListItemTool {
	return &createShoppingListItemTool{client: client}
}

func (t *createShoppingListItemTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "create_shopping_list_item",
		Description: "Add an item to a shopping list.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"list_id":  {Type: "string", Description: "The ID of the shopping list to add to"},
				"note":     {Type: "string", Description: "Free-form item text, e.g. '2 lbs carrots'"},
				"quantity": {Type: "number", Minimum: protocol.Float(0)},
				"checked":  {Type: "boolean", Default: false},
			},
			Required:             []string{"list_id", "note"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success": {Type: "boolean"},
				"id":      {Type: "string"},
				"list_id": {Type: "string"},
				"note":    {Type: "string"},
				"message": {Type: "string"},
			},
			Required: []string{"id"},
		},
	}
}

func (t *createShoppingListItemTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	listID := stringArg(args, "list_id")
	item, err := t.client.CreateShoppingListItem(ctx, mealie.ShoppingListItemCreate{
		ShoppingListID: listID,
		Note:           stringArg(args, "note"),
		Quantity:       floatArgPtr(args, "quantity"),
		Checked:        boolArg(args, "checked"),
	})
	if err != nil {
		return nil, err
	}

	resolvedList := item.ShoppingListID
	if resolvedList == "" {
		resolvedList = listID
	}
	return map[string]any{
		"success": true,
		"id":      item.ID,
		"list_id": resolvedList,
		"note":    item.Note,
		"message": "Shopping list item created successfully",
	}, nil
}

// updateShoppingListItemTool edits an existing shopping list item.
type updateShoppingListItemTool struct {
	client *mealie.Client
}

// UpdateShoppingListItem constructs the tool.
func UpdateShoppingListItem(client *mealie.Client) *updateShoppingListItemTool {
	return &updateShoppingListItemTool{client: client}
}

func (t *updateShoppingListItemTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "update_shopping_list_item",
		Description: "Update a shopping list item's text, quantity, or checked state.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"item_id":  {Type: "string", Description: "The ID of the shopping list item to update"},
				"note":     {Type: "string"},
				"quantity": {Type: "number", Minimum: protocol.Float(0)},
				"checked":  {Type: "boolean"},
			},
			Required:             []string{"item_id"},
			AdditionalProperties: false,
		},
		OutputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"success": {Type: "boolean"},
				"id":      {Type: "string"},
				"checked": {Type: "boolean"},
				"message": {Type: "string"},
			},
			Required: []string{"id"},
		},
	}
}

func (t *updateShoppingListItemTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	fields := map[string]any{}
	if v := stringArg(args, "note"); v != "" {
		fields["note"] = v
	}
	if v := floatArgPtr(args, "quantity"); v != nil {
		fields["quantity"] = *v
	}
	if v, ok := args["checked"].(bool); ok {
		fields["checked"] = v
	}

	item, err := t.client.UpdateShoppingListItem(ctx, stringArg(args, "item_id"), fields)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"id":      item.ID,
		"checked": item.Checked,
		"message": "Shopping list item updated successfully",
	}, nil
}

// deleteShoppingListItemTool removes a shopping list item.
type deleteShoppingListItemTool struct {
	client *mealie.Client
}

// DeleteShoppingListItem constructs the tool.
func DeleteShoppingListItem(client *mealie.Client) *deleteShoppingListItemTool {
	return &deleteShoppingListItemTool{client: client}
}

func (t *deleteShoppingListItemTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "delete_shopping_list_item",
		Description: "Delete a shopping list item by its ID.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"item_id": {Type: "string", Description: "The ID of the shopping list item to delete"},
			},
			Required:             []string{"item_id"},
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

func (t *deleteShoppingListItemTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	itemID := stringArg(args, "item_id")
	if err := t.client.DeleteShoppingListItem(ctx, itemID); err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Shopping list item %q deleted successfully", itemID),
	}, nil
}
