package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mealie-mcp/mealie-mcp-server/internal/fault"
	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
	"github.com/mealie-mcp/mealie-mcp-server/internal/protocol"
)

// 10 MiB cap on fetched images keeps a hostile URL from ballooning memory.
const maxImageBytes = 10 * 1024 * 1024

func imageOutputSchema() *protocol.JSONSchema {
	return &protocol.JSONSchema{
		Type: "object",
		Properties: map[string]protocol.JSONSchema{
			"success": {Type: "boolean"},
			"slug":    {Type: "string"},
			"message": {Type: "string"},
		},
		Required: []string{"success", "slug"},
	}
}

// uploadRecipeImageTool fetches an image from a URL and attaches it to a recipe.
type uploadRecipeImageTool struct {
	client  *mealie.Client
	fetcher *http.Client
}

// UploadRecipeImage constructs the tool.
func UploadRecipeImage(client *mealie.Client) *uploadRecipeImageTool {
	return &uploadRecipeImageTool{
		client:  client,
		fetcher: &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *uploadRecipeImageTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "upload_recipe_image",
		Description: "Download an image from a URL and set it as a recipe's image.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"slug":      {Type: "string", Description: "The recipe slug to upload the image to"},
				"image_url": {Type: "string", Description: "URL of the image to download and upload"},
			},
			Required:             []string{"slug", "image_url"},
			AdditionalProperties: false,
		},
		OutputSchema: imageOutputSchema(),
	}
}

func (t *uploadRecipeImageTool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	slug := stringArg(args, "slug")
	imageURL := stringArg(args, "image_url")

	data, err := t.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	if err := t.client.UploadRecipeImage(ctx, slug, imageFilename(imageURL), data); err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"slug":    slug,
		"message": fmt.Sprintf("Image uploaded successfully to recipe %q", slug),
	}, nil
}

func (t *uploadRecipeImageTool) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fault.Validation("image_url", "not a valid URL")
	}
	resp, err := t.fetcher.Do(req)
	if err != nil {
		return nil, fault.Transport("fetch image: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fault.Transport("fetch image: status %d from %s", resp.StatusCode, imageURL)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fault.Transport("fetch image: %v", err)
	}
	if len(data) > maxImageBytes {
		return nil, fault.Validation("image_url", "image exceeds the 10 MiB limit")
	}
	return data, nil
}

// imageFilename derives an upload filename from the URL path, falling back to
// a PNG name when the extension is unrecognized.
func imageFilename(imageURL string) string {
	name := imageURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	lower := strings.ToLower(name)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return name
		}
	}
	return "recipe_image.png"
}

// uploadRecipeImageBase64Tool attaches an inline base64 image to a recipe.
type uploadRecipeImageBase64Tool struct {
	client *mealie.Client
}

// UploadRecipeImageBase64 constructs the tool.
func UploadRecipeImageBase64(client *mealie.Client) *uploadRecipeImageBase64Tool {
	return &uploadRecipeImageBase64Tool{client: client}
}

func (t *uploadRecipeImageBase64Tool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "upload_recipe_image_base64",
		Description: "Upload a base64-encoded image and set it as a recipe's image.",
		InputSchema: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"slug":         {Type: "string", Description: "The recipe slug to upload the image to"},
				"image_base64": {Type: "string", Description: "Base64-encoded image data"},
				"filename":     {Type: "string", Description: "Filename for the image", Default: "recipe.png"},
			},
			Required:             []string{"slug", "image_base64"},
			AdditionalProperties: false,
		},
		OutputSchema: imageOutputSchema(),
	}
}

func (t *uploadRecipeImageBase64Tool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	slug := stringArg(args, "slug")

	data, err := base64.StdEncoding.DecodeString(stringArg(args, "image_base64"))
	if err != nil {
		return nil, fault.Validation("image_base64", "not valid base64 data")
	}

	filename := stringArgOr(args, "filename", "recipe.png")
	if err := t.client.UploadRecipeImage(ctx, slug, filename, data); err != nil {
		return nil, err
	}
	return map[string]any{
		"success": true,
		"slug":    slug,
		"message": fmt.Sprintf("Image uploaded successfully to recipe %q", slug),
	}, nil
}
