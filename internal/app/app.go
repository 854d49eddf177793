package app

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mealie-mcp/mealie-mcp-server/internal/config"
	"github.com/mealie-mcp/mealie-mcp-server/internal/mcp"
	"github.com/mealie-mcp/mealie-mcp-server/internal/mealie"
	"github.com/mealie-mcp/mealie-mcp-server/internal/tools"
)

// NewServer builds the shared Mealie MCP server: backend client, toolbox,
// and dispatcher. Credentials may be empty; the client reports a
// configuration error on the first tool call instead of failing here.
func NewServer(cfg *config.Config, log *logrus.Entry) (*mcp.Server, error) {
	client := mealie.NewClient(cfg.Credentials(), cfg.Timeout(), log)

	toolbox, err := mcp.NewToolbox(tools.All(client)...)
	if err != nil {
		return nil, err
	}

	// Dispatcher timeout sits above the client's so the client's classified
	// transport error wins over a bare context cancellation.
	dispatcher := mcp.NewDispatcher(toolbox, log, cfg.Timeout()*2)
	return mcp.NewServer(toolbox, dispatcher), nil
}

// RunHTTP starts the MCP HTTP server on the configured address.
func RunHTTP(cfg *config.Config, log *logrus.Entry) error {
	server, err := NewServer(cfg, log)
	if err != nil {
		return err
	}
	return mcp.RunHTTP(server, cfg.HTTPAddr, log)
}

// RunStdio serves MCP over stdin/stdout until the input stream closes.
func RunStdio(ctx context.Context, cfg *config.Config, log *logrus.Entry) error {
	server, err := NewServer(cfg, log)
	if err != nil {
		return err
	}
	return mcp.RunStdio(ctx, server, os.Stdin, os.Stdout, log)
}
