package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/mealie-mcp/mealie-mcp-server/internal/app"
	"github.com/mealie-mcp/mealie-mcp-server/internal/config"
	"github.com/mealie-mcp/mealie-mcp-server/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, cleanup, err := logging.New("mcp-stdio", cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging error: %v", err)
	}
	defer cleanup()

	if err := app.RunStdio(context.Background(), cfg, logger); err != nil {
		logger.Fatalf("MCP stdio server error: %v", err)
	}
}
