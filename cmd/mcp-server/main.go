package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/mealie-mcp/mealie-mcp-server/internal/app"
	"github.com/mealie-mcp/mealie-mcp-server/internal/config"
	"github.com/mealie-mcp/mealie-mcp-server/internal/logging"
)

func main() {
	_ = godotenv.Load()

	httpAddr := flag.String("http", "", "MCP HTTP listen address (overrides MCP_HTTP_ADDR, e.g. :3333)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	logger, cleanup, err := logging.New("mcp-server", cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging error: %v", err)
	}
	defer cleanup()

	if err := app.RunHTTP(cfg, logger); err != nil {
		logger.Fatalf("MCP server error: %v", err)
	}
}
