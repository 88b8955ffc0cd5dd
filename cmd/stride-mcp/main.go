// Command stride-mcp serves workout data over MCP on stdio. It can talk to
// a remote stride server (default) or directly to the database.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stridefit/stride/internal/ai"
	"github.com/stridefit/stride/internal/client"
	"github.com/stridefit/stride/internal/config"
	"github.com/stridefit/stride/internal/mcp"
	"github.com/stridefit/stride/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "stride server base URL (remote mode)")
	apiKey := flag.String("api-key", os.Getenv("STRIDE_AUTH_API_KEY"), "API key for the stride server")
	configPath := flag.String("config", "", "config file for direct database mode")
	userID := flag.String("user", "local", "user ID to scope workout queries to")
	flag.Parse()

	// Logs go to stderr; stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	var coach ai.Coach

	switch {
	case *serverURL != "":
		c := client.New(*serverURL, *apiKey)
		ds = mcp.NewRemote(c)
		coach = c
		log.Info("remote mode", "server", *serverURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		ctx := context.Background()
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		if cfg.AI.APIKey != "" {
			model := cfg.AI.Model
			if model == "" {
				model = ai.DefaultModel
			}
			coach, err = ai.NewGeminiCoach(ctx, cfg.AI.APIKey, model)
			if err != nil {
				log.Error("failed to create AI coach", "error", err)
				os.Exit(1)
			}
		}
		log.Info("direct database mode")
	default:
		log.Error("either -server or -config is required")
		os.Exit(1)
	}

	s := mcp.New(ds, coach, Version, log)

	stdio := mcpserver.NewStdioServer(s)
	stdio.SetContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, *userID)
	})
	if err := stdio.Listen(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
