package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/elee1766/coursechat/src/agent"
	"github.com/elee1766/coursechat/src/api"
	"github.com/elee1766/coursechat/src/config"
	"github.com/elee1766/coursechat/src/coursetools"
	"github.com/elee1766/coursechat/src/oaiclient"
	"github.com/elee1766/coursechat/src/rag"
	"github.com/elee1766/coursechat/src/session"
	"github.com/elee1766/coursechat/src/storage"
)

// loadConfig loads the config file and applies top-level CLI overrides.
func loadConfig(cli *CLI) (*config.Config, error) {
	path := cli.Config
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cli.APIKey != "" {
		cfg.API.Key = cli.APIKey
	}
	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}
	if cli.Model != "" {
		cfg.API.Model = cli.Model
	}
	return cfg, nil
}

// openStorage opens the catalog database, creating its directory first.
func openStorage(cfg *config.Config) (*storage.DB, error) {
	dir := filepath.Dir(cfg.RAG.DatabasePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return storage.Open(cfg.RAG.DatabasePath)
}

// buildSystem assembles the full question-answering pipeline.
func buildSystem(cfg *config.Config, db *storage.DB, logger *slog.Logger) (*rag.System, error) {
	if cfg.API.Key == "" {
		return nil, fmt.Errorf("no API key configured, set OPENAI_API_KEY or api.key")
	}

	model := oaiclient.NewClient(oaiclient.Config{
		APIKey:  cfg.API.Key,
		BaseURL: cfg.API.BaseURL,
		Model:   cfg.API.Model,
		Logger:  logger,
	})

	toolbox := agent.NewToolbox()
	toolbox.RegisterMiddleware(agent.LoggingMiddleware(logger))
	if err := coursetools.RegisterAll(toolbox, db, cfg.RAG.MaxResults); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return &rag.System{
		Generator: &agent.Generator{
			Model:     model,
			Toolbox:   toolbox,
			MaxTokens: cfg.API.MaxTokens,
			Logger:    logger,
		},
		Sessions: session.NewStore(cfg.RAG.MaxHistory),
		Catalog:  db,
		Logger:   logger,
	}, nil
}

// buildServer wraps the system in the HTTP API.
func buildServer(cfg *config.Config, sys *rag.System, logger *slog.Logger) (*api.Server, error) {
	return api.NewServer(api.ServerConfig{
		Logger:      logger,
		System:      sys,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
}
