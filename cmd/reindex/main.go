// Command reindex rebuilds the package search index from Postgres.
// Run it after index loss, a mapping change, or a bulk catalog import.
package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"ceylontours/internal/cache"
	"ceylontours/internal/config"
	"ceylontours/internal/database"
	"ceylontours/internal/logger"
	"ceylontours/internal/repository"
	"ceylontours/internal/search"
	"ceylontours/internal/service"
)

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "overall reindex deadline")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting package reindex")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	searchClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	valkeyClient, err := cache.NewValkeyClient(cfg.Cache)
	if err != nil {
		slog.Warn("Valkey unavailable, stale listing cache entries will expire on their own", "error", err)
		valkeyClient = nil
	} else {
		defer valkeyClient.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	packages := service.NewPackageService(repository.NewPackageRepository(db), searchClient, valkeyClient)

	indexed, err := packages.Reindex(ctx)
	if err != nil {
		logger.Fatal("Reindex failed", "error", err, "indexed", indexed)
	}

	if valkeyClient != nil {
		valkeyClient.InvalidatePackagesList(ctx)
	}

	slog.Info("Reindex complete", "indexed", indexed)
}
