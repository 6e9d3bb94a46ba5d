package main

import (
	"github.com/joho/godotenv"

	"github.com/jengzang/cellmap-backend-go/internal/api"
	"github.com/jengzang/cellmap-backend-go/internal/config"
	"github.com/jengzang/cellmap-backend-go/internal/database"
	"github.com/jengzang/cellmap-backend-go/internal/repository"
	"github.com/jengzang/cellmap-backend-go/internal/service"
	"github.com/jengzang/cellmap-backend-go/internal/store"
	"github.com/jengzang/cellmap-backend-go/pkg/logger"
	"github.com/jengzang/cellmap-backend-go/pkg/logger/console"
)

func main() {
	// A missing .env file is fine, the environment wins anyway
	godotenv.Load()

	cfg := config.Load()
	logger.Init(console.New(console.Params{Debug: cfg.Debug}))

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	sites := store.NewSites()
	sessions := store.NewSessions()
	loader := service.NewLoader(sites, sessions)

	if cfg.DataDir != "" {
		batch, err := loader.LoadDirectory(cfg.DataDir)
		if err != nil {
			logger.Fatal("failed to preload data directory", "dir", cfg.DataDir, "error", err)
		}
		logger.Info("data directory preloaded", "dir", cfg.DataDir,
			"files", len(batch.Files), "failed", batch.NumFailed, "results", batch.NumResults)
	}

	router := api.SetupRouter(api.Dependencies{
		Config:    cfg,
		Sites:     sites,
		Sessions:  sessions,
		Loader:    loader,
		Snapshots: repository.NewSnapshotRepository(database.GetDB()),
	})

	logger.Info("server starting", "port", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
}
