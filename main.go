package main

import (
	"flag"
	"log"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/app"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/configwatcher"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/database"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/logger"

	"go.uber.org/zap"
)

// @title Silver Edge Academy API
// @version 1.0
// @description Course content management backend for the Silver Edge Academy learning platform.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "./configs", "directory containing config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	if cfg.MigrateOnly {
		if _, err := database.InitDB(&cfg.Database); err != nil {
			logger.Log.Fatal("migration failed", zap.Error(err))
		}
		logger.Log.Info("migration complete")
		return
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Log.Fatal("startup failed", zap.Error(err))
	}

	go configwatcher.WatchConfig(*configPath+"/config.yaml", cfg, func(newCfg interface{}) {
		logger.Log.Info("configuration reloaded")
	})

	if err := a.Run(); err != nil {
		logger.Log.Fatal("shutdown failed", zap.Error(err))
	}
}
