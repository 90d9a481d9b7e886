// Command seed loads the sample training centers into the database.
package main

import (
	"context"
	"log"

	"inscovia/internal/data/repository"
	"inscovia/internal/data/seed"
	"inscovia/pkg/database"
	"inscovia/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	centers := repository.NewCenterRepository(db, logger)

	inserted, skipped := 0, 0
	for _, center := range seed.Centers() {
		exists, err := centers.SlugExists(ctx, center.Slug)
		if err != nil {
			logger.Fatal("Failed to check seed center", zap.Error(err), zap.String("slug", center.Slug))
		}
		if exists {
			skipped++
			continue
		}

		if err := centers.Create(ctx, center); err != nil {
			logger.Fatal("Failed to insert seed center", zap.Error(err), zap.String("slug", center.Slug))
		}
		inserted++
	}

	logger.Info("Seed complete", zap.Int("inserted", inserted), zap.Int("skipped", skipped))
}
