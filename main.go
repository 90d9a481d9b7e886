// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"inscovia/cmd"
	"inscovia/internal/ai"
	"inscovia/internal/data/repository"
	"inscovia/internal/notify"
	"inscovia/internal/otp"
	"inscovia/internal/usecase"
	"inscovia/internal/wire"
	"inscovia/pkg/database"
	"inscovia/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// OTP codes live in memory; the sweeper stops with ctx
	otps := otp.NewRegistry(logger, otp.WithTTL(config.OTP.TTL()))
	go otps.Run(ctx, config.OTP.SweepInterval())

	generator, err := ai.NewGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	deps := usecase.Deps{
		OTP:       otps,
		Mailer:    notify.NewMailer(config.Email, logger),
		Generator: generator,
	}

	// Wire all dependencies
	app := wire.Wiring(repos, deps, config, logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
