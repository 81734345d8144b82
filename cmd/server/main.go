package main

import (
	"context"
	"log"
	"net/http"

	"github.com/Manuel080806/TombolaNFC/internal/config"
	"github.com/Manuel080806/TombolaNFC/internal/game"
	"github.com/Manuel080806/TombolaNFC/internal/httpapi"
	"github.com/Manuel080806/TombolaNFC/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Blocks until the database is reachable; only server-reported
	// errors come back.
	st, err := store.Open(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("unrecoverable database error", zap.Error(err))
	}

	ctx := context.Background()
	sess := game.Recover(st, logger)
	g := game.New(ctx, sess, st, logger)

	handler := httpapi.SetupRoutes(g, cfg.PublicDir, logger)

	logger.Info("server listening",
		zap.String("addr", cfg.Addr()),
		zap.String("admin", "http://"+cfg.Addr()+"/admin"),
		zap.String("viewer", "http://"+cfg.Addr()+"/viewer"))
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
