package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tnrsteel/internal/buyers"
	"tnrsteel/internal/chat"
	"tnrsteel/internal/commons"
	"tnrsteel/internal/config"
	"tnrsteel/internal/infrastructure/logger"
	"tnrsteel/internal/infrastructure/mysql"
	"tnrsteel/internal/materials"
	"tnrsteel/internal/requests"
	"tnrsteel/internal/sales"
	"tnrsteel/internal/server"
	"tnrsteel/internal/stock"
)

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	router := server.NewRouter(server.Controllers{
		Sales:     sales.NewModule(db, cfg, zapLogger),
		Materials: materials.NewModule(db, zapLogger),
		Requests:  requests.NewModule(db, zapLogger),
		Stock:     stock.NewModule(db, zapLogger),
		Buyers:    buyers.NewModule(db, zapLogger),
		Chat:      chat.NewModule(db, zapLogger),
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
