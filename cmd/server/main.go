package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/inkvoice/inkvoice/internal/config"
	"github.com/inkvoice/inkvoice/internal/server"
	"github.com/inkvoice/inkvoice/internal/service"
	"github.com/inkvoice/inkvoice/internal/storage/sqlite"
	"github.com/inkvoice/inkvoice/pkg/logging"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	logging.Setup()
	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	srv := server.New(cfg, service.NewInvoiceService(store))

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
