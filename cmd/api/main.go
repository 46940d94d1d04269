package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/database"
	apiHttp "github.com/MrJamesThe3rd/ledgerbridge/internal/http"
	importHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/importcsv"
	ledgerHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/ledger"
	presetHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/preset"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger/actual"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/preset"
	presetStore "github.com/MrJamesThe3rd/ledgerbridge/internal/preset/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		connector     = actual.NewConnector(cfg.Ledger.Timeout)
		importService = importer.NewService(connector)
	)

	var presetService *preset.Service

	if cfg.Presets.Enabled {
		db, err := openDatabase(cfg)
		if err != nil {
			slog.Error("failed to set up database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		presetService = preset.NewService(presetStore.New(db))
	}

	var (
		importH = importHandler.NewHandler(importService, presetService, cfg.Ledger, cfg.Upload.MaxBytes)
		ledgerH = ledgerHandler.NewHandler(connector, cfg.Ledger)
		presetH *presetHandler.Handler
	)

	if presetService != nil {
		presetH = presetHandler.NewHandler(presetService)
	}

	router := apiHttp.New(apiHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}, importH, ledgerH, presetH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port, "presets", cfg.Presets.Enabled)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
