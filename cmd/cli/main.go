package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerbridge/cmd/cli/internal/command"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger/actual"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	root := command.NewRoot(command.Deps{
		Connector: actual.NewConnector(cfg.Ledger.Timeout),
		Ledger:    cfg.Ledger,
		Confirm:   command.ConfirmPrompt,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
