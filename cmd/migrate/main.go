package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
)

func main() {
	action := flag.String("action", "up", "migration action: up, down or version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigration(*action, cfg.DatabaseURL()); err != nil {
		slog.Error("Migration failed", "action", *action, "error", err)
		os.Exit(1)
	}
}
