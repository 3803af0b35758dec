package main

import (
	"log/slog"
	"os"

	"github.com/soocke/screengrab-go/app"
	"github.com/soocke/screengrab-go/config"
)

func main() {
	// Base config from defaults
	cfg := config.DefaultConfig()

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	application := app.NewApp(cfg, logger)
	if _, err := application.Run(); err != nil {
		logger.Error("capture run failed", "error", err)
		os.Exit(1)
	}
}
