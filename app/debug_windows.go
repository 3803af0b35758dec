//go:build windows

package app

import (
	"log/slog"
	"time"

	"github.com/soocke/screengrab-go/debug"
)

func startPlatformDebug(interval time.Duration, logger *slog.Logger) {
	debug.StartMemLogger(interval, logger)
}
