//go:build !windows

package app

import (
	"log/slog"
	"time"
)

func startPlatformDebug(interval time.Duration, logger *slog.Logger) {}
