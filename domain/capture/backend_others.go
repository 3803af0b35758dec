//go:build !windows

package capture

import (
	"fmt"
	"log/slog"
)

func platformBackend(name string, logger *slog.Logger) (Backend, error) {
	return nil, fmt.Errorf("capture: unknown backend %q", name)
}
