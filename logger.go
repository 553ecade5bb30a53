package salvia

import (
	"log/slog"

	"github.com/swraster/salvia/internal/obslog"
)

// SetLogger configures the logger used by the rasterizer and its
// subpackages. By default, salvia produces no log output.
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	obslog.Set(l)
}

// Logger returns the currently configured logger.
func Logger() *slog.Logger {
	return obslog.Get()
}
