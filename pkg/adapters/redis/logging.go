package redis

import (
	"context"
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"
)

// LogAdapter forwards go-redis client diagnostics (dial failures, pool
// events) to a structured logger at DEBUG.
type LogAdapter struct {
	Logger *slog.Logger
}

func (a LogAdapter) Printf(ctx context.Context, format string, v ...any) {
	a.Logger.DebugContext(ctx, fmt.Sprintf(format, v...), "component", "redis")
}

// SetLogger replaces the go-redis default stderr logger for the whole process.
func SetLogger(logger *slog.Logger) {
	backend.SetLogger(LogAdapter{Logger: logger})
}
