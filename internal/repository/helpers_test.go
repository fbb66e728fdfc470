package repository_test

import (
	"log/slog"

	"fan_showcase/internal/lib/logger/handlers/slogdiscard"
)

func discardLogger() *slog.Logger {
	return slogdiscard.NewDiscardLogger()
}
