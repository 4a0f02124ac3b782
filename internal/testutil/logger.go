package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. Services require
// a non-nil logger; tests pass this to keep output quiet.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
