package main

import (
	"io"
	"log/slog"

	"github.com/groblegark/bingod/internal/store/jsonfile"
)

// openStore opens the local event store for CLI commands. Store-level
// warnings are suppressed; the commands report their own errors.
func openStore() (*jsonfile.Store, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jsonfile.New(dataDir, logger)
}
