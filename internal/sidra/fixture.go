package sidra

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"ipcacli/internal/errors"
)

// LoadFixture reads a locally stored /values payload. It is the offline
// source used when the pipeline runs without --live.
func LoadFixture(ctx context.Context, path string, logger *slog.Logger) ([]RawRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "Loading local fixture", slog.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to read fixture file", err).
			WithContext("path", path)
	}

	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewParsingError("fixture file is not a valid /values payload", err).
			WithContext("path", path)
	}

	if len(records) < 2 {
		return nil, errors.NewParsingError("fixture payload is empty", nil).
			WithContext("path", path)
	}

	return records, nil
}
