package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ipcacli/internal/dataprocessing"
	"ipcacli/internal/errors"
)

// Writer persists dataset artifacts into a single output directory
type Writer struct {
	outDir string
	logger *slog.Logger
}

// NewWriter creates a writer rooted at outDir
func NewWriter(outDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outDir: outDir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options, truncating
// any previous file of the same name
func (w *Writer) WriteCSV(ctx context.Context, filename string, options WriteOptions) error {
	fullPath, err := w.preparePath(filename)
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	file, err := os.Create(fullPath)
	if err != nil {
		return errors.NewStorageError("failed to create CSV file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err).
				WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write CSV headers", err).
				WithContext("path", fullPath)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write CSV record %d", i), err).
				WithContext("path", fullPath)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV file", err).
			WithContext("path", fullPath)
	}

	return nil
}

// WriteObservationsCSV writes observations as delimited text with the
// shared artifact column layout
func (w *Writer) WriteObservationsCSV(ctx context.Context, filename string, rows []dataprocessing.ObservationRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			formatInt(row.Year),
			formatInt(row.Month),
			row.LocalityCode,
			row.Locality,
			row.IndexName,
			row.Unit,
			formatFloat(row.Value),
		})
	}

	return w.WriteCSV(ctx, filename, WriteOptions{
		Headers:   observationHeader,
		Records:   records,
		BOMPrefix: true,
	})
}

// preparePath ensures the output directory exists and returns the full
// artifact path
func (w *Writer) preparePath(filename string) (string, error) {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create output directory", err).
			WithContext("dir", w.outDir)
	}
	return filepath.Join(w.outDir, filename), nil
}
