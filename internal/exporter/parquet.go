package exporter

import (
	"context"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"

	"ipcacli/internal/dataprocessing"
	"ipcacli/internal/errors"
)

// parquetRow is the columnar layout of one observation. Column names
// follow the series' published schema.
type parquetRow struct {
	Ano              int32   `parquet:"ano"`
	Mes              int32   `parquet:"mes"`
	LocalidadeCodigo string  `parquet:"localidade_codigo"`
	Localidade       string  `parquet:"localidade"`
	Indice           string  `parquet:"indice"`
	Unidade          string  `parquet:"unidade"`
	Valor            float64 `parquet:"valor"`
}

// WriteParquet writes observations to a parquet file in the output
// directory, replacing any previous artifact of the same name
func (w *Writer) WriteParquet(ctx context.Context, filename string, rows []dataprocessing.ObservationRow) error {
	fullPath, err := w.preparePath(filename)
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Writing parquet file",
		slog.String("path", fullPath),
		slog.Int("row_count", len(rows)))

	file, err := os.Create(fullPath)
	if err != nil {
		return errors.NewStorageError("failed to create parquet file", err).
			WithContext("path", fullPath)
	}

	pw := parquet.NewGenericWriter[parquetRow](file)
	if _, err := pw.Write(toParquetRows(rows)); err != nil {
		file.Close()
		return errors.NewStorageError("failed to write parquet rows", err).
			WithContext("path", fullPath)
	}
	if err := pw.Close(); err != nil {
		file.Close()
		return errors.NewStorageError("failed to finalize parquet file", err).
			WithContext("path", fullPath)
	}

	if err := file.Close(); err != nil {
		return errors.NewStorageError("failed to close parquet file", err).
			WithContext("path", fullPath)
	}

	return nil
}

// ReadParquet reads a parquet artifact back into observation rows
func ReadParquet(path string) ([]dataprocessing.ObservationRow, error) {
	parquetRows, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, errors.NewStorageError("failed to read parquet file", err).
			WithContext("path", path)
	}

	rows := make([]dataprocessing.ObservationRow, 0, len(parquetRows))
	for _, pr := range parquetRows {
		rows = append(rows, dataprocessing.ObservationRow{
			Year:         int(pr.Ano),
			Month:        int(pr.Mes),
			LocalityCode: pr.LocalidadeCodigo,
			Locality:     pr.Localidade,
			IndexName:    pr.Indice,
			Unit:         pr.Unidade,
			Value:        pr.Valor,
		})
	}
	return rows, nil
}

func toParquetRows(rows []dataprocessing.ObservationRow) []parquetRow {
	out := make([]parquetRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, parquetRow{
			Ano:              int32(row.Year),
			Mes:              int32(row.Month),
			LocalidadeCodigo: row.LocalityCode,
			Localidade:       row.Locality,
			Indice:           row.IndexName,
			Unidade:          row.Unit,
			Valor:            row.Value,
		})
	}
	return out
}
