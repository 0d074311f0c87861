package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"ipcacli/internal/dataprocessing"
	"ipcacli/internal/errors"
)

const sheetName = "IPCA"

// Fixed document properties so reruns produce stable workbook bytes
var workbookProps = excelize.DocProperties{
	Creator:        "ipca-bot",
	Created:        "2024-01-01T00:00:00Z",
	Modified:       "2024-01-01T00:00:00Z",
	LastModifiedBy: "ipca-bot",
}

// WriteWorkbook writes observations as a single-sheet XLSX workbook
func (w *Writer) WriteWorkbook(ctx context.Context, filename string, rows []dataprocessing.ObservationRow) error {
	fullPath, err := w.preparePath(filename)
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Writing workbook",
		slog.String("path", fullPath),
		slog.Int("row_count", len(rows)))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.NewStorageError("failed to name workbook sheet", err)
	}
	if err := f.SetDocProps(&workbookProps); err != nil {
		return errors.NewStorageError("failed to set workbook properties", err)
	}

	header := make([]interface{}, len(observationHeader))
	for i, name := range observationHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write workbook header", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.Year,
			row.Month,
			row.LocalityCode,
			row.Locality,
			row.IndexName,
			row.Unit,
			row.Value,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write workbook row %d", i), err).
				WithContext("path", fullPath)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return errors.NewStorageError("failed to save workbook", err).
			WithContext("path", fullPath)
	}

	return nil
}
