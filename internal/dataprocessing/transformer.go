package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"ipcacli/internal/errors"
	"ipcacli/internal/sidra"
)

// Series metadata for table 1737 variable 63. SIDRA reports these in the
// payload, but footer rows and older fixtures may omit them.
const (
	defaultLocalityCode = "1"
	defaultLocality     = "Brasil"
	defaultUnit         = "%"
	indexName           = "IPCA"
)

// Transformer normalizes raw /values payloads into an ordered Dataset
type Transformer struct {
	logger *slog.Logger
}

// NewTransformer creates a transformer
func NewTransformer(logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{logger: logger}
}

// Normalize converts a raw payload into a Dataset. Non-data rows (the
// descriptive header SIDRA puts at index 0, footnotes, and placeholder
// values such as "..." or "-") are skipped with a warning rather than
// failing the run, since the API routinely interleaves them with real
// observations. Rows are sorted ascending by date; when the payload
// carries the same month more than once the last occurrence wins, because
// SIDRA publishes revisions after the first release.
func (t *Transformer) Normalize(ctx context.Context, records []sidra.RawRecord) (*Dataset, error) {
	byPeriod := make(map[string]ObservationRow, len(records))
	skipped := 0

	for i, record := range records {
		row, err := t.normalizeRecord(record)
		if err != nil {
			skipped++
			t.logger.WarnContext(ctx, "Skipping non-data row",
				slog.Int("index", i),
				slog.String("period", record.PeriodCode),
				slog.String("value", record.Value),
				slog.String("reason", err.Error()))
			continue
		}

		// Keep-last dedupe: later records supersede earlier ones
		byPeriod[row.Period()] = row
	}

	if len(byPeriod) == 0 {
		return nil, errors.NewParsingError("payload contains no parseable observations", nil).
			WithContext("record_count", len(records)).
			WithContext("skipped", skipped)
	}

	rows := make([]ObservationRow, 0, len(byPeriod))
	for _, row := range byPeriod {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].before(rows[j])
	})

	t.logger.InfoContext(ctx, "Payload normalized",
		slog.Int("observations", len(rows)),
		slog.Int("skipped_rows", skipped),
		slog.String("first_period", rows[0].Period()),
		slog.String("last_period", rows[len(rows)-1].Period()))

	return &Dataset{Rows: rows}, nil
}

// normalizeRecord converts one raw record, reporting why it cannot be a
// data row
func (t *Transformer) normalizeRecord(record sidra.RawRecord) (ObservationRow, error) {
	year, month, err := parsePeriod(record.PeriodCode)
	if err != nil {
		return ObservationRow{}, err
	}

	value, err := parseValue(record.Value)
	if err != nil {
		return ObservationRow{}, err
	}

	row := ObservationRow{
		Year:         year,
		Month:        month,
		LocalityCode: record.LocalityCode,
		Locality:     record.LocalityName,
		IndexName:    indexName,
		Unit:         record.UnitName,
		Value:        value,
	}
	if row.LocalityCode == "" {
		row.LocalityCode = defaultLocalityCode
	}
	if row.Locality == "" {
		row.Locality = defaultLocality
	}
	if row.Unit == "" {
		row.Unit = defaultUnit
	}

	return row, nil
}

// parsePeriod parses a SIDRA period code (YYYYMM) into year and month
func parsePeriod(period string) (int, int, error) {
	if len(period) < 6 {
		return 0, 0, fmt.Errorf("period %q is not YYYYMM", period)
	}

	year, err := strconv.Atoi(period[:4])
	if err != nil {
		return 0, 0, fmt.Errorf("period %q has a non-numeric year", period)
	}

	month, err := strconv.Atoi(period[4:6])
	if err != nil {
		return 0, 0, fmt.Errorf("period %q has a non-numeric month", period)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("period %q has month out of range", period)
	}

	return year, month, nil
}

// parseValue parses a string-encoded decimal, normalizing the Brazilian
// decimal comma to a decimal point
func parseValue(raw string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if cleaned == "" {
		return 0, fmt.Errorf("value is empty")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not numeric", raw)
	}

	return value, nil
}
