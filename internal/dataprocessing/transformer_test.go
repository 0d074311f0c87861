package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipcacli/internal/errors"
	"ipcacli/internal/sidra"
)

func observation(period, value string) sidra.RawRecord {
	return sidra.RawRecord{
		LocalityCode: "1",
		LocalityName: "Brasil",
		VariableCode: "63",
		VariableName: "IPCA - Variação mensal",
		PeriodCode:   period,
		UnitCode:     "2",
		UnitName:     "%",
		Value:        value,
	}
}

// headerRecord mimics the descriptive row SIDRA places at index 0
func headerRecord() sidra.RawRecord {
	return sidra.RawRecord{
		LocalityCode: "Brasil (Código)",
		LocalityName: "Brasil",
		PeriodCode:   "Mês (Código)",
		PeriodName:   "Mês",
		Value:        "Valor",
	}
}

func TestTransformer_Normalize(t *testing.T) {
	tr := NewTransformer(nil)

	records := []sidra.RawRecord{
		headerRecord(),
		observation("202402", "0,83"),
		observation("202401", "0,42"),
		observation("202403", "0,16"),
	}

	dataset, err := tr.Normalize(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, 3, dataset.Len())

	// Sorted ascending regardless of payload order
	assert.Equal(t, "2024-01", dataset.Rows[0].Period())
	assert.Equal(t, "2024-02", dataset.Rows[1].Period())
	assert.Equal(t, "2024-03", dataset.Rows[2].Period())

	assert.InDelta(t, 0.42, dataset.Rows[0].Value, 1e-9)
	assert.Equal(t, "Brasil", dataset.Rows[0].Locality)
	assert.Equal(t, "IPCA", dataset.Rows[0].IndexName)
	assert.Equal(t, "%", dataset.Rows[0].Unit)
}

func TestTransformer_DecimalComma(t *testing.T) {
	tr := NewTransformer(nil)

	tests := []struct {
		raw      string
		expected float64
	}{
		{"5,28", 5.28},
		{"0,42", 0.42},
		{"-0,68", -0.68},
		{"1.25", 1.25},
		{"10", 10},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			dataset, err := tr.Normalize(context.Background(), []sidra.RawRecord{
				observation("202401", tt.raw),
			})
			require.NoError(t, err)
			require.Equal(t, 1, dataset.Len())
			assert.InDelta(t, tt.expected, dataset.Rows[0].Value, 1e-9)
		})
	}
}

func TestTransformer_SkipsNonDataRows(t *testing.T) {
	tr := NewTransformer(nil)

	records := []sidra.RawRecord{
		headerRecord(),
		observation("202401", "0,42"),
		observation("202402", "..."), // placeholder for unavailable data
		observation("202403", "-"),
		observation("", "0,55"),       // footnote without a period
		observation("2024", "0,55"),   // truncated period
		observation("209913", "0,55"), // month out of range
		observation("202404", "0,38"),
	}

	dataset, err := tr.Normalize(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, 2, dataset.Len())
	assert.Equal(t, "2024-01", dataset.Rows[0].Period())
	assert.Equal(t, "2024-04", dataset.Rows[1].Period())
}

func TestTransformer_DeduplicatesKeepLast(t *testing.T) {
	tr := NewTransformer(nil)

	records := []sidra.RawRecord{
		observation("202401", "0,42"),
		observation("202402", "0,80"),
		observation("202402", "0,83"), // revision supersedes first release
	}

	dataset, err := tr.Normalize(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, 2, dataset.Len())

	assert.Equal(t, "2024-02", dataset.Rows[1].Period())
	assert.InDelta(t, 0.83, dataset.Rows[1].Value, 1e-9)
}

func TestTransformer_SortedNoDuplicates(t *testing.T) {
	tr := NewTransformer(nil)

	// Shuffled payload spanning a year boundary with duplicates
	records := []sidra.RawRecord{
		observation("202312", "0,56"),
		observation("202402", "0,83"),
		observation("202311", "0,28"),
		observation("202401", "0,42"),
		observation("202312", "0,57"),
	}

	dataset, err := tr.Normalize(context.Background(), records)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i, row := range dataset.Rows {
		if i > 0 {
			assert.True(t, dataset.Rows[i-1].before(row),
				"rows must be strictly ascending at index %d", i)
		}
		assert.False(t, seen[row.Period()], "duplicate period %s", row.Period())
		seen[row.Period()] = true
	}
}

func TestTransformer_NoValidRows(t *testing.T) {
	tr := NewTransformer(nil)

	_, err := tr.Normalize(context.Background(), []sidra.RawRecord{
		headerRecord(),
		observation("202401", "..."),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeParsing, errors.TypeOf(err))
}

func TestTransformer_FillsSeriesDefaults(t *testing.T) {
	tr := NewTransformer(nil)

	record := sidra.RawRecord{PeriodCode: "202401", Value: "0,42"}
	dataset, err := tr.Normalize(context.Background(), []sidra.RawRecord{record})
	require.NoError(t, err)

	row := dataset.Rows[0]
	assert.Equal(t, "1", row.LocalityCode)
	assert.Equal(t, "Brasil", row.Locality)
	assert.Equal(t, "%", row.Unit)
}

func TestDataset_Window(t *testing.T) {
	rows := make([]ObservationRow, 0, 30)
	for i := 0; i < 30; i++ {
		rows = append(rows, ObservationRow{Year: 2022 + i/12, Month: i%12 + 1, Value: float64(i)})
	}
	dataset := &Dataset{Rows: rows}

	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{"smaller than series", 24, 24},
		{"equal to series", 30, 30},
		{"larger than series", 48, 30},
		{"single row", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := dataset.Window(tt.n)
			require.Len(t, window, tt.wantLen)

			// Always a suffix of the full series
			assert.Equal(t, dataset.Rows[len(dataset.Rows)-tt.wantLen:], window)
		})
	}
}

func TestDataset_WindowSharesBackingArray(t *testing.T) {
	dataset := &Dataset{Rows: []ObservationRow{
		{Year: 2024, Month: 1, Value: 0.42},
		{Year: 2024, Month: 2, Value: 0.83},
	}}

	window := dataset.Window(1)
	require.Len(t, window, 1)
	assert.Same(t, &dataset.Rows[1], &window[0])
}
