package dataprocessing

import "fmt"

// ObservationRow is one cleaned IPCA observation
type ObservationRow struct {
	Year         int
	Month        int
	LocalityCode string
	Locality     string
	IndexName    string
	Unit         string
	Value        float64
}

// Period returns the canonical YYYY-MM representation of the row's date
func (r ObservationRow) Period() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// before reports whether r precedes other in calendar order
func (r ObservationRow) before(other ObservationRow) bool {
	if r.Year != other.Year {
		return r.Year < other.Year
	}
	return r.Month < other.Month
}

// Dataset is the full ordered IPCA series. Rows are sorted ascending by
// (year, month) and contain no duplicate dates.
type Dataset struct {
	Rows []ObservationRow
}

// Len returns the number of observations in the dataset
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Window returns the trailing n observations as a view over the same
// backing array. When the dataset holds fewer than n rows the whole
// series is returned.
func (d *Dataset) Window(n int) []ObservationRow {
	if n >= len(d.Rows) {
		return d.Rows
	}
	return d.Rows[len(d.Rows)-n:]
}
