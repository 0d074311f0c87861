package config

// Output artifact file names. The names are fixed so reruns overwrite the
// previous run's artifacts in place.
const (
	FullParquetFile   = "ipca.parquet"
	CleanParquetFile  = "ipca_limpo.parquet"
	WindowParquetFile = "ipca_ultimos_24m.parquet"
	WindowCSVFile     = "ipca_ultimos_24m.csv"
	WorkbookFile      = "ipca.xlsx"
)

// FixtureFileName is the bundled offline sample of a SIDRA /values payload.
const FixtureFileName = "sample_ipca.json"
