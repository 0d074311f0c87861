// Package exporter persists normalized IPCA datasets to the output
// directory.
//
// Three artifact formats are supported:
//
// Parquet: typed columnar files written with parquet-go, one row per
// monthly observation. ReadParquet reads an artifact back for
// verification.
//
// CSV: delimited text with a UTF-8 BOM so spreadsheet tools pick up the
// encoding.
//
// XLSX: a single-sheet workbook for manual inspection.
//
// Writes are idempotent: given the same dataset, rerunning the pipeline
// overwrites each artifact with byte-equivalent content.
package exporter
