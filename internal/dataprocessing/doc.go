// Package dataprocessing normalizes raw SIDRA /values payloads into an
// ordered monthly dataset.
//
// The transformer parses period codes (YYYYMM) and string-encoded decimal
// values (handling the Brazilian decimal comma), skips the non-data rows
// the API interleaves with observations, sorts the series ascending by
// date, and deduplicates by month keeping the last occurrence.
//
// Basic usage:
//
//	transformer := dataprocessing.NewTransformer(logger)
//	dataset, err := transformer.Normalize(ctx, records)
//	if err != nil {
//	    return err
//	}
//	last24 := dataset.Window(24)
package dataprocessing
