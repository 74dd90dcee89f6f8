// Package exporter writes the pipeline's output artifacts: the enriched
// joined table and each aggregate series as UTF-8 CSV (with BOM for Excel),
// and the fixed set of chart artifacts as a single xlsx workbook with one
// embedded chart per series.
//
// Exporters are external consumers of the already-cleaned dataset. They are
// stateless transformations: nothing written here feeds back into the
// pipeline, and a failed write surfaces as a STORAGE error that aborts the
// run.
package exporter
