// Package tabular reads and writes the delimited data files lvpca works on.
//
// An input file starts with a header line "points,dimensions" followed by
// one line per point (observation) holding dimensions values. Values are
// comma-separated by default; WithDelimiter('\t') reads tab-separated files.
// Table.Variables turns the parsed rows into the variables × observations
// layout used by package pca.
//
// Results are written one line per observation (Write) or as a parquet file
// (WriteParquet). ProcessedName derives the result path from the input path.
package tabular
