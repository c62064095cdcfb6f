// SPDX-License-Identifier: MIT

package tabular

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// ScoreRow is the parquet record for one projected observation.
type ScoreRow struct {
	Observation int64     `parquet:"observation"`
	Scores      []float64 `parquet:"scores,list"`
}

// WriteParquet stores rows (one slice per observation) as a parquet file
// with an observation index column and a list column of scores.
func WriteParquet(w io.Writer, rows [][]float64) error {
	records := make([]ScoreRow, len(rows))
	for i, row := range rows {
		records[i] = ScoreRow{Observation: int64(i), Scores: append([]float64(nil), row...)}
	}
	if err := parquet.Write(w, records); err != nil {
		return fmt.Errorf("tabular: write parquet: %w", err)
	}

	return nil
}

// ReadParquet loads rows written by WriteParquet, ordered by observation.
// Errors: ErrMalformed when an observation index is missing or repeated.
func ReadParquet(r io.ReaderAt, size int64) ([][]float64, error) {
	records, err := parquet.Read[ScoreRow](r, size)
	if err != nil {
		return nil, fmt.Errorf("tabular: read parquet: %w", err)
	}
	rows := make([][]float64, len(records))
	for _, rec := range records {
		idx := rec.Observation
		if idx < 0 || idx >= int64(len(rows)) || rows[idx] != nil {
			return nil, fmt.Errorf("observation %d: %w", idx, ErrMalformed)
		}
		rows[idx] = rec.Scores
		if rows[idx] == nil {
			rows[idx] = []float64{}
		}
	}

	return rows, nil
}
