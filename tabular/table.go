// SPDX-License-Identifier: MIT

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformed is returned for a header or row that does not follow the
// points,dimensions table layout.
var ErrMalformed = errors.New("tabular: malformed table")

// processedSuffix is inserted before the extension of result files.
const processedSuffix = "_processed"

// Table is a parsed data file: Rows holds one slice per observation (point),
// each with Dimensions values.
type Table struct {
	Points     int
	Dimensions int
	Rows       [][]float64
}

// Variables returns the table transposed to variables × observations, the
// orientation package pca works in. The result never aliases Rows.
func (t *Table) Variables() [][]float64 {
	out := make([][]float64, t.Dimensions)
	for v := range out {
		out[v] = make([]float64, t.Points)
		for p := range t.Rows {
			out[v][p] = t.Rows[p][v]
		}
	}

	return out
}

// Read parses a table: a header line "points,dimensions" followed by one
// line of dimensions values per point.
// Errors: ErrMalformed (bad header, wrong field count, unparsable or
// non-finite value, missing or extra rows), or the reader's error.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	o := gatherOptions(opts...)
	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header: %w", ErrMalformed)
	}
	if err != nil {
		return nil, malformed(err)
	}
	points, dims, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	t := &Table{Points: points, Dimensions: dims, Rows: make([][]float64, 0, points)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}
		line, _ := cr.FieldPos(0)
		if len(t.Rows) == points {
			return nil, fmt.Errorf("line %d: more than %d rows: %w", line, points, ErrMalformed)
		}
		if len(rec) != dims {
			return nil, fmt.Errorf("line %d: %d values, want %d: %w", line, len(rec), dims, ErrMalformed)
		}
		row := make([]float64, dims)
		for j, field := range rec {
			if row[j], err = parseValue(field); err != nil {
				return nil, fmt.Errorf("line %d, field %d: %w", line, j+1, err)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Rows) != points {
		return nil, fmt.Errorf("%d rows, header announced %d: %w", len(t.Rows), points, ErrMalformed)
	}

	return t, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Write emits one delimited line per row. With WithHeader the output starts
// with "len(rows),len(rows[0])" so Read can parse it back.
func Write(w io.Writer, rows [][]float64, opts ...Option) error {
	o := gatherOptions(opts...)
	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter

	if o.header {
		width := 0
		if len(rows) > 0 {
			width = len(rows[0])
		}
		if err := cw.Write([]string{strconv.Itoa(len(rows)), strconv.Itoa(width)}); err != nil {
			return err
		}
	}
	record := make([]string, 0)
	for _, row := range rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteFile creates (or truncates) path and writes rows into it with Write.
func WriteFile(path string, rows [][]float64, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, rows, opts...)
}

// ProcessedName derives the result path for an input path by inserting
// "_processed" before the extension: data.csv becomes data_processed.csv.
func ProcessedName(path string) string {
	ext := filepath.Ext(path)

	return strings.TrimSuffix(path, ext) + processedSuffix + ext
}

func parseHeader(rec []string) (points, dims int, err error) {
	if len(rec) != 2 {
		return 0, 0, fmt.Errorf("header has %d fields, want points and dimensions: %w", len(rec), ErrMalformed)
	}
	if points, err = strconv.Atoi(strings.TrimSpace(rec[0])); err != nil || points < 1 {
		return 0, 0, fmt.Errorf("header points %q: %w", rec[0], ErrMalformed)
	}
	if dims, err = strconv.Atoi(strings.TrimSpace(rec[1])); err != nil || dims < 1 {
		return 0, 0, fmt.Errorf("header dimensions %q: %w", rec[1], ErrMalformed)
	}

	return points, dims, nil
}

func parseValue(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q: %w", field, ErrMalformed)
	}

	return v, nil
}

// malformed tags csv syntax errors as ErrMalformed and passes I/O errors through.
func malformed(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%v: %w", err, ErrMalformed)
	}

	return err
}
