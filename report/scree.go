// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoValues is returned when there is nothing to plot or summarise.
var ErrNoValues = errors.New("report: no eigenvalues")

// ErrInvalidTotal is returned for a total variance that is not finite and positive.
var ErrInvalidTotal = errors.New("report: total variance must be finite and > 0")

// ExplainedVariance returns, for each eigenvalue, its share of the total
// |λ| mass. values must be the full spectrum; for a truncated one use
// ExplainedVarianceOf. The shares sum to 1 unless every value is zero, in
// which case all shares are zero.
func ExplainedVariance(values []float64) ([]float64, error) {
	shares, err := magnitudes(values)
	if err != nil {
		return nil, err
	}
	total := floats.Sum(shares)
	if total == 0 {
		return shares, nil
	}
	floats.Scale(1/total, shares)

	return shares, nil
}

// ExplainedVarianceOf returns |λ|/total for each eigenvalue. total is the
// trace of the covariance matrix, so the shares of the leading components
// stay the same however many of them are passed in.
func ExplainedVarianceOf(values []float64, total float64) ([]float64, error) {
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidTotal, total)
	}
	shares, err := magnitudes(values)
	if err != nil {
		return nil, err
	}
	floats.Scale(1/total, shares)

	return shares, nil
}

// magnitudes returns |values|, rejecting empty input and NaN/Inf entries.
func magnitudes(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("report: eigenvalue %d is %v", i, v)
		}
		out[i] = math.Abs(v)
	}

	return out, nil
}

// ScreePlot builds a bar chart of the explained-variance shares of values
// with the cumulative share drawn as a line over it. Shares are taken
// against WithTotalVariance when given, else against the sum of values.
func ScreePlot(values []float64, opts ...Option) (*plot.Plot, error) {
	o := gatherOptions(opts...)
	var (
		shares []float64
		err    error
	)
	if o.total > 0 {
		shares, err = ExplainedVarianceOf(values, o.total)
	} else {
		shares, err = ExplainedVariance(values)
	}
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "component"
	p.Y.Label.Text = "explained variance"

	bars, err := plotter.NewBarChart(plotter.Values(shares), o.barWidth)
	if err != nil {
		return nil, fmt.Errorf("report: bars: %w", err)
	}
	p.Add(bars)

	cumulative := make([]float64, len(shares))
	floats.CumSum(cumulative, shares)
	pts := make(plotter.XYs, len(cumulative))
	for i, c := range cumulative {
		pts[i].X = float64(i)
		pts[i].Y = c
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("report: cumulative line: %w", err)
	}
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(line)

	names := make([]string, len(shares))
	for i := range names {
		names[i] = "PC" + strconv.Itoa(i+1)
	}
	p.NominalX(names...)
	p.Y.Min = 0
	p.Y.Max = 1

	return p, nil
}

// WriteScreePlot renders the scree plot of values to w in the given format
// ("png", "svg", "pdf", ...).
func WriteScreePlot(w io.Writer, format string, values []float64, opts ...Option) error {
	o := gatherOptions(opts...)
	p, err := ScreePlot(values, opts...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(o.width, o.height, format)
	if err != nil {
		return fmt.Errorf("report: %s: %w", format, err)
	}
	_, err = wt.WriteTo(w)

	return err
}

// SaveScreePlot renders the scree plot of values to path; the format follows
// the file extension.
func SaveScreePlot(path string, values []float64, opts ...Option) error {
	o := gatherOptions(opts...)
	if strings.TrimPrefix(filepath.Ext(path), ".") == "" {
		return fmt.Errorf("report: %s: missing image extension", path)
	}
	p, err := ScreePlot(values, opts...)
	if err != nil {
		return err
	}

	return p.Save(o.width, o.height, path)
}
