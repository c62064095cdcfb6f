// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpca/report"
)

func TestExplainedVariance(t *testing.T) {
	got, err := report.ExplainedVariance([]float64{3, 1, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.75, 0.25, 0}, got, 1e-12)

	got, err = report.ExplainedVariance([]float64{-2, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, got, 1e-12)

	got, err = report.ExplainedVariance([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got)

	_, err = report.ExplainedVariance(nil)
	assert.ErrorIs(t, err, report.ErrNoValues)

	_, err = report.ExplainedVariance([]float64{1, math.NaN()})
	assert.Error(t, err)
}

func TestExplainedVarianceOf(t *testing.T) {
	full := []float64{3, 1, 0}
	for k := 1; k <= len(full); k++ {
		got, err := report.ExplainedVarianceOf(full[:k], 4)
		require.NoError(t, err)
		require.Len(t, got, k)
		assert.InDelta(t, 0.75, got[0], 1e-12, "k=%d", k)
	}

	_, err := report.ExplainedVarianceOf(full, 0)
	assert.ErrorIs(t, err, report.ErrInvalidTotal)
	_, err = report.ExplainedVarianceOf(full, math.Inf(1))
	assert.ErrorIs(t, err, report.ErrInvalidTotal)
	_, err = report.ExplainedVarianceOf(nil, 1)
	assert.ErrorIs(t, err, report.ErrNoValues)
}

// TestScreePlot_TruncatedSpectrum draws two of three components against the
// full total; the cumulative line stops short of 1.
func TestScreePlot_TruncatedSpectrum(t *testing.T) {
	p, err := report.ScreePlot([]float64{3, 1}, report.WithTotalVariance(5))
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Y.Max)

	var buf bytes.Buffer
	require.NoError(t, report.WriteScreePlot(&buf, "svg", []float64{3, 1}, report.WithTotalVariance(5)))
	assert.Contains(t, buf.String(), "<svg")

	_, err = report.ScreePlot(nil, report.WithTotalVariance(5))
	assert.ErrorIs(t, err, report.ErrNoValues)
}

func TestScreePlot_Build(t *testing.T) {
	p, err := report.ScreePlot([]float64{0.0279, 0.0021, 0.0004}, report.WithTitle("example"))
	require.NoError(t, err)
	assert.Equal(t, "example", p.Title.Text)
	assert.Equal(t, 0.0, p.Y.Min)
	assert.Equal(t, 1.0, p.Y.Max)

	_, err = report.ScreePlot(nil)
	assert.ErrorIs(t, err, report.ErrNoValues)
}

func TestWriteScreePlot_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteScreePlot(&buf, "svg", []float64{2, 1}))
	assert.Contains(t, buf.String(), "<svg")

	err := report.WriteScreePlot(&buf, "no-such-format", []float64{2, 1})
	assert.Error(t, err)
}

func TestSaveScreePlot_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scree.png")
	require.NoError(t, report.SaveScreePlot(path, []float64{5, 3, 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	assert.Error(t, report.SaveScreePlot(filepath.Join(t.TempDir(), "noext"), []float64{1}))
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { report.WithSize(0, 10) })
	assert.Panics(t, func() { report.WithBarWidth(-1) })
	assert.Panics(t, func() { report.WithTotalVariance(0) })
	assert.Panics(t, func() { report.WithTotalVariance(math.NaN()) })
	assert.NotPanics(t, func() { report.WithSize(100, 100) })
}
