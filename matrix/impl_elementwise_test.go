// SPDX-License-Identifier: MIT
// Package matrix_test: tests for the row-broadcast kernels and StandardizeRows.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestBroadcastSubRows_FastAndFallback_Match(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 10, 20, 30})
	shift := []float64{2, 20}
	want := [][]float64{
		{-1, 0, 1},
		{-10, 0, 10},
	}

	fast, err := matrix.BroadcastSubRows(X, shift)
	require.NoError(t, err)
	CompareExact(t, want, fast)

	slow, err := matrix.BroadcastSubRows(hide{X}, shift)
	require.NoError(t, err)
	CompareExact(t, want, slow)

	// input untouched
	require.Equal(t, 1.0, MustAt(t, X, 0, 0))
}

func TestScaleRows_FastAndFallback_Match(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 2, []float64{1, -2, 3, 4})
	scale := []float64{10, 0.5}
	want := [][]float64{
		{10, -20},
		{1.5, 2},
	}

	fast, err := matrix.ScaleRows(X, scale)
	require.NoError(t, err)
	CompareExact(t, want, fast)

	slow, err := matrix.ScaleRows(hide{X}, scale)
	require.NoError(t, err)
	CompareExact(t, want, slow)
}

func TestRowKernels_Errors(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})

	_, err := matrix.BroadcastSubRows(X, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.ScaleRows(X, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.ScaleRows(X, []float64{1, math.Inf(1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.BroadcastSubRows(nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestStandardizeRows(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 5, statFixture)
	Z, std, err := matrix.StandardizeRows(X)
	require.NoError(t, err)
	require.Len(t, std, 3)

	for i := 0; i < 3; i++ {
		raw, err := X.Row(i)
		require.NoError(t, err)
		require.InDelta(t, stat.StdDev(raw, nil), std[i], epsTight)

		row, err := Z.Row(i)
		require.NoError(t, err)
		mean, err := matrix.Mean(row)
		require.NoError(t, err)
		require.InDelta(t, 0, mean, epsTight)
		require.InDelta(t, 1, stat.Variance(row, nil), epsTight)
	}

	// correlation matrix has a unit diagonal
	corr, err := matrix.CovarianceRows(Z)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.InDelta(t, 1, MustAt(t, corr, i, i), epsTight)
	}
}

func TestStandardizeRows_ConstantRowAndErrors(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 3, []float64{7, 7, 7, 1, 2, 3})
	Z, std, err := matrix.StandardizeRows(X)
	require.NoError(t, err)
	require.Equal(t, 0.0, std[0])
	CompareExact(t, [][]float64{{0, 0, 0}, {-1, 0, 1}}, Z)

	_, _, err = matrix.StandardizeRows(NewFilledDense(t, 2, 1, []float64{1, 2}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
