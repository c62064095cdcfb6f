// SPDX-License-Identifier: MIT
// Package matrix_test: tests for Mean, Covariance, CenterRows and CovarianceRows.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

// variables × observations fixture (3 variables, 5 observations).
var statFixture = []float64{
	2.5, 0.5, 2.2, 1.9, 3.1,
	2.4, 0.7, 2.9, 2.2, 3.0,
	1.0, 1.1, 0.9, 1.2, 0.8,
}

func TestMean(t *testing.T) {
	t.Parallel()

	m, err := matrix.Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 2.5, m)

	_, err = matrix.Mean(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestCovariance_MatchesGonum(t *testing.T) {
	t.Parallel()

	a := []float64{2.5, 0.5, 2.2, 1.9, 3.1}
	b := []float64{2.4, 0.7, 2.9, 2.2, 3.0}

	got, err := matrix.Covariance(a, b)
	require.NoError(t, err)
	require.InDelta(t, stat.Covariance(a, b, nil), got, epsTight)

	swapped, err := matrix.Covariance(b, a)
	require.NoError(t, err)
	require.Equal(t, got, swapped)
}

func TestCovariance_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.Covariance([]float64{1, 2, 3}, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Covariance([]float64{1}, []float64{2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestCenterRows(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 5, statFixture)
	Xc, means, err := matrix.CenterRows(X)
	require.NoError(t, err)
	require.Len(t, means, 3)
	require.InDelta(t, 2.04, means[0], epsTight)
	require.InDelta(t, 1.0, means[2], epsTight)

	for i := 0; i < 3; i++ {
		row, err := Xc.Row(i)
		require.NoError(t, err)
		m, err := matrix.Mean(row)
		require.NoError(t, err)
		require.InDelta(t, 0, m, epsLoose, "row %d mean", i)
	}

	// Input untouched.
	require.Equal(t, 2.5, MustAt(t, X, 0, 0))

	// Fallback path gives the same result.
	Xc2, _, err := matrix.CenterRows(hide{X})
	require.NoError(t, err)
	CompareClose(t, Xc, Xc2, epsExact, epsExact)
}

// TestCenterRows_Idempotent re-centers centered data: means ~0, values unchanged.
func TestCenterRows_Idempotent(t *testing.T) {
	t.Parallel()

	X := RandFilledDense(t, 4, 9, 21)
	once, _, err := matrix.CenterRows(X)
	require.NoError(t, err)
	twice, means, err := matrix.CenterRows(once)
	require.NoError(t, err)

	for i, m := range means {
		require.InDelta(t, 0, m, epsLoose, "mean %d", i)
	}
	CompareClose(t, once, twice, 0, epsLoose)
}

func TestCovarianceRows_SymmetricAndMatchesGonum(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 5, statFixture)
	C, err := matrix.CovarianceRows(X)
	require.NoError(t, err)
	require.Equal(t, 3, C.Rows())
	require.Equal(t, 3, C.Cols())

	var i, j int
	for i = 0; i < 3; i++ {
		ri, _ := X.Row(i)
		for j = 0; j < 3; j++ {
			rj, _ := X.Row(j)
			require.Equal(t, MustAt(t, C, i, j), MustAt(t, C, j, i), "symmetry (%d,%d)", i, j)
			require.InDelta(t, stat.Covariance(ri, rj, nil), MustAt(t, C, i, j), epsTight)
		}
	}
	require.NoError(t, matrix.ValidateSymmetric(C, 0))
}

func TestCovarianceRows_NeedsTwoObservations(t *testing.T) {
	t.Parallel()

	_, err := matrix.CovarianceRows(MustDense(t, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.CovarianceRows(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
