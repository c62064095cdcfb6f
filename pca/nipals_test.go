// SPDX-License-Identifier: MIT
package pca_test

import (
	"testing"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/pca"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func centeredSample(t *testing.T) *matrix.Dense {
	t.Helper()
	ds, err := pca.NewDataSet(sample())
	require.NoError(t, err)
	_, err = ds.Center()
	require.NoError(t, err)

	return ds.Data()
}

func TestNIPALS_Components(t *testing.T) {
	t.Parallel()

	X := centeredSample(t)
	comps, err := pca.NIPALS(X, 3, pca.WithTolerance(1e-12))
	require.NoError(t, err)
	require.Len(t, comps, 3)

	for i, c := range comps {
		require.Len(t, c.Score, 5)
		require.Len(t, c.Loading, 3)
		require.InDelta(t, 1, floats.Norm(c.Loading, 2), 1e-12, "loading %d is a unit vector", i)
		require.Positive(t, c.Iterations)

		// Scores are the centered data projected on the loading.
		proj, err := matrix.MatVec(transposed(t, X), c.Loading)
		require.NoError(t, err)
		require.InDeltaSlice(t, proj, c.Score, 1e-6)
	}

	// Eigenvalues come out in decreasing order and sum to the total variance.
	require.Greater(t, comps[0].Eigenvalue, comps[1].Eigenvalue)
	require.Greater(t, comps[1].Eigenvalue, comps[2].Eigenvalue)
	C, err := matrix.CovarianceRows(X)
	require.NoError(t, err)
	trace, _ := matrix.Diagonal(C)
	require.InDelta(t, floats.Sum(trace), comps[0].Eigenvalue+comps[1].Eigenvalue+comps[2].Eigenvalue, 1e-9)

	// Loadings are mutually orthogonal.
	require.InDelta(t, 0, floats.Dot(comps[0].Loading, comps[1].Loading), 1e-6)
}

func TestNIPALS_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	X := centeredSample(t)
	before := X.RawRows()
	_, err := pca.NIPALS(X, 2)
	require.NoError(t, err)
	require.Equal(t, before, X.RawRows())
}

func TestNIPALS_Errors(t *testing.T) {
	t.Parallel()

	X := centeredSample(t)
	_, err := pca.NIPALS(X, 0)
	require.ErrorIs(t, err, pca.ErrInvalidRequest)
	_, err = pca.NIPALS(X, 4)
	require.ErrorIs(t, err, pca.ErrInvalidRequest)

	_, err = pca.NIPALS(nil, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = pca.NIPALS(mustMatrix(t, [][]float64{{1}, {2}}), 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// Constant data has nothing to extract.
	_, err = pca.NIPALS(mustMatrix(t, [][]float64{{0, 0, 0}, {0, 0, 0}}), 1)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func transposed(t *testing.T, m matrix.Matrix) matrix.Matrix {
	t.Helper()
	mt, err := matrix.Transpose(m)
	require.NoError(t, err)

	return mt
}
