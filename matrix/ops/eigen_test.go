// SPDX-License-Identifier: MIT
package ops_test

import (
	"bytes"
	"log/slog"
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/matrix/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// sampleCovariance is the covariance of three variables observed five times:
// {4,4.2,3.9,4.3,4.1}, {2,2.1,2,2.1,2.2}, {0.6,0.59,0.58,0.62,0.63}.
func sampleCovariance(t testing.TB) *matrix.Dense {
	t.Helper()
	X := mustDense(t, [][]float64{
		{4, 4.2, 3.9, 4.3, 4.1},
		{2, 2.1, 2, 2.1, 2.2},
		{0.6, 0.59, 0.58, 0.62, 0.63},
	})
	C, err := matrix.CovarianceRows(X)
	require.NoError(t, err)

	return C
}

func tridiagonal(t testing.TB) *matrix.Dense {
	return mustDense(t, [][]float64{
		{4, 1, 0},
		{1, 3, 1},
		{0, 1, 2},
	})
}

// requireEigenEquation asserts A·V ≈ V·diag(values) column by column.
func requireEigenEquation(t *testing.T, A matrix.Matrix, es *ops.EigenSet, tol float64) {
	t.Helper()
	for i := 0; i < es.Len(); i++ {
		v, err := es.Vector(i)
		require.NoError(t, err)
		Av, err := matrix.MatVec(A, v)
		require.NoError(t, err)
		require.InDeltaSlice(t, matrix.ScaleVec(v, es.Values[i]), Av, tol, "eigenpair %d", i)
	}
}

// gonumValues returns the eigenvalues of A in ascending order.
func gonumValues(t *testing.T, A *matrix.Dense) []float64 {
	t.Helper()
	n := A.Rows()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, mustAt(t, A, i, j))
		}
	}
	var es mat.EigenSym
	require.True(t, es.Factorize(sym, false), "gonum factorization failed")

	return es.Values(nil)
}

func sortedCopy(v []float64) []float64 {
	out := append([]float64(nil), v...)
	sort.Float64s(out)

	return out
}

func TestEigenSym_EigenEquationAndOracle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		A    *matrix.Dense
		tol  float64
	}{
		{"covariance", sampleCovariance(t), 1e-5},
		{"tridiagonal", tridiagonal(t), 1e-5},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			es, err := ops.EigenSym(tc.A, ops.WithTolerance(1e-12))
			require.NoError(t, err)
			require.Equal(t, tc.A.Rows(), es.Len())

			requireEigenEquation(t, tc.A, es, tc.tol)
			requireOrthonormalColumns(t, es.Vectors, 1e-9)
			require.InDeltaSlice(t, gonumValues(t, tc.A), sortedCopy(es.Values), 1e-8)
		})
	}
}

func TestEigenSym_TopVectorOfCovariance(t *testing.T) {
	t.Parallel()

	es, err := ops.EigenSym(sampleCovariance(t), ops.WithTolerance(1e-12))
	require.NoError(t, err)

	top := 0
	for i, v := range es.Values {
		if math.Abs(v) > math.Abs(es.Values[top]) {
			top = i
		}
	}
	require.InDelta(t, 0.0278769, es.Values[top], 1e-6)

	v, err := es.Vector(top)
	require.NoError(t, err)
	if v[0] < 0 {
		v = matrix.ScaleVec(v, -1)
	}
	require.InDeltaSlice(t, []float64{0.93677, 0.34148, 0.07652}, v, 1e-4)
}

func TestEigenSym_DiagonalConvergesImmediately(t *testing.T) {
	t.Parallel()

	var st matrix.Stats
	es, err := ops.EigenSym(mustDense(t, [][]float64{{3, 0}, {0, 1}}), ops.WithStats(&st))
	require.NoError(t, err)
	assert.Equal(t, 1, es.Iterations)
	assert.Equal(t, []float64{3, 1}, es.Values)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, es.Vectors.RawRows())
	assert.Equal(t, int64(2*es.Iterations), st.Products, "R·Q and V·Q per iteration")
	assert.Positive(t, st.Multiplications)
}

// topPair returns the dominant eigenvalue and its vector, sign-fixed so the
// first component is non-negative.
func topPair(t *testing.T, es *ops.EigenSet) (float64, []float64) {
	t.Helper()
	top := 0
	for i, v := range es.Values {
		if math.Abs(v) > math.Abs(es.Values[top]) {
			top = i
		}
	}
	v, err := es.Vector(top)
	require.NoError(t, err)
	if v[0] < 0 {
		v = matrix.ScaleVec(v, -1)
	}

	return es.Values[top], v
}

// TestEigenSym_CloseEigenvalues needs the off-diagonal to decay, not just the
// diagonal to settle: here the diagonal barely moves from the first step.
func TestEigenSym_CloseEigenvalues(t *testing.T) {
	t.Parallel()

	A := mustDense(t, [][]float64{{1, 1e-3}, {1e-3, 1}})
	es, err := ops.EigenSym(A)
	require.NoError(t, err)
	assert.Greater(t, es.Iterations, 100)
	require.InDeltaSlice(t, []float64{1 - 1e-3, 1 + 1e-3}, sortedCopy(es.Values), 1e-6)
	requireEigenEquation(t, A, es, 1e-4)

	_, v := topPair(t, es)
	require.InDeltaSlice(t, []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}, v, 1e-2)

	tight, err := ops.EigenSym(A, ops.WithTolerance(1e-9))
	require.NoError(t, err)
	requireEigenEquation(t, A, tight, 1e-8)
	for i := range tight.Values {
		got, err := tight.Vector(i)
		require.NoError(t, err)
		axis := []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}
		if tight.Values[i] < 1 {
			axis[1] = -axis[1]
		}
		if got[0] < 0 {
			got = matrix.ScaleVec(got, -1)
		}
		require.InDeltaSlice(t, axis, got, 1e-5, "column %d", i)
	}
}

// TestEigenSym_ScaleInvariant runs the covariance at a thousandth of the scale.
func TestEigenSym_ScaleInvariant(t *testing.T) {
	t.Parallel()

	C := sampleCovariance(t)
	small, err := matrix.ScaleRows(C, []float64{1e-6, 1e-6, 1e-6})
	require.NoError(t, err)

	ref, err := ops.EigenSym(C)
	require.NoError(t, err)
	es, err := ops.EigenSym(small)
	require.NoError(t, err)
	assert.Greater(t, es.Iterations, 1)

	refValue, refVec := topPair(t, ref)
	value, vec := topPair(t, es)
	require.InDelta(t, refValue*1e-6, value, 1e-6*refValue*1e-4)
	require.InDeltaSlice(t, refVec, vec, 1e-4)
	requireEigenEquation(t, small, es, 1e-12)
}

// TestEigenSym_RankDeficient diagonalizes a singular covariance matrix.
func TestEigenSym_RankDeficient(t *testing.T) {
	t.Parallel()

	A := mustDense(t, [][]float64{{1, 1}, {1, 1}})
	es, err := ops.EigenSym(A)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 2}, sortedCopy(es.Values), 1e-12)
	requireEigenEquation(t, A, es, 1e-12)
}

func TestEigenSym_Errors(t *testing.T) {
	t.Parallel()

	_, err := ops.EigenSym(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = ops.EigenSym(randDense(t, 2, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = ops.EigenSym(mustDense(t, [][]float64{{1, 2}, {3, 4}}))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestEigenSym_IterationCap(t *testing.T) {
	t.Parallel()

	_, err := ops.EigenSym(sampleCovariance(t),
		ops.WithTolerance(1e-12), ops.WithMaxIterations(1))
	require.ErrorIs(t, err, matrix.ErrNotConverged)
}

func TestEigenSym_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	A := tridiagonal(t)
	_, err := ops.EigenSym(A)
	require.NoError(t, err)
	require.Equal(t, tridiagonal(t).RawRows(), A.RawRows())
}

func TestEigenSym_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := ops.EigenSym(tridiagonal(t), ops.WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "eigen: converged")
}

func BenchmarkEigenSym(b *testing.B) {
	C := sampleCovariance(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ops.EigenSym(C); err != nil {
			b.Fatal(err)
		}
	}
}
