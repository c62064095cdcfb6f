// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvpca/matrix"
	"gonum.org/v1/gonum/floats"
)

const (
	opGramSchmidt = "GramSchmidt"
	opQR          = "QR"
)

// GramSchmidt returns a matrix of the same shape as m whose columns are the
// orthonormalized columns of m, processed left to right.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (rows < cols).
//   - ErrSingular when a column is (numerically) dependent on the previous ones,
//     unless WithRankCompletion is given.
//
// Complexity: O(rows*cols²).
func GramSchmidt(m matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	q, _, err := factor(m, gatherOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGramSchmidt, err)
	}

	return q, nil
}

// factor is the modified Gram-Schmidt kernel shared by GramSchmidt, QR and EigenSym.
// Implementation:
//   - Stage 1: Validate shape (rows ≥ cols) and take a flat copy of m.
//   - Stage 2: For column k, subtract its component along every earlier q_j
//     (recording R[j,k]), then normalize the residual into q_k (R[k,k] = ‖residual‖).
//   - Stage 3: A residual with norm ≤ eps·max(1,‖a_k‖) is a dependent column:
//     fail with ErrSingular, or complete the basis when rankCompletion is set.
//
// R entries below the diagonal are never written and stay exactly zero.
func factor(m matrix.Matrix, o Options) (*matrix.Dense, *matrix.Dense, error) {
	a, err := matrix.AsDense(m)
	if err != nil {
		return nil, nil, err
	}
	rows, cols := a.Shape()
	if rows < cols {
		return nil, nil, fmt.Errorf("%dx%d has more columns than rows: %w", rows, cols, matrix.ErrDimensionMismatch)
	}

	R, err := matrix.NewDense(cols, cols)
	if err != nil {
		return nil, nil, err
	}
	basis := make([][]float64, cols)

	var (
		j, k     int
		v, qk    []float64
		rjk, rkk float64
	)
	for k = 0; k < cols; k++ {
		v, _ = a.Col(k)
		threshold := o.eps * math.Max(1, matrix.Norm(v))
		for j = 0; j < k; j++ {
			rjk = floats.Dot(basis[j], v)
			floats.AddScaled(v, -rjk, basis[j])
			_ = R.Set(j, k, rjk)
		}

		rkk = matrix.Norm(v)
		qk, err = matrix.Normalize(v, threshold)
		switch {
		case err == nil:
			_ = R.Set(k, k, rkk)
		case errors.Is(err, matrix.ErrSingular) && o.rankCompletion:
			qk = completeBasis(basis[:k], rows)
		default:
			return nil, nil, fmt.Errorf("column %d: %w", k, err)
		}
		basis[k] = qk
	}

	Q, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, nil, err
	}
	for k = 0; k < cols; k++ {
		for j = 0; j < rows; j++ {
			_ = Q.Set(j, k, basis[k][j])
		}
	}

	return Q, R, nil
}

// completeBasis returns a unit vector orthogonal to every vector in prev.
// Each standard basis vector is orthogonalized (two passes) against prev and
// the one with the largest residual wins; ties go to the lowest index.
// Requires len(prev) < n, which guarantees a residual of at least sqrt((n-k)/n).
func completeBasis(prev [][]float64, n int) []float64 {
	var (
		best     []float64
		bestNorm float64
	)
	for i := 0; i < n; i++ {
		w := make([]float64, n)
		w[i] = 1
		for pass := 0; pass < 2; pass++ {
			for _, q := range prev {
				floats.AddScaled(w, -floats.Dot(q, w), q)
			}
		}
		if nrm := floats.Norm(w, 2); nrm > bestNorm {
			best, bestNorm = w, nrm
		}
	}

	return matrix.ScaleVec(best, 1/bestNorm)
}
