// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvpca/matrix"
)

const opEigenSym = "EigenSym"

// EigenSet pairs eigenvalues with their eigenvectors.
// Vectors column i is the unit eigenvector for Values[i]. Values keep the
// order in which the QR algorithm leaves them on the diagonal (not sorted).
type EigenSet struct {
	Values     []float64
	Vectors    *matrix.Dense
	Iterations int
}

// Len returns the number of eigenpairs.
func (e *EigenSet) Len() int { return len(e.Values) }

// Vector returns a copy of the eigenvector paired with Values[i].
// Errors: ErrOutOfRange.
func (e *EigenSet) Vector(i int) ([]float64, error) { return e.Vectors.Col(i) }

// EigenSym computes all eigenpairs of a real symmetric matrix with the
// unshifted QR algorithm.
// Implementation:
//   - Stage 1: Validate m (square, symmetric within eps·max(1, max|m[i,j]|)).
//   - Stage 2: A₀ = m, V = I. Repeat: factor A = Q·R (with rank completion),
//     A := R·Q, V := V·Q.
//   - Stage 3: Stop once, relative to s = max|diag(A)|, no diagonal entry moved
//     by more than tol·s and no off-diagonal entry exceeds tol·s. The diagonal
//     holds the eigenvalues and the columns of V the eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrAsymmetry.
//   - ErrNotConverged when the iteration cap is reached.
//
// Determinism:
//   - No randomness or pivoting; identical input gives identical output.
//
// Complexity:
//   - Time O(iterations*n³), Space O(n²).
//
// AI-Hints:
//   - Convergence speed depends on the ratios |λ_{i+1}/λ_i|. For nearly equal
//     eigenvalues the diagonal settles long before the off-diagonal decays, so
//     the off-diagonal bound is what keeps the eigenvectors honest; such inputs
//     may need thousands of iterations.
//   - The test is relative, so rescaling the input by a constant does not
//     change the iteration count.
//   - Intended for covariance matrices (positive semidefinite); eigenvalues of
//     equal magnitude and opposite sign do not separate without shifts.
func EigenSym(m matrix.Matrix, opts ...Option) (*EigenSet, error) {
	o := gatherOptions(opts...)
	o.rankCompletion = true

	a, err := matrix.AsDense(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEigenSym, err)
	}
	if err = matrix.ValidateSymmetric(a, o.eps*math.Max(1, maxAbs(a))); err != nil {
		return nil, fmt.Errorf("%s: %w", opEigenSym, err)
	}
	n := a.Rows()

	current := a.Clone()
	V, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEigenSym, err)
	}
	var vectors matrix.Matrix = V
	prev, _ := matrix.Diagonal(current)

	o.logger.Debug("eigen: start", "n", n, "tolerance", o.tol, "max_iterations", o.maxIter)

	var (
		Q, R       *matrix.Dense
		diag       []float64
		delta, off float64
		bound      float64
	)
	for it := 1; it <= o.maxIter; it++ {
		if Q, R, err = factor(current, o); err != nil {
			return nil, fmt.Errorf("%s: iteration %d: %w", opEigenSym, it, err)
		}
		if current, err = matrix.MulWithStats(R, Q, o.stats); err != nil {
			return nil, fmt.Errorf("%s: %w", opEigenSym, err)
		}
		if vectors, err = matrix.MulWithStats(vectors, Q, o.stats); err != nil {
			return nil, fmt.Errorf("%s: %w", opEigenSym, err)
		}

		diag, _ = matrix.Diagonal(current)
		delta = maxAbsDelta(diag, prev)
		off = maxOffDiagonal(current)
		bound = o.tol * scaleOf(diag)
		if delta <= bound && off <= bound {
			o.logger.Debug("eigen: converged", "iterations", it, "delta", delta, "off_diagonal", off)
			vd, _ := matrix.AsDense(vectors)

			return &EigenSet{Values: diag, Vectors: vd, Iterations: it}, nil
		}
		prev = diag
	}

	o.logger.Debug("eigen: iteration cap reached", "iterations", o.maxIter, "delta", delta, "off_diagonal", off)

	return nil, fmt.Errorf("%s: %d iterations, diagonal change %g and off-diagonal %g against bound %g: %w",
		opEigenSym, o.maxIter, delta, off, bound, matrix.ErrNotConverged)
}

// maxAbs returns max |m[i,j]|.
func maxAbs(m *matrix.Dense) float64 {
	worst := 0.0
	for _, row := range m.RawRows() {
		for _, v := range row {
			worst = math.Max(worst, math.Abs(v))
		}
	}

	return worst
}

// maxOffDiagonal returns max |m[i,j]| over i != j.
func maxOffDiagonal(m matrix.Matrix) float64 {
	worst := 0.0
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if i == j {
				continue
			}
			v, _ := m.At(i, j)
			worst = math.Max(worst, math.Abs(v))
		}
	}

	return worst
}

// scaleOf returns max |d[i]|, or 1 for an all-zero diagonal.
func scaleOf(d []float64) float64 {
	s := 0.0
	for _, v := range d {
		s = math.Max(s, math.Abs(v))
	}
	if s == 0 {
		return 1
	}

	return s
}

// maxAbsDelta returns max |a[i]-b[i]| for equal-length slices.
func maxAbsDelta(a, b []float64) float64 {
	worst := 0.0
	for i := range a {
		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}

	return worst
}
