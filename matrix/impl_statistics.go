// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms PCA needs (mean, sample covariance,
//     per-row centering, covariance between rows) as deterministic kernels.
//
// Exposed API:
//   - Mean(v)            -> float64
//   - Covariance(a, b)   -> unbiased sample covariance, divisor n-1
//   - CenterRows(X)      -> (Xc, means)   // subtract per-row mean
//   - StandardizeRows(X) -> (Z, std)      // see impl_elementwise.go
//   - CovarianceRows(X)  -> Cov           // Cov[i,j] = Covariance(row i, row j)
//
// Orientation:
//   - Rows are variables, columns are observations. CenterRows therefore
//     centers every variable and CovarianceRows is variables × variables.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMean           = "Mean"
	opCovariance     = "Covariance"
	opCenterRows     = "CenterRows"
	opCovarianceRows = "CovarianceRows"
)

// minObservations is the smallest sample size with a defined n-1 divisor.
const minObservations = 2

// Mean returns the arithmetic mean of v.
// Errors: ErrInvalidDimensions for an empty vector.
func Mean(v []float64) (float64, error) {
	if len(v) == 0 {
		return 0, matrixErrorf(opMean, ErrInvalidDimensions)
	}

	return floats.Sum(v) / float64(len(v)), nil
}

// Covariance returns the unbiased sample covariance of a and b:
//
//	cov(a,b) = Σ (a[i]-mean(a))·(b[i]-mean(b)) / (n-1).
//
// The summation order is fixed, so Covariance(a,b) == Covariance(b,a) bit for bit.
//
// Errors:
//   - ErrDimensionMismatch when len(a) != len(b) or n < 2.
//   - ErrInvalidDimensions for empty vectors.
//
// Complexity: O(n).
func Covariance(a, b []float64) (float64, error) {
	if err := ValidateSameLen(a, b); err != nil {
		return 0, matrixErrorf(opCovariance, err)
	}
	n := len(a)
	if n < minObservations {
		return 0, matrixErrorf(opCovariance, fmt.Errorf("need %d observations, have %d: %w",
			minObservations, n, ErrDimensionMismatch))
	}

	aMean := floats.Sum(a) / float64(n)
	bMean := floats.Sum(b) / float64(n)
	sum := ZeroSum
	for i := 0; i < n; i++ {
		sum += (a[i] - aMean) * (b[i] - bMean)
	}

	return sum / float64(n-1), nil
}

// CenterRows subtracts the per-row mean from every element (row-wise centering).
// Implementation:
//   - Stage 1: Validate X (non-nil) and compute every row mean.
//   - Stage 2: BroadcastSubRows the means into a fresh *Dense.
//
// Returns:
//   - *Dense: centered copy; X is never modified.
//   - []float64: row means (len = Rows(X)).
//
// Determinism:
//   - Fixed i→j traversal; re-centering an already centered matrix changes it by
//     rounding noise only.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterRows(X Matrix) (*Dense, []float64, error) {
	src, err := AsDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}
	r, c := src.Shape()
	means := make([]float64, r)
	for i := 0; i < r; i++ {
		means[i] = floats.Sum(src.data[i*c:(i+1)*c]) / float64(c)
	}
	out, err := BroadcastSubRows(src, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterRows, err)
	}

	return out, means, nil
}

// CovarianceRows builds the r×r covariance matrix between the rows of X:
// Cov[i,j] = Covariance(X[i,*], X[j,*]).
// Implementation:
//   - Stage 1: Validate X and require at least two columns (observations).
//   - Stage 2: Compute the upper triangle (j ≥ i) and mirror it, so the
//     result is exactly symmetric.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (fewer than 2 observations).
//
// Complexity:
//   - Time O(r²*c), Space O(r²).
func CovarianceRows(X Matrix) (*Dense, error) {
	src, err := AsDense(X)
	if err != nil {
		return nil, matrixErrorf(opCovarianceRows, err)
	}
	r, c := src.Shape()
	if c < minObservations {
		return nil, matrixErrorf(opCovarianceRows, ErrDimensionMismatch)
	}

	cov, err := NewDense(r, r)
	if err != nil {
		return nil, matrixErrorf(opCovarianceRows, err)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		a := src.data[i*c : (i+1)*c]
		for j = i; j < r; j++ {
			if v, err = Covariance(a, src.data[j*c:(j+1)*c]); err != nil {
				return nil, matrixErrorf(opCovarianceRows, err)
			}
			cov.data[i*r+j] = v
			cov.data[j*r+i] = v
		}
	}

	return cov, nil
}
