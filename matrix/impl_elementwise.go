// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row-broadcast kernels shared by the statistics layer: subtract a value
//     per row (centering) and multiply by a factor per row (scaling).
//
// Determinism & Performance:
//   - Fixed i→j loop order. The Dense fast path walks the flat row-major
//     buffer; other Matrix implementations go through At.
//   - O(r*c) time, one output allocation.
//
// AI-Hints:
//   - Precompute the per-row vector once (means, 1/std) and pass it in.

package matrix

import (
	"fmt"
	"math"
)

const (
	opBroadcastSubRows = "BroadcastSubRows"
	opScaleRows        = "ScaleRows"
	opStandardizeRows  = "StandardizeRows"
)

// BroadcastSubRows returns out[i,j] = X[i,j] - shift[i].
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(shift) != Rows(X)), ErrNaNInf.
func BroadcastSubRows(X Matrix, shift []float64) (*Dense, error) {
	return rowKernel(opBroadcastSubRows, X, shift, func(v, s float64) float64 { return v - s })
}

// ScaleRows returns out[i,j] = X[i,j] * scale[i].
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(scale) != Rows(X)), ErrNaNInf.
func ScaleRows(X Matrix, scale []float64) (*Dense, error) {
	return rowKernel(opScaleRows, X, scale, func(v, s float64) float64 { return v * s })
}

// StandardizeRows centers every row and divides it by its sample standard
// deviation (n-1 divisor). A constant row has nothing to scale and keeps
// factor 1, so it comes out as zeros.
// Returns the standardized copy and the per-row standard deviations.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (fewer than 2 columns).
//
// Complexity: Time O(r*c), Space O(r*c).
func StandardizeRows(X Matrix) (*Dense, []float64, error) {
	centered, _, err := CenterRows(X)
	if err != nil {
		return nil, nil, matrixErrorf(opStandardizeRows, err)
	}
	r, c := centered.Shape()
	if c < minObservations {
		return nil, nil, matrixErrorf(opStandardizeRows, fmt.Errorf("need %d observations, have %d: %w",
			minObservations, c, ErrDimensionMismatch))
	}

	std := make([]float64, r)
	inv := make([]float64, r)
	var i, j int
	for i = 0; i < r; i++ {
		row := centered.data[i*c : (i+1)*c]
		sum := ZeroSum
		for j = 0; j < c; j++ {
			sum += row[j] * row[j]
		}
		std[i] = math.Sqrt(sum / float64(c-1))
		inv[i] = 1
		if std[i] > 0 {
			inv[i] = 1 / std[i]
		}
	}
	out, err := ScaleRows(centered, inv)
	if err != nil {
		return nil, nil, matrixErrorf(opStandardizeRows, err)
	}

	return out, std, nil
}

// rowKernel applies f(X[i,j], vec[i]) into a fresh Dense.
func rowKernel(op string, X Matrix, vec []float64, f func(v, s float64) float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(op, err)
	}
	r, c := X.Rows(), X.Cols()
	if len(vec) != r {
		return nil, matrixErrorf(op, fmt.Errorf("vector length %d, rows %d: %w", len(vec), r, ErrDimensionMismatch))
	}
	for _, s := range vec {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, matrixErrorf(op, ErrNaNInf)
		}
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			s := vec[i]
			for j = 0; j < c; j++ {
				out.data[base+j] = f(d.data[base+j], s)
			}
		}
		return out, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		s := vec[i]
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(op, err)
			}
			out.data[i*c+j] = f(v, s)
		}
	}

	return out, nil
}
