// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Vector kernel over plain []float64: dot product, Euclidean norm,
//     normalization, projection, subtraction and scaling.
//   - Length checks live here; the tight loops are delegated to gonum/floats.
//
// Determinism:
//   - Every function allocates a fresh result; inputs are never mutated.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	opDot       = "Dot"
	opNormalize = "Normalize"
	opProject   = "Project"
	opSubVec    = "SubVec"
)

// Dot returns Σ a[i]*b[i].
// Errors: ErrDimensionMismatch when the lengths differ, ErrInvalidDimensions when empty.
// Complexity: O(n).
func Dot(a, b []float64) (float64, error) {
	if err := ValidateSameLen(a, b); err != nil {
		return 0, matrixErrorf(opDot, err)
	}

	return floats.Dot(a, b), nil
}

// dotUnchecked is Dot for callers that already proved len(a) == len(b).
func dotUnchecked(a, b []float64) float64 { return floats.Dot(a, b) }

// Norm returns the Euclidean (L2) norm of v. Norm of an empty vector is 0.
// Complexity: O(n).
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}

	return floats.Norm(v, 2)
}

// Normalize returns v/‖v‖₂.
// A vector whose norm is ≤ eps (eps ≥ 0, default 0 when omitted) cannot be
// normalized and yields ErrSingular instead of a NaN-filled result.
//
// Errors: ErrInvalidDimensions (empty), ErrSingular (zero norm).
// Complexity: O(n).
//
// AI-Hints:
//   - Gram-Schmidt passes a scale-aware eps so numerically dependent columns are
//     rejected, not just exact zeros.
func Normalize(v []float64, eps ...float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, matrixErrorf(opNormalize, ErrInvalidDimensions)
	}
	threshold := 0.0
	if len(eps) > 0 {
		threshold = eps[0]
	}
	n := floats.Norm(v, 2)
	if n <= threshold || isNonFinite(n) {
		return nil, matrixErrorf(opNormalize, fmt.Errorf("norm %g: %w", n, ErrSingular))
	}

	return floats.ScaleTo(make([]float64, len(v)), 1/n, v), nil
}

// Project returns the projection of v onto the line spanned by onto:
// (⟨onto, v⟩ / ⟨onto, onto⟩)·onto.
//
// Errors: ErrDimensionMismatch, ErrInvalidDimensions, ErrSingular (onto is zero).
// Complexity: O(n).
func Project(v, onto []float64) ([]float64, error) {
	if err := ValidateSameLen(v, onto); err != nil {
		return nil, matrixErrorf(opProject, err)
	}
	den := floats.Dot(onto, onto)
	if den == 0 {
		return nil, matrixErrorf(opProject, ErrSingular)
	}

	return floats.ScaleTo(make([]float64, len(onto)), floats.Dot(onto, v)/den, onto), nil
}

// SubVec returns a - b.
// Errors: ErrDimensionMismatch, ErrInvalidDimensions.
func SubVec(a, b []float64) ([]float64, error) {
	if err := ValidateSameLen(a, b); err != nil {
		return nil, matrixErrorf(opSubVec, err)
	}

	return floats.SubTo(make([]float64, len(a)), a, b), nil
}

// ScaleVec returns alpha*v.
func ScaleVec(v []float64, alpha float64) []float64 {
	return floats.ScaleTo(make([]float64, len(v)), alpha, v)
}
