// SPDX-License-Identifier: MIT

package pca

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is returned when the number of requested components is
// below one or above the number of available components (variables).
//
// Dimension, singularity and convergence failures surface as the sentinels of
// package matrix (ErrDimensionMismatch, ErrSingular, ErrNotConverged).
var ErrInvalidRequest = errors.New("pca: invalid request")

// pcaErrorf wraps err with an operation tag, preserving the original error via %w.
func pcaErrorf(op string, err error) error {
	return fmt.Errorf("pca.%s: %w", op, err)
}

// validateComponents checks 1 ≤ k ≤ available.
func validateComponents(k, available int) error {
	if k < 1 || k > available {
		return fmt.Errorf("%d components requested, %d available: %w", k, available, ErrInvalidRequest)
	}

	return nil
}
