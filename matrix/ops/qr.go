// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/lvpca/matrix"
)

// QR factors m (rows ≥ cols) into Q·R by Gram-Schmidt orthogonalization.
// Q is rows×cols with orthonormal columns; R is cols×cols upper triangular
// with exact zeros below the diagonal.
//
// Implementation:
//   - Stage 1: Resolve options; validate m (non-nil, rows ≥ cols).
//   - Stage 2: Modified Gram-Schmidt over the columns in order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//   - ErrSingular for a dependent column (see WithRankCompletion).
//
// Determinism:
//   - Fixed column order; no pivoting.
//
// Complexity:
//   - Time O(rows*cols²), Space O(rows*cols + cols²).
//
// AI-Hints:
//   - m is never modified; Q and R are freshly allocated.
func QR(m matrix.Matrix, opts ...Option) (Q, R *matrix.Dense, err error) {
	if Q, R, err = factor(m, gatherOptions(opts...)); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opQR, err)
	}

	return Q, R, nil
}
