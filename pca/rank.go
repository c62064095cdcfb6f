// SPDX-License-Identifier: MIT

package pca

import (
	"math"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/matrix/ops"
)

// SelectComponents returns the indices of the k eigenvalues with the largest
// magnitude, largest first. Ties go to the lowest index and no index is
// picked twice.
// Errors: ErrInvalidRequest when k < 1 or k > len(values).
// Complexity: O(k*n).
func SelectComponents(k int, values []float64) ([]int, error) {
	if err := validateComponents(k, len(values)); err != nil {
		return nil, pcaErrorf(opBuildPCs, err)
	}

	used := make([]bool, len(values))
	picked := make([]int, 0, k)
	for len(picked) < k {
		best := -1
		for i, v := range values {
			if used[i] {
				continue
			}
			if best < 0 || math.Abs(v) > math.Abs(values[best]) {
				best = i
			}
		}
		used[best] = true
		picked = append(picked, best)
	}

	return picked, nil
}

// BuildPrincipalComponents ranks the eigenpairs of es and returns the top k
// eigenvectors as the rows of a k × n matrix, together with their eigenvalues
// in the same order.
// Errors: ErrInvalidRequest, ErrNilMatrix (nil eigen set).
func BuildPrincipalComponents(k int, es *ops.EigenSet) (*matrix.Dense, []float64, error) {
	if es == nil || es.Vectors == nil {
		return nil, nil, pcaErrorf(opBuildPCs, matrix.ErrNilMatrix)
	}
	picked, err := SelectComponents(k, es.Values)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]float64, k)
	values := make([]float64, k)
	for r, idx := range picked {
		if rows[r], err = es.Vector(idx); err != nil {
			return nil, nil, pcaErrorf(opBuildPCs, err)
		}
		values[r] = es.Values[idx]
	}
	components, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, nil, pcaErrorf(opBuildPCs, err)
	}

	return components, values, nil
}
