// SPDX-License-Identifier: MIT

package matrix

import "gonum.org/v1/gonum/mat"

const (
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
)

// ToGonum copies m into a *mat.Dense so results can be handed to gonum
// routines (or checked against them). The copy never aliases m.
// Errors: ErrNilMatrix.
func ToGonum(m Matrix) (*mat.Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return mat.NewDense(d.r, d.c, buf), nil
}

// FromGonum copies any gonum matrix into a fresh *Dense with the default
// numeric policy.
// Errors: ErrInvalidDimensions for an empty matrix, ErrNaNInf for non-finite values.
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v = g.At(i, j)
			if out.validateNaNInf && isNonFinite(v) {
				return nil, matrixErrorf(opFromGonum, denseErrorf(ctxSet, i, j, ErrNaNInf))
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}
