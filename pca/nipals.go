// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvpca/matrix"
	"gonum.org/v1/gonum/floats"
)

const opNIPALS = "NIPALS"

// residualFloor is the relative size of tᵀt (against the total sum of
// squares of the input) under which the residual counts as exhausted.
const residualFloor = 1e-20

// Component is one principal component extracted by NIPALS.
type Component struct {
	// Score holds the coordinate of every observation along the component.
	Score []float64
	// Loading is the unit direction of the component in variable space.
	Loading []float64
	// Eigenvalue is the variance captured, tᵀt/(observations-1).
	Eigenvalue float64
	// Iterations is the number of score/loading refinements performed.
	Iterations int
}

// NIPALS extracts k principal components from centered data
// (variables × observations) by nonlinear iterative partial least squares.
// Implementation:
//   - Stage 1: E = centeredᵀ (observations × variables).
//   - Stage 2: Per component, start t from the column of E with the largest
//     sum of squares and iterate p = Eᵀt/(tᵀt), p = p/‖p‖, t = E·p/(pᵀp)
//     until tᵀt changes by at most tol·tᵀt and the loading p moves by at
//     most tol in Euclidean norm.
//   - Stage 3: Deflate E := E − t·pᵀ and continue with the next component.
//
// Errors:
//   - ErrInvalidRequest (k < 1 or k > variables).
//   - ErrDimensionMismatch (fewer than two observations).
//   - ErrSingular when the residual is exhausted before k components.
//   - ErrNotConverged when a component hits the iteration cap.
//
// Complexity:
//   - Time O(k*iterations*variables*observations), Space O(variables*observations).
//
// AI-Hints:
//   - Loadings match the covariance eigenvectors up to sign; scores are the
//     centered data projected onto the loadings.
//   - Components come back in extraction order. When the start column is
//     orthogonal to the dominant axis a weaker component is found first;
//     Analyze re-ranks by eigenvalue.
func NIPALS(centered matrix.Matrix, k int, opts ...Option) ([]Component, error) {
	o := gatherOptions(opts...)

	X, err := matrix.AsDense(centered)
	if err != nil {
		return nil, pcaErrorf(opNIPALS, err)
	}
	vars, obs := X.Shape()
	if err = validateComponents(k, vars); err != nil {
		return nil, pcaErrorf(opNIPALS, err)
	}
	if obs < 2 {
		return nil, pcaErrorf(opNIPALS, fmt.Errorf("%d observations: %w", obs, matrix.ErrDimensionMismatch))
	}

	Et, err := matrix.Transpose(X)
	if err != nil {
		return nil, pcaErrorf(opNIPALS, err)
	}
	E := Et.(*matrix.Dense)
	floor := residualFloor * sumOfSquares(E)

	comps := make([]Component, 0, k)
	for c := 0; c < k; c++ {
		comp, err := extractComponent(E, floor, o)
		if err != nil {
			return nil, pcaErrorf(opNIPALS, fmt.Errorf("component %d: %w", c, err))
		}
		comp.Eigenvalue = floats.Dot(comp.Score, comp.Score) / float64(obs-1)
		o.logger.Debug("nipals: component extracted",
			"component", c, "eigenvalue", comp.Eigenvalue, "iterations", comp.Iterations)

		tp, err := matrix.Outer(comp.Score, comp.Loading)
		if err != nil {
			return nil, pcaErrorf(opNIPALS, err)
		}
		deflated, err := matrix.Sub(E, tp)
		if err != nil {
			return nil, pcaErrorf(opNIPALS, err)
		}
		E = deflated.(*matrix.Dense)
		comps = append(comps, comp)
	}

	return comps, nil
}

// extractComponent runs the score/loading refinement on the residual E.
func extractComponent(E *matrix.Dense, floor float64, o Options) (Component, error) {
	t := initialScore(E)
	tt := floats.Dot(t, t)
	if tt <= floor {
		return Component{}, fmt.Errorf("residual exhausted (tᵀt=%g): %w", tt, matrix.ErrSingular)
	}

	var (
		p, prev []float64
		ttNext  float64
		moved   = math.Inf(1)
		err     error
	)
	for it := 1; it <= o.maxIter; it++ {
		// p = Eᵀt / (tᵀt), computed as the row vector tᵀE.
		if p, err = mulRow(t, E, o.stats); err != nil {
			return Component{}, err
		}
		if p, err = matrix.Normalize(matrix.ScaleVec(p, 1/tt)); err != nil {
			return Component{}, err
		}
		// t = E·p / (pᵀp)
		if t, err = mulCol(E, p, o.stats); err != nil {
			return Component{}, err
		}
		t = matrix.ScaleVec(t, 1/floats.Dot(p, p))

		ttNext = floats.Dot(t, t)
		if ttNext <= floor {
			return Component{}, fmt.Errorf("residual exhausted (tᵀt=%g): %w", ttNext, matrix.ErrSingular)
		}
		if prev != nil {
			moved = floats.Distance(p, prev, 2)
		}
		if math.Abs(ttNext-tt) <= o.tol*ttNext && moved <= o.tol {
			return Component{Score: t, Loading: p, Iterations: it}, nil
		}
		tt, prev = ttNext, p
	}

	return Component{}, fmt.Errorf("%d iterations, loading still moving by %g > %g: %w",
		o.maxIter, moved, o.tol, matrix.ErrNotConverged)
}

// initialScore returns a copy of the column of E with the largest sum of
// squares (lowest index on ties).
func initialScore(E *matrix.Dense) []float64 {
	best, bestSS := 0, -1.0
	for j := 0; j < E.Cols(); j++ {
		col, _ := E.Col(j)
		if ss := floats.Dot(col, col); ss > bestSS {
			best, bestSS = j, ss
		}
	}
	t, _ := E.Col(best)

	return t
}

// mulRow returns vᵀ·E as a slice.
func mulRow(v []float64, E *matrix.Dense, st *matrix.Stats) ([]float64, error) {
	row, err := matrix.NewDenseFromRows([][]float64{v})
	if err != nil {
		return nil, err
	}
	prod, err := matrix.MulWithStats(row, E, st)
	if err != nil {
		return nil, err
	}

	return prod.(*matrix.Dense).Row(0)
}

// mulCol returns E·v as a slice.
func mulCol(E *matrix.Dense, v []float64, st *matrix.Stats) ([]float64, error) {
	col, err := matrix.NewDense(len(v), 1)
	if err != nil {
		return nil, err
	}
	for i, x := range v {
		if err = col.Set(i, 0, x); err != nil {
			return nil, err
		}
	}
	prod, err := matrix.MulWithStats(E, col, st)
	if err != nil {
		return nil, err
	}

	return prod.(*matrix.Dense).Col(0)
}

func sumOfSquares(m *matrix.Dense) float64 {
	total := 0.0
	for _, row := range m.RawRows() {
		total += floats.Dot(row, row)
	}

	return total
}
