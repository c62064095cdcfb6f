// SPDX-License-Identifier: MIT

package pca

import (
	"github.com/katalvlaran/lvpca/matrix"
)

const (
	opAnalyze   = "Analyze"
	opTransform = "Transform"
)

// Result is the outcome of one analysis.
type Result struct {
	// Method is the engine that produced the components.
	Method Method
	// Values holds the k selected eigenvalues, largest magnitude first.
	Values []float64
	// Spectrum holds every eigenvalue the engine found, largest magnitude
	// first: all of them for MethodEigen, the k extracted ones for NIPALS.
	Spectrum []float64
	// TotalVariance is the trace of the covariance matrix, the denominator
	// of every explained-variance share.
	TotalVariance float64
	// Components is k × variables; row i is the unit axis paired with Values[i].
	Components *matrix.Dense
	// Projection is observations × k: every observation expressed in the new axes.
	Projection *matrix.Dense
	// Means holds the per-variable means removed before the covariance step.
	Means []float64
	// Scales holds the per-variable standard deviations divided out with
	// WithStandardize; nil otherwise.
	Scales []float64
	// Iterations counts QR iterations, or NIPALS refinements summed over components.
	Iterations int
}

// Analyze runs principal component analysis on input (variables × observations)
// and keeps k components.
// Implementation:
//   - Stage 1: Copy input into a DataSet and validate k against the variable count.
//   - Stage 2: Center every variable (and scale it to unit variance with
//     WithStandardize).
//   - Stage 3: MethodEigen diagonalizes the covariance matrix; MethodNIPALS
//     extracts k components by deflation. Both rank their pairs by |λ|.
//   - Stage 4: Project the raw input (or the working data with
//     WithCenteredProjection or WithStandardize) onto the components.
//
// Errors:
//   - ErrInvalidRequest; matrix.ErrInvalidDimensions, ErrDimensionMismatch (empty,
//     ragged, or single-observation input); ErrNaNInf; ErrSingular; ErrNotConverged.
//
// Determinism:
//   - No randomness anywhere; equal inputs and options give equal results.
func Analyze(input [][]float64, k int, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	ds, err := NewDataSet(input)
	if err != nil {
		return nil, pcaErrorf(opAnalyze, err)
	}
	if err = validateComponents(k, ds.Variables()); err != nil {
		return nil, pcaErrorf(opAnalyze, err)
	}
	o.logger.Debug("pca: analyze",
		"method", o.method, "variables", ds.Variables(), "observations", ds.Observations(), "components", k)

	means, err := ds.Center()
	if err != nil {
		return nil, pcaErrorf(opAnalyze, err)
	}
	res := &Result{Method: o.method, Means: means}
	if o.standardize {
		if res.Scales, err = ds.Standardize(); err != nil {
			return nil, pcaErrorf(opAnalyze, err)
		}
	}

	if res.TotalVariance, err = ds.TotalVariance(); err != nil {
		return nil, pcaErrorf(opAnalyze, err)
	}

	switch o.method {
	case MethodNIPALS:
		comps, err := NIPALS(ds.work, k, opts...)
		if err != nil {
			return nil, pcaErrorf(opAnalyze, err)
		}
		if res.Components, res.Values, err = rankComponents(comps); err != nil {
			return nil, pcaErrorf(opAnalyze, err)
		}
		for _, c := range comps {
			res.Iterations += c.Iterations
		}
		res.Spectrum = append([]float64(nil), res.Values...)
	default:
		es, err := ds.CovarianceEigenSet(o.eigenOptions()...)
		if err != nil {
			return nil, pcaErrorf(opAnalyze, err)
		}
		res.Iterations = es.Iterations
		if res.Components, res.Values, err = BuildPrincipalComponents(k, es); err != nil {
			return nil, pcaErrorf(opAnalyze, err)
		}
		if res.Spectrum, err = rankedValues(es.Values); err != nil {
			return nil, pcaErrorf(opAnalyze, err)
		}
	}

	source := ds.raw
	if o.centeredProjection || o.standardize {
		source = ds.work
	}
	if res.Projection, err = project(source, res.Components, o.stats); err != nil {
		return nil, pcaErrorf(opAnalyze, err)
	}
	o.logger.Debug("pca: done", "values", res.Values, "iterations", res.Iterations)

	return res, nil
}

// rankComponents orders NIPALS components by |λ|. Deflation normally yields
// them in that order already, but a start vector orthogonal to the dominant
// axis makes NIPALS find a weaker component first.
func rankComponents(comps []Component) (*matrix.Dense, []float64, error) {
	eig := make([]float64, len(comps))
	for i, c := range comps {
		eig[i] = c.Eigenvalue
	}
	picked, err := SelectComponents(len(comps), eig)
	if err != nil {
		return nil, nil, err
	}
	loadings := make([][]float64, len(picked))
	values := make([]float64, len(picked))
	for r, idx := range picked {
		loadings[r] = comps[idx].Loading
		values[r] = comps[idx].Eigenvalue
	}
	m, err := matrix.NewDenseFromRows(loadings)
	if err != nil {
		return nil, nil, err
	}

	return m, values, nil
}

// rankedValues returns a copy of values sorted by |λ|, largest first.
func rankedValues(values []float64) ([]float64, error) {
	picked, err := SelectComponents(len(values), values)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(picked))
	for r, idx := range picked {
		out[r] = values[idx]
	}

	return out, nil
}

// Transform runs Analyze and returns the projection oriented by component:
// k rows, one value per observation in each.
func Transform(input [][]float64, k int, opts ...Option) ([][]float64, error) {
	res, err := Analyze(input, k, opts...)
	if err != nil {
		return nil, pcaErrorf(opTransform, err)
	}
	byComponent, err := matrix.Transpose(res.Projection)
	if err != nil {
		return nil, pcaErrorf(opTransform, err)
	}

	return byComponent.(*matrix.Dense).RawRows(), nil
}

// PrincipalComponentAnalysis projects input (variables × observations) onto
// its numComponents strongest covariance eigenvectors with default settings.
// The result has numComponents rows and one column per observation.
func PrincipalComponentAnalysis(input [][]float64, numComponents int) ([][]float64, error) {
	return Transform(input, numComponents, WithMethod(MethodEigen))
}
