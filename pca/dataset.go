// SPDX-License-Identifier: MIT

package pca

import (
	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/matrix/ops"
)

const (
	opNewDataSet  = "NewDataSet"
	opCenter      = "Center"
	opStandardize = "Standardize"
	opCovariance  = "Covariance"
	opEigenSet    = "CovarianceEigenSet"
	opProject     = "Project"
	opBuildPCs    = "BuildPrincipalComponents"
	opFromMatrix  = "NewDataSetFromMatrix"
	opCovarMatrix = "CovarianceMatrix"
)

// DataSet is a variables × observations table (row i = variable i,
// column j = observation j) that owns its storage.
//
// The constructor deep-copies its input and Center works on the copy, so
// nothing a DataSet does is ever visible through the caller's arrays. The
// raw input is kept next to the working copy because projections use it.
//
// A DataSet is not safe for concurrent mutation.
type DataSet struct {
	raw   *matrix.Dense // input as given
	work  *matrix.Dense // working copy, centered by Center
	means []float64     // total shift applied by Center, per variable
	scale []float64     // total factor removed by Standardize, per variable
}

// NewDataSet copies vals (variables × observations) into a new DataSet.
// Errors: ErrInvalidDimensions (empty), ErrDimensionMismatch (ragged), ErrNaNInf.
func NewDataSet(vals [][]float64) (*DataSet, error) {
	raw, err := matrix.NewDenseFromRows(vals)
	if err != nil {
		return nil, pcaErrorf(opNewDataSet, err)
	}

	return newDataSet(raw), nil
}

// NewDataSetFromMatrix copies m (variables × observations) into a new DataSet.
// Errors: ErrNilMatrix.
func NewDataSetFromMatrix(m matrix.Matrix) (*DataSet, error) {
	d, err := matrix.AsDense(m)
	if err != nil {
		return nil, pcaErrorf(opFromMatrix, err)
	}

	return newDataSet(d.Clone().(*matrix.Dense)), nil
}

func newDataSet(raw *matrix.Dense) *DataSet {
	return &DataSet{
		raw:   raw,
		work:  raw.Clone().(*matrix.Dense),
		means: make([]float64, raw.Rows()),
		scale: ones(raw.Rows()),
	}
}

// Variables returns the number of variables (rows).
func (d *DataSet) Variables() int { return d.raw.Rows() }

// Observations returns the number of observations (columns).
func (d *DataSet) Observations() int { return d.raw.Cols() }

// Data returns a copy of the working data (centered once Center ran).
func (d *DataSet) Data() *matrix.Dense { return d.work.Clone().(*matrix.Dense) }

// Means returns a copy of the per-variable shift applied by Center.
func (d *DataSet) Means() []float64 { return append([]float64(nil), d.means...) }

// Center subtracts each variable's mean from its observations and returns
// the means removed by this call. Centering twice is harmless: the second
// call removes means that are zero up to rounding.
func (d *DataSet) Center() ([]float64, error) {
	centered, means, err := matrix.CenterRows(d.work)
	if err != nil {
		return nil, pcaErrorf(opCenter, err)
	}
	d.work = centered
	for i, m := range means {
		d.means[i] += m
	}

	return means, nil
}

// Standardize centers every variable and divides it by its sample standard
// deviation, so the covariance matrix becomes the correlation matrix. It
// returns the standard deviations removed by this call; a constant variable
// reports 0 and is left as zeros.
// Errors: ErrDimensionMismatch with fewer than two observations.
func (d *DataSet) Standardize() ([]float64, error) {
	z, std, err := matrix.StandardizeRows(d.work)
	if err != nil {
		return nil, pcaErrorf(opStandardize, err)
	}
	// StandardizeRows centers as well; fold that shift into means.
	for i := range d.means {
		mean, err := matrix.Mean(mustRow(d.work, i))
		if err != nil {
			return nil, pcaErrorf(opStandardize, err)
		}
		d.means[i] += mean * d.scale[i]
		if std[i] > 0 {
			d.scale[i] *= std[i]
		}
	}
	d.work = z

	return std, nil
}

// Scales returns a copy of the per-variable factor divided out by Standardize
// (all ones before the first call).
func (d *DataSet) Scales() []float64 { return append([]float64(nil), d.scale...) }

// CovarianceMatrix returns the variables × variables sample covariance of the
// working data.
// Errors: ErrDimensionMismatch with fewer than two observations.
func (d *DataSet) CovarianceMatrix() (*matrix.Dense, error) {
	c, err := matrix.CovarianceRows(d.work)
	if err != nil {
		return nil, pcaErrorf(opCovarMatrix, err)
	}

	return c, nil
}

// Covariance returns the sample covariance between variables i and j.
// Errors: ErrOutOfRange, ErrDimensionMismatch.
func (d *DataSet) Covariance(i, j int) (float64, error) {
	a, err := d.work.Row(i)
	if err != nil {
		return 0, pcaErrorf(opCovariance, err)
	}
	b, err := d.work.Row(j)
	if err != nil {
		return 0, pcaErrorf(opCovariance, err)
	}
	v, err := matrix.Covariance(a, b)
	if err != nil {
		return 0, pcaErrorf(opCovariance, err)
	}

	return v, nil
}

// TotalVariance returns the trace of the covariance matrix: the summed
// sample variance of every variable of the working data.
// Errors: ErrDimensionMismatch with fewer than two observations.
func (d *DataSet) TotalVariance() (float64, error) {
	total := 0.0
	for i := 0; i < d.Variables(); i++ {
		v, err := d.Covariance(i, i)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// CovarianceEigenSet diagonalizes the covariance matrix of the working data.
// Callers normally Center first.
// Errors: those of CovarianceMatrix and ops.EigenSym.
func (d *DataSet) CovarianceEigenSet(opts ...ops.Option) (*ops.EigenSet, error) {
	c, err := d.CovarianceMatrix()
	if err != nil {
		return nil, err
	}
	es, err := ops.EigenSym(c, opts...)
	if err != nil {
		return nil, pcaErrorf(opEigenSet, err)
	}

	return es, nil
}

// Project maps the raw (uncentered) observations onto components
// (k × variables) and returns observations × k.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func (d *DataSet) Project(components matrix.Matrix) (*matrix.Dense, error) {
	return project(d.raw, components, nil)
}

// ProjectCentered is Project over the working (centered) data.
func (d *DataSet) ProjectCentered(components matrix.Matrix) (*matrix.Dense, error) {
	return project(d.work, components, nil)
}

// project computes (components · X)ᵀ.
func project(x *matrix.Dense, components matrix.Matrix, st *matrix.Stats) (*matrix.Dense, error) {
	p, err := matrix.MulWithStats(components, x, st)
	if err != nil {
		return nil, pcaErrorf(opProject, err)
	}
	pt, err := matrix.Transpose(p)
	if err != nil {
		return nil, pcaErrorf(opProject, err)
	}

	return pt.(*matrix.Dense), nil
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}

// mustRow returns row i of a matrix whose bounds the caller already checked.
func mustRow(m *matrix.Dense, i int) []float64 {
	row, _ := m.Row(i)

	return row
}
