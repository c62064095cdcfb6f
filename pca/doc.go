// Package pca implements principal component analysis on top of the dense
// kernel in package matrix.
//
// Data is oriented variables × observations: row i holds every observation
// of variable i. A DataSet deep-copies its input, centers each variable and
// builds the sample covariance matrix. Two engines extract the components:
//
//   - MethodEigen diagonalizes the covariance matrix with the QR algorithm
//     (matrix/ops.EigenSym) and ranks the eigenpairs by |λ|.
//   - MethodNIPALS extracts components one at a time from the centered data
//     and deflates the residual after each.
//
// Both engines agree on the principal axes up to sign. Analyze returns the
// full Result; Transform and PrincipalComponentAnalysis return only the
// projection, one row per component.
//
// Failures are wrapped sentinels: ErrInvalidRequest for a bad component count,
// and matrix.ErrDimensionMismatch, matrix.ErrSingular or matrix.ErrNotConverged
// from the numerical layers. Match them with errors.Is.
package pca
