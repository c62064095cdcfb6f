// Package matrix is the dense linear-algebra kernel behind lvpca.
//
// The matrix package provides:
//
//   - Matrix, a small interface (Rows, Cols, At, Set, Clone), and Dense, its
//     row-major implementation with an optional NaN/Inf guard.
//   - Fresh-result kernels: Add, Sub, Mul, Transpose, Scale, MatVec, Outer.
//   - A vector kernel over []float64: Dot, Norm, Normalize, Project.
//   - Statistics in the variables × observations orientation: Mean,
//     Covariance, CenterRows, CovarianceRows.
//   - Stats, a caller-owned counter of products and scalar multiplications.
//   - ToGonum and FromGonum, copying bridges to gonum's mat package for
//     callers that mix both libraries.
//
// Kernels never mutate their operands and never return views into another
// matrix's storage. Failures are reported as wrapped sentinels (ErrDimensionMismatch,
// ErrSingular, ErrNotConverged, ...) that callers match with errors.Is.
//
// The QR factorizer and the symmetric eigen-solver live in matrix/ops.
package matrix
