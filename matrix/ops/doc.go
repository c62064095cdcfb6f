// Package ops provides the factorizations behind lvpca's principal component
// analysis: a Gram-Schmidt QR factorizer and a QR-algorithm eigen-solver for
// real symmetric matrices.
//
// Both routines accept any matrix.Matrix, never modify it, and report failures
// with the sentinels of package matrix (ErrDimensionMismatch, ErrAsymmetry,
// ErrSingular, ErrNotConverged). Behavior is tuned with functional options;
// the defaults are DefaultTolerance, DefaultMaxIterations and DefaultEpsilon.
package ops
