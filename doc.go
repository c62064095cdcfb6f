// Package lvpca is principal component analysis built from first principles:
// a dense matrix kernel, a Gram-Schmidt QR factorizer, an unshifted QR
// eigen-solver and a NIPALS engine.
//
// 🚀 What is inside?
//
//	matrix/        row-major Dense kernel: products (with work counters),
//	               transpose, vector helpers, centering, covariance
//	matrix/ops/    QR factorization (modified Gram-Schmidt) and the
//	               symmetric QR-algorithm eigen-solver
//	pca/           DataSet, component ranking, Analyze / Transform and NIPALS
//	tabular/       "points,dimensions" delimited files in, projections out
//	               (delimited text or parquet)
//	report/        explained variance and scree plots (gonum/plot)
//	cmd/lvpca/     command-line front end with YAML / TOML configuration
//
// ✨ Guarantees
//
//   - Deterministic: no randomness, fixed loop orders, equal inputs give equal results.
//   - Explicit errors: sentinels (matrix.ErrDimensionMismatch, matrix.ErrSingular,
//     matrix.ErrNotConverged, pca.ErrInvalidRequest, ...) matched with errors.Is.
//   - Copy semantics: nothing returned aliases caller data.
//
// Quick start:
//
//	res, err := pca.Analyze(data, 2) // data is variables × observations
//	if err != nil { ... }
//	scores := res.Projection          // observations × 2
package lvpca
