// SPDX-License-Identifier: MIT

// Package ops: functional configuration for the factorization and eigen routines.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - gatherOptions helper (internal) that resolves defaults.
package ops

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvpca/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance bounds, relative to the largest diagonal magnitude, both
	// the change of any diagonal entry between two QR iterations and every
	// off-diagonal entry.
	DefaultTolerance = 1e-5

	// DefaultMaxIterations caps the QR algorithm.
	DefaultMaxIterations = 10000

	// DefaultEpsilon is the relative threshold under which a Gram-Schmidt
	// residual is treated as zero; it also scales the symmetry check.
	DefaultEpsilon = 1e-12
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tol            float64
	maxIter        int
	eps            float64
	rankCompletion bool
	stats          *matrix.Stats
	logger         *slog.Logger
}

// WithTolerance sets the convergence tolerance of EigenSym.
// Panics if tol is not a finite positive number (programmer error).
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("ops: WithTolerance(%v): tolerance must be finite and > 0", tol))
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIterations sets the iteration cap of EigenSym.
// Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("ops: WithMaxIterations(%d): cap must be >= 1", n))
	}

	return func(o *Options) { o.maxIter = n }
}

// WithEpsilon sets the zero-residual threshold used by the QR factorizer.
// Panics if eps is negative or not finite.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("ops: WithEpsilon(%v): epsilon must be finite and >= 0", eps))
	}

	return func(o *Options) { o.eps = eps }
}

// WithRankCompletion makes QR complete the orthonormal basis when a column is
// linearly dependent on the previous ones instead of failing with ErrSingular.
// The completing column gets a zero on R's diagonal, so Q·R still equals the input.
// EigenSym always factorizes with rank completion.
func WithRankCompletion() Option {
	return func(o *Options) { o.rankCompletion = true }
}

// WithStats records every matrix product performed by EigenSym in st.
func WithStats(st *matrix.Stats) Option {
	return func(o *Options) { o.stats = st }
}

// WithLogger routes debug traces to l. A nil logger restores the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = discardLogger
		}
		o.logger = l
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// gatherOptions applies setters in order on top of the documented defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIterations,
		eps:     DefaultEpsilon,
		logger:  discardLogger,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
