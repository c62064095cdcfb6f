// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/matrix/ops"
)

// Method selects the engine that extracts principal components.
type Method int

const (
	// MethodEigen diagonalizes the covariance matrix with the QR algorithm.
	MethodEigen Method = iota
	// MethodNIPALS extracts components one at a time by deflation.
	MethodNIPALS
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodEigen:
		return "eigen"
	case MethodNIPALS:
		return "nipals"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "eigen" or "nipals" (case-insensitive) to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eigen", "qr":
		return MethodEigen, nil
	case "nipals":
		return MethodNIPALS, nil
	default:
		return 0, fmt.Errorf("unknown method %q: %w", s, ErrInvalidRequest)
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMethod is the engine used by Analyze when none is given.
	DefaultMethod = MethodEigen

	// DefaultTolerance is the convergence tolerance of both engines. The QR
	// algorithm bounds diagonal change and off-diagonal size relative to the
	// largest diagonal entry. NIPALS bounds the relative change of tᵀt and the
	// movement of the loading between two iterations.
	DefaultTolerance = ops.DefaultTolerance

	// DefaultMaxIterations caps both engines (per component for NIPALS).
	DefaultMaxIterations = ops.DefaultMaxIterations

	// DefaultCenteredProjection keeps the projection of the raw input.
	DefaultCenteredProjection = false

	// DefaultStandardize analyzes the covariance (not the correlation) matrix.
	DefaultStandardize = false
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	method             Method
	tol                float64
	maxIter            int
	centeredProjection bool
	standardize        bool
	stats              *matrix.Stats
	logger             *slog.Logger
}

// WithMethod selects the extraction engine.
// Panics on an unknown Method value.
func WithMethod(m Method) Option {
	if m != MethodEigen && m != MethodNIPALS {
		panic(fmt.Sprintf("pca: WithMethod(%v): unknown method", m))
	}

	return func(o *Options) { o.method = m }
}

// WithTolerance sets the convergence tolerance of the selected engine.
// Panics if tol is not a finite positive number.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("pca: WithTolerance(%v): tolerance must be finite and > 0", tol))
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIterations sets the iteration cap of the selected engine.
// Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("pca: WithMaxIterations(%d): cap must be >= 1", n))
	}

	return func(o *Options) { o.maxIter = n }
}

// WithCenteredProjection projects the centered data instead of the raw input.
func WithCenteredProjection() Option {
	return func(o *Options) { o.centeredProjection = true }
}

// WithStandardize scales every variable to unit variance before the
// analysis, which turns the covariance matrix into the correlation matrix.
// The projection then uses the standardized data.
func WithStandardize() Option {
	return func(o *Options) { o.standardize = true }
}

// WithStats records every matrix product performed by the analysis in st.
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
		method:             DefaultMethod,
		tol:                DefaultTolerance,
		maxIter:            DefaultMaxIterations,
		centeredProjection: DefaultCenteredProjection,
		standardize:        DefaultStandardize,
		logger:             discardLogger,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// eigenOptions translates the analysis options for ops.EigenSym.
func (o Options) eigenOptions() []ops.Option {
	return []ops.Option{
		ops.WithTolerance(o.tol),
		ops.WithMaxIterations(o.maxIter),
		ops.WithStats(o.stats),
		ops.WithLogger(o.logger),
	}
}
