// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"
)

const (
	// DefaultTitle heads every scree plot unless WithTitle overrides it.
	DefaultTitle = "Scree plot"

	// DefaultWidth and DefaultHeight size the rendered image.
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch

	// DefaultBarWidth is the width of one component bar.
	DefaultBarWidth = 20 * vg.Millimeter
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	title    string
	width    vg.Length
	height   vg.Length
	barWidth vg.Length
	total    float64 // 0 means the sum of the plotted values
}

// WithTitle replaces the plot title.
func WithTitle(title string) Option {
	return func(o *Options) { o.title = title }
}

// WithSize sets the image size. Panics if either side is not positive.
func WithSize(width, height vg.Length) Option {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("report: WithSize(%v, %v): sides must be > 0", width, height))
	}

	return func(o *Options) {
		o.width = width
		o.height = height
	}
}

// WithBarWidth sets the width of each bar. Panics if w is not positive.
func WithBarWidth(w vg.Length) Option {
	if w <= 0 {
		panic(fmt.Sprintf("report: WithBarWidth(%v): width must be > 0", w))
	}

	return func(o *Options) { o.barWidth = w }
}

// WithTotalVariance sets the denominator of every share, normally the trace
// of the covariance matrix. Panics if total is not finite and positive.
func WithTotalVariance(total float64) Option {
	if !(total > 0) || math.IsInf(total, 0) {
		panic(fmt.Sprintf("report: WithTotalVariance(%v): total must be finite and > 0", total))
	}

	return func(o *Options) { o.total = total }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		title:    DefaultTitle,
		width:    DefaultWidth,
		height:   DefaultHeight,
		barWidth: DefaultBarWidth,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
