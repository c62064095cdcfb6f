// Package report summarises a finished analysis: ExplainedVariance and
// ExplainedVarianceOf turn ranked eigenvalues into shares of the total
// variance, and the ScreePlot family renders them with gonum/plot as bars
// plus a cumulative line.
package report
