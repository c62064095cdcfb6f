// SPDX-License-Identifier: MIT

// Command lvpca reduces a delimited data file to its principal components.
//
// Usage:
//
//	lvpca [flags] <file>
//
// The input holds a "points,dimensions" header followed by one line per
// point. The projection (one line per point, one value per component) is
// written next to the input as <name>_processed.<ext> unless -o is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/lvpca/matrix"
	"github.com/katalvlaran/lvpca/pca"
	"github.com/katalvlaran/lvpca/report"
	"github.com/katalvlaran/lvpca/tabular"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	cfg, input, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "lvpca: %v\n", err)
		return exitUsage
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err = process(cfg, input, logger); err != nil {
		logger.Error("lvpca failed", "input", input, "kind", errorKind(err), "err", err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitError
	}

	return exitOK
}

// parseArgs reads the optional config file and then lets every flag that
// was set on the command line override it.
func parseArgs(args []string, stderr io.Writer) (Config, string, error) {
	cfg := defaultConfig()
	fs := flag.NewFlagSet("lvpca", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML or TOML config file (.toml selects TOML)")
	components := fs.Int("components", cfg.Components, "number of principal components to keep")
	method := fs.String("method", cfg.Method, "extraction engine: eigen or nipals")
	delimiter := fs.String("delimiter", cfg.Delimiter, "field separator: comma, tab or a single character")
	tolerance := fs.Float64("tolerance", cfg.Tolerance, "convergence tolerance")
	maxIter := fs.Int("max-iterations", cfg.MaxIterations, "iteration cap")
	centered := fs.Bool("centered", cfg.Centered, "project the centered data instead of the raw input")
	standardize := fs.Bool("standardize", cfg.Standardize, "scale variables to unit variance (correlation PCA)")
	output := fs.String("o", "", "output path (default <name>_processed.<ext>)")
	format := fs.String("format", "", "output format: csv or parquet (default from -o extension, else csv)")
	header := fs.Bool("header", false, "start csv output with a points,dimensions header")
	scree := fs.String("scree", "", "write a scree plot image (png, svg, pdf) to this path")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: lvpca [flags] <file>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, "", err
		}
		return cfg, "", fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, "", fmt.Errorf("expected exactly one input file, got %d: %w", fs.NArg(), errUsage)
	}
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return cfg, "", err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "components":
			cfg.Components = *components
		case "method":
			cfg.Method = *method
		case "delimiter":
			cfg.Delimiter = *delimiter
		case "tolerance":
			cfg.Tolerance = *tolerance
		case "max-iterations":
			cfg.MaxIterations = *maxIter
		case "centered":
			cfg.Centered = *centered
		case "standardize":
			cfg.Standardize = *standardize
		case "o":
			cfg.Output = *output
		case "format":
			cfg.Format = *format
		case "header":
			cfg.Header = *header
		case "scree":
			cfg.Scree = *scree
		case "v":
			cfg.Verbose = *verbose
		}
	})

	return cfg, fs.Arg(0), nil
}

// process reads input, runs the analysis and writes every requested output.
func process(cfg Config, input string, logger *slog.Logger) error {
	s, err := cfg.validate()
	if err != nil {
		return err
	}

	tbl, err := tabular.ReadFile(input, tabular.WithDelimiter(s.delimiter))
	if err != nil {
		return err
	}
	logger.Info("read data", "path", input, "points", tbl.Points, "dimensions", tbl.Dimensions)

	var st matrix.Stats
	opts := append(cfg.options(s), pca.WithStats(&st), pca.WithLogger(logger))
	res, err := pca.Analyze(tbl.Variables(), cfg.Components, opts...)
	if err != nil {
		return err
	}
	logger.Info("analysis done",
		"method", res.Method,
		"components", len(res.Values),
		"iterations", res.Iterations,
		"products", st.Products,
		"multiplications", st.Multiplications)
	if shares, err := explained(res); err == nil {
		logger.Debug("explained variance", "eigenvalues", res.Values, "shares", shares)
	}

	out := cfg.outputPath(input, s)
	if err = writeProjection(out, res.Projection.RawRows(), cfg, s); err != nil {
		return err
	}
	logger.Info("wrote projection", "path", out, "format", s.format)

	if cfg.Scree != "" {
		if err = report.SaveScreePlot(cfg.Scree, res.Spectrum, screeOptions(res)...); err != nil {
			return err
		}
		logger.Info("wrote scree plot", "path", cfg.Scree)
	}

	return nil
}

// explained returns the share of the total variance held by each kept
// component.
func explained(res *pca.Result) ([]float64, error) {
	if res.TotalVariance > 0 {
		return report.ExplainedVarianceOf(res.Values, res.TotalVariance)
	}
	return report.ExplainedVariance(res.Values)
}

// screeOptions measures every bar against the total variance.
func screeOptions(res *pca.Result) []report.Option {
	if res.TotalVariance > 0 {
		return []report.Option{report.WithTotalVariance(res.TotalVariance)}
	}
	return nil
}

func writeProjection(path string, rows [][]float64, cfg Config, s settings) (err error) {
	if s.format == formatCSV {
		opts := []tabular.Option{tabular.WithDelimiter(s.delimiter)}
		if cfg.Header {
			opts = append(opts, tabular.WithHeader())
		}
		return tabular.WriteFile(path, rows, opts...)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return tabular.WriteParquet(f, rows)
}

// errorKind names the failure class for the log line.
func errorKind(err error) string {
	switch {
	case errors.Is(err, errUsage):
		return "usage"
	case errors.Is(err, tabular.ErrMalformed):
		return "malformed input"
	case errors.Is(err, pca.ErrInvalidRequest):
		return "invalid request"
	case errors.Is(err, matrix.ErrDimensionMismatch), errors.Is(err, matrix.ErrInvalidDimensions):
		return "dimension mismatch"
	case errors.Is(err, matrix.ErrSingular):
		return "singular input"
	case errors.Is(err, matrix.ErrNotConverged):
		return "not converged"
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return "io"
	default:
		return "internal"
	}
}
