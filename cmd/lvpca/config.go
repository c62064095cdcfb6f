// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvpca/pca"
	"github.com/katalvlaran/lvpca/tabular"
)

// errUsage marks a bad command line or configuration (exit code 2).
var errUsage = errors.New("usage")

// Output formats.
const (
	formatCSV     = "csv"
	formatParquet = "parquet"
)

// Config is the full run configuration. A config file fills it first;
// explicitly set flags override individual fields.
type Config struct {
	Components    int     `yaml:"components" toml:"components"`
	Method        string  `yaml:"method" toml:"method"`
	Delimiter     string  `yaml:"delimiter" toml:"delimiter"`
	Tolerance     float64 `yaml:"tolerance" toml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations" toml:"max_iterations"`
	Centered      bool    `yaml:"centered" toml:"centered"`
	Standardize   bool    `yaml:"standardize" toml:"standardize"`
	Output        string  `yaml:"output" toml:"output"`
	Format        string  `yaml:"format" toml:"format"` // csv or parquet; empty follows the output extension
	Header        bool    `yaml:"header" toml:"header"`
	Scree         string  `yaml:"scree" toml:"scree"`
	Verbose       bool    `yaml:"verbose" toml:"verbose"`
}

// defaultConfig mirrors the library defaults.
func defaultConfig() Config {
	return Config{
		Components:    1,
		Method:        pca.DefaultMethod.String(),
		Delimiter:     "comma",
		Tolerance:     pca.DefaultTolerance,
		MaxIterations: pca.DefaultMaxIterations,
	}
}

// loadConfig decodes path into cfg, picking TOML for .toml files and YAML
// otherwise. Unknown keys are rejected.
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(cfg); errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return fmt.Errorf("config %s: %v: %w", path, err, errUsage)
	}

	return nil
}

// settings is a validated Config translated into library values.
type settings struct {
	method    pca.Method
	delimiter rune
	format    string
}

// validate checks every field and returns the typed settings.
// Every value passed on to an option constructor has been checked here.
func (c Config) validate() (settings, error) {
	var s settings
	if c.Components < 1 {
		return s, fmt.Errorf("components must be >= 1, got %d: %w", c.Components, errUsage)
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return s, fmt.Errorf("tolerance must be finite and > 0, got %v: %w", c.Tolerance, errUsage)
	}
	if c.MaxIterations < 1 {
		return s, fmt.Errorf("max-iterations must be >= 1, got %d: %w", c.MaxIterations, errUsage)
	}
	m, err := pca.ParseMethod(c.Method)
	if err != nil {
		return s, fmt.Errorf("%v: %w", err, errUsage)
	}
	d, err := tabular.ParseDelimiter(c.Delimiter)
	if err != nil {
		return s, fmt.Errorf("%v: %w", err, errUsage)
	}
	format := strings.ToLower(c.Format)
	if format == "" && strings.EqualFold(filepath.Ext(c.Output), ".parquet") {
		format = formatParquet
	}
	switch format {
	case "", formatCSV:
		format = formatCSV
	case formatParquet:
	default:
		return s, fmt.Errorf("unknown format %q: %w", c.Format, errUsage)
	}
	s.method, s.delimiter, s.format = m, d, format

	return s, nil
}

// options builds the pca options for this configuration.
func (c Config) options(s settings) []pca.Option {
	opts := []pca.Option{
		pca.WithMethod(s.method),
		pca.WithTolerance(c.Tolerance),
		pca.WithMaxIterations(c.MaxIterations),
	}
	if c.Centered {
		opts = append(opts, pca.WithCenteredProjection())
	}
	if c.Standardize {
		opts = append(opts, pca.WithStandardize())
	}

	return opts
}

// outputPath is the explicit output or the input's _processed sibling,
// with a .parquet extension for parquet output.
func (c Config) outputPath(input string, s settings) string {
	if c.Output != "" {
		return c.Output
	}
	out := tabular.ProcessedName(input)
	if s.format == formatParquet {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + ".parquet"
	}

	return out
}
