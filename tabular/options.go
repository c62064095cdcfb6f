// SPDX-License-Identifier: MIT

package tabular

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultDelimiter separates values on a line.
	DefaultDelimiter = ','

	// DefaultHeader controls whether Write emits the points,dimensions header.
	DefaultHeader = false
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	delimiter rune
	header    bool
}

// WithDelimiter sets the field separator (',' by default, '\t' for tab files).
// Panics on a delimiter encoding/csv cannot use.
func WithDelimiter(r rune) Option {
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError || !utf8.ValidRune(r) {
		panic(fmt.Sprintf("tabular: WithDelimiter(%q): invalid delimiter", r))
	}

	return func(o *Options) { o.delimiter = r }
}

// WithHeader makes Write start with a points,dimensions line.
func WithHeader() Option {
	return func(o *Options) { o.header = true }
}

// ParseDelimiter maps "comma" / "tab" (or a single character) to a rune.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "comma", ",":
		return ',', nil
	case "tab", "\t", `\t`:
		return '\t', nil
	case "semicolon", ";":
		return ';', nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError {
			return r, nil
		}
	}

	return 0, fmt.Errorf("tabular: unknown delimiter %q", s)
}

func gatherOptions(user ...Option) Options {
	o := Options{
		delimiter: DefaultDelimiter,
		header:    DefaultHeader,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
