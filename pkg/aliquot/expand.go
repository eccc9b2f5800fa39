package aliquot

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/trsplat/pkg/errors"
)

// QQDepth is the depth of a quarter-quarter.
const QQDepth = 2

// Options bounds the depth of expanded paths.
type Options struct {
	// MinDepth expands coarser divisions to all of their descendants at this depth.
	MinDepth int
	// MaxDepth truncates finer divisions to this depth. Zero means unlimited.
	MaxDepth int
}

// QQ expands every aliquot to exactly quarter-quarter granularity.
var QQ = Options{MinDepth: QQDepth, MaxDepth: QQDepth}

// Exact keeps every aliquot at the depth it was written.
var Exact = Options{}

var halves = map[string][2]Quadrant{
	"N2": {NW, NE},
	"S2": {SW, SE},
	"E2": {NE, SE},
	"W2": {NW, SW},
}

var cleanReplacer = strings.NewReplacer(
	"1⁄2", "2",
	"1⁄4", "",
	"1/2", "2",
	"1/4", "",
	"/4", "",
	"/2", "2",
	"/", "",
	"-", "",
	".", "",
	" ", "",
	"\t", "",
)

// Clean normalises an aliquot string into clean notation: uppercase, no
// separators, "½" as "2", and no quarter markers. "S/2 NE/4" becomes "S2NE".
func Clean(s string) string {
	// NFKC turns ½ and ¼ into "1⁄2" and "1⁄4" (with U+2044 fraction slash).
	s = norm.NFKC.String(s)
	return strings.ToUpper(cleanReplacer.Replace(s))
}

// Tokenize splits a cleaned aliquot string into two-character divisions,
// left to right. "ALL" and the empty string yield no tokens.
func Tokenize(s string) ([]string, error) {
	c := Clean(s)
	if c == "" || c == "ALL" {
		return nil, nil
	}
	if len(c)%2 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidAliquot, "cannot parse aliquot %q", s)
	}
	toks := make([]string, 0, len(c)/2)
	for i := 0; i < len(c); i += 2 {
		tok := c[i : i+2]
		if _, ok := ParseQuadrant(tok); !ok {
			if _, ok := halves[tok]; !ok {
				return nil, errors.New(errors.ErrCodeInvalidAliquot, "cannot parse aliquot %q: unknown division %q", s, tok)
			}
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// Expand converts one aliquot string into the quadrant paths it covers.
func Expand(s string, opts Options) ([]Path, error) {
	toks, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	paths := []Path{{}}
	for i := len(toks) - 1; i >= 0; i-- {
		tok := toks[i]
		var next []Path
		if q, ok := ParseQuadrant(tok); ok {
			for _, p := range paths {
				next = append(next, p.Child(q))
			}
		} else {
			pair := halves[tok]
			for _, p := range paths {
				next = append(next, p.Child(pair[0]), p.Child(pair[1]))
			}
		}
		paths = next
	}
	return bound(paths, opts), nil
}

// ExpandList expands a comma- or semicolon-separated list of aliquots,
// preserving order and dropping duplicates.
func ExpandList(s string, opts Options) ([]Path, error) {
	var out []Path
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		paths, err := Expand(part, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, paths...)
	}
	return dedupe(out), nil
}

// ExpandNames is like ExpandList but returns clean-notation names.
func ExpandNames(s string, opts Options) ([]string, error) {
	paths, err := ExpandList(s, opts)
	if err != nil {
		return nil, err
	}
	return Names(paths), nil
}

// Names returns the clean-notation name of every path.
func Names(paths []Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

// ParsePath parses a single division in clean notation made only of
// quadrants ("NENE", "SWNE"). Halves are rejected because they name two
// divisions.
func ParsePath(s string) (Path, error) {
	toks, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	p := make(Path, 0, len(toks))
	for i := len(toks) - 1; i >= 0; i-- {
		q, ok := ParseQuadrant(toks[i])
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidAliquot, "%q is not a single division", s)
		}
		p = append(p, q)
	}
	return p, nil
}

func bound(paths []Path, opts Options) []Path {
	var out []Path
	for _, p := range paths {
		if opts.MaxDepth > 0 && len(p) > opts.MaxDepth {
			p = p[:opts.MaxDepth]
		}
		out = append(out, fill(p, opts.MinDepth)...)
	}
	return dedupe(out)
}

// fill expands p to every descendant at the given depth.
func fill(p Path, depth int) []Path {
	if len(p) >= depth {
		return []Path{p}
	}
	var out []Path
	for _, q := range Quadrants {
		out = append(out, fill(p.Child(q), depth)...)
	}
	return out
}

func dedupe(paths []Path) []Path {
	out := paths[:0:0]
	for _, p := range paths {
		if !slices.ContainsFunc(out, p.Equal) {
			out = append(out, p)
		}
	}
	return out
}
