// --- START OF FINAL REVISED FILE pkg/salvage/extract/extract.go ---
package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ErrPatternCompile indicates a configured pattern is not a valid regular expression.
var ErrPatternCompile = errors.New("failed to compile pattern")

// LossyMode selects how invalid UTF-8 in captured output is handled.
type LossyMode string

const (
	// LossyDrop removes invalid byte sequences.
	LossyDrop LossyMode = "drop"
	// LossyReplace substitutes U+FFFD for invalid byte sequences.
	LossyReplace LossyMode = "replace"
)

// IsValid reports whether m is a known mode.
func (m LossyMode) IsValid() bool {
	return m == LossyDrop || m == LossyReplace
}

// Spec is the configuration form of a pattern.
type Spec struct {
	Name  string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Label string `mapstructure:"label" json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Expr  string `mapstructure:"regex" json:"regex" yaml:"regex" toml:"regex"`
}

// DefaultSpecs are the two searches run when nothing else is configured:
// Amazon product identifiers and calls to the link helper.
var DefaultSpecs = []Spec{
	{Name: "asin", Label: "ASINs", Expr: `B0[A-Z0-9]{8}`},
	{Name: "amazon-link", Label: "links", Expr: `getAmazonLink\(.*?\)`},
}

// Pattern is a compiled Spec.
type Pattern struct {
	Name  string
	Label string
	Regex *regexp.Regexp
}

// Result holds the matches for one pattern.
type Result struct {
	Pattern Pattern
	Matches MatchSet
}

// Extractor applies an ordered list of patterns to text.
type Extractor struct {
	patterns []Pattern
	logger   *slog.Logger
}

// NewExtractor compiles specs in order. A Spec without a Label uses its Name.
func NewExtractor(loggerHandler slog.Handler, specs []Spec) (*Extractor, error) {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "extractor"))

	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no patterns configured", ErrPatternCompile)
	}
	seen := make(map[string]struct{}, len(specs))
	patterns := make([]Pattern, 0, len(specs))
	for i, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: pattern #%d has no name", ErrPatternCompile, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern name '%s'", ErrPatternCompile, name)
		}
		seen[name] = struct{}{}
		if spec.Expr == "" {
			return nil, fmt.Errorf("%w: pattern '%s' has an empty regex", ErrPatternCompile, name)
		}
		re, err := regexp.Compile(spec.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern '%s': %w", ErrPatternCompile, name, err)
		}
		label := spec.Label
		if label == "" {
			label = name
		}
		patterns = append(patterns, Pattern{Name: name, Label: label, Regex: re})
	}
	return &Extractor{patterns: patterns, logger: logger}, nil
}

// Patterns returns the compiled patterns in order.
func (e *Extractor) Patterns() []Pattern {
	return append([]Pattern(nil), e.patterns...)
}

// Extract runs every pattern independently over text and collects the
// non-overlapping matches of each into a set.
func (e *Extractor) Extract(text string) []Result {
	results := make([]Result, 0, len(e.patterns))
	for _, p := range e.patterns {
		found := p.Regex.FindAllString(text, -1)
		set := NewMatchSet(found...)
		e.logger.Debug("Pattern applied",
			slog.String("pattern", p.Name),
			slog.Int("matches", len(found)),
			slog.Int("unique", set.Len()))
		results = append(results, Result{Pattern: p, Matches: set})
	}
	return results
}

// DecodeLossy interprets content as UTF-8 without ever failing.
func DecodeLossy(content []byte, mode LossyMode) string {
	if mode == LossyReplace {
		out, err := unicode.UTF8.NewDecoder().Bytes(content)
		if err == nil {
			return string(out)
		}
		return strings.ToValidUTF8(string(content), "\uFFFD")
	}
	return strings.ToValidUTF8(string(content), "")
}

// --- MatchSet ---

// MatchSet is a deduplicated, unordered collection of matched strings.
type MatchSet map[string]struct{}

// NewMatchSet builds a set from items, collapsing duplicates.
func NewMatchSet(items ...string) MatchSet {
	s := make(MatchSet, len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts item.
func (s MatchSet) Add(item string) { s[item] = struct{}{} }

// Contains reports whether item is in the set.
func (s MatchSet) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of unique items.
func (s MatchSet) Len() int { return len(s) }

// Sorted returns the items in lexical order, for stable output.
func (s MatchSet) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// String renders the set as {"a", "b"}; an empty set renders as {}.
func (s MatchSet) String() string {
	items := s.Sorted()
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// --- END OF FINAL REVISED FILE pkg/salvage/extract/extract.go ---
