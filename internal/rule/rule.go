// Package rule defines regex-based pattern matching rules: the core
// building block phos uses to decide what to colorize, skip, replace, or
// block/unblock in a line of text.
package rule

import (
	"regexp"

	"github.com/hydepwns/phos-go/internal/color"
)

// CountMode controls how a rule is applied when multiple matches exist on
// a line.
type CountMode int

const (
	// Once applies the rule to the first match only.
	Once CountMode = iota
	// More applies the rule to every match on the line. Default.
	More
	// Stop is treated identically to More (matches the original's
	// behavior: CountMode::Stop exists but is handled the same as More in
	// the matching logic).
	Stop
	// Block starts block coloring, active until an Unblock rule matches.
	Block
	// Unblock ends block coloring.
	Unblock
)

// Rule is a compiled regex paired with the styling and behavior to apply
// on a match: colors, bold, skip-the-line, block mode, or text
// replacement.
type Rule struct {
	Pattern *regexp.Regexp
	Colors  []color.Color
	Count   CountMode
	Bold    bool
	Skip    bool
	Replace string // replacement template ($1, $2, ${name}); applied only when HasReplace reports true
	hasReplace bool
}

// IsMatch reports whether the rule's pattern matches anywhere in text.
func (r Rule) IsMatch(text string) bool {
	return r.Pattern.MatchString(text)
}

// FindAllIndex returns the start/end byte offsets of every non-overlapping
// match in text, honoring Rule.Count (Once limits to the first match).
func (r Rule) FindAllIndex(text string) [][2]int {
	limit := -1
	if r.Count == Once {
		limit = 1
	}
	raw := r.Pattern.FindAllStringIndex(text, limit)
	out := make([][2]int, len(raw))
	for i, m := range raw {
		out[i] = [2]int{m[0], m[1]}
	}
	return out
}

// HasReplace reports whether this rule has a replacement template set.
func (r Rule) HasReplace() bool { return r.hasReplace }

// ReplaceAll applies the rule's replacement template to every match in
// text, using Go's $1/${name} regexp replacement syntax.
func (r Rule) ReplaceAll(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replace)
}

// Builder provides a fluent API for constructing a Rule.
type Builder struct {
	pattern *regexp.Regexp
	colors  []color.Color
	count   CountMode
	bold    bool
	skip    bool
	replace string
	hasReplace bool
}

// New compiles pattern and returns a Builder for fluent configuration.
// The regex is compiled exactly once, here, matching the invariant that a
// Rule's pattern never recompiles on the hot colorization path.
func New(pattern string) (*Builder, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Builder{pattern: re, count: More}, nil
}

// MustNew is like New but panics on an invalid pattern. Intended for
// built-in program definitions where the pattern is a compile-time
// constant and a compile failure indicates a programming error.
func MustNew(pattern string) *Builder {
	b, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Builder) Semantic(s color.SemanticColor) *Builder {
	b.colors = append(b.colors, color.Semantic(s))
	return b
}

func (b *Builder) Named(name string) *Builder {
	b.colors = append(b.colors, color.Named(name))
	return b
}

func (b *Builder) Hex(hex string) *Builder {
	b.colors = append(b.colors, color.Hex(hex))
	return b
}

func (b *Builder) Color(c color.Color) *Builder {
	b.colors = append(b.colors, c)
	return b
}

func (b *Builder) Bold() *Builder {
	b.bold = true
	return b
}

func (b *Builder) Count(mode CountMode) *Builder {
	b.count = mode
	return b
}

func (b *Builder) SkipLine() *Builder {
	b.skip = true
	return b
}

func (b *Builder) ReplaceWith(template string) *Builder {
	b.replace = template
	b.hasReplace = true
	return b
}

func (b *Builder) Build() Rule {
	return Rule{
		Pattern:    b.pattern,
		Colors:     b.colors,
		Count:      b.count,
		Bold:       b.bold,
		Skip:       b.skip,
		Replace:    b.replace,
		hasReplace: b.hasReplace,
	}
}
