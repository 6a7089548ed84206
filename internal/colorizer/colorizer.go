// Package colorizer applies a program's rules to lines of text, producing
// ANSI-styled output for a terminal.
package colorizer

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/rule"
)

// MaxLineLength caps the size of a line the colorizer will attempt to
// process. Lines longer than this pass through unmodified: regex matching
// cost grows with line length, and pathologically long lines (a stack
// trace dumped on one line, a base64 blob) aren't worth the cost of
// coloring.
const MaxLineLength = 10_000

// compiledRule precomputes the lipgloss style(s) for a rule so the hot
// path (one call per line) never rebuilds a style from a color.
type compiledRule struct {
	rule.Rule
	style       lipgloss.Style
	colorizable bool // true if this rule can contribute a colored range
}

// Colorizer applies a fixed set of rules, resolved against a theme, to
// lines of text. It is not safe for concurrent use across goroutines
// because of the block-mode state (in_block/block_style) it tracks
// between calls to Colorize for the same stream; use one Colorizer per
// stream (e.g. per container) and Reset it between unrelated streams.
type Colorizer struct {
	rules []compiledRule

	colorEnabled bool
	inBlock      bool
	blockStyle   lipgloss.Style
}

// New builds a Colorizer from a program's rules, resolving each rule's
// colors against theme and precomputing lipgloss styles.
func New(rules []rule.Rule, theme *color.Theme, colorEnabled bool) *Colorizer {
	compiled := make([]compiledRule, len(rules))
	for i, r := range rules {
		compiled[i] = compiledRule{
			Rule:        r,
			style:       styleFor(r, theme),
			colorizable: isColorizable(r),
		}
	}
	return &Colorizer{rules: compiled, colorEnabled: colorEnabled}
}

func styleFor(r rule.Rule, theme *color.Theme) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, c := range r.Colors {
		resolved := c
		if theme != nil {
			resolved = theme.ResolveColor(c)
		}
		st = st.Inherit(color.ToLipgloss(resolved))
	}
	if r.Bold {
		st = st.Bold(true)
	}
	return st
}

// isColorizable reports whether a rule can contribute a colored range: a
// rule that only skips lines, or only replaces text with no colors
// attached, contributes no range of its own.
func isColorizable(r rule.Rule) bool {
	if r.Skip {
		return false
	}
	if r.Count == rule.Block || r.Count == rule.Unblock {
		return true
	}
	return len(r.Colors) > 0 || r.Bold
}

// Reset clears block-mode state, used between unrelated log streams
// sharing the same Colorizer.
func (c *Colorizer) Reset() {
	c.inBlock = false
	c.blockStyle = lipgloss.NewStyle()
}

// Clone returns a new Colorizer sharing this one's compiled rules and
// color-enabled setting but with fresh, empty block-mode state. Callers
// that hand out one cached Colorizer as a template per program should
// Clone it for each concurrent stream rather than share the instance:
// the rules slice is read-only after New, so sharing it is safe, but
// in_block/block_style are not.
func (c *Colorizer) Clone() *Colorizer {
	return &Colorizer{rules: c.rules, colorEnabled: c.colorEnabled}
}

// SetColorEnabled toggles whether Colorize applies any styling at all.
// Replacement and skip behavior still apply when disabled; only the
// final ANSI styling is suppressed, matching a "--color=never" mode that
// still benefits from rule-driven text rewriting.
func (c *Colorizer) SetColorEnabled(enabled bool) {
	c.colorEnabled = enabled
}

// Colorize applies the colorizer's rules to a single line and returns the
// result. skipped reports whether a Skip rule matched (in which case out
// is the empty string and the line should be dropped entirely, not
// printed). hadMatches reports whether any rule produced a colored range
// (or block mode was active), which the stats collector uses to
// distinguish matched_lines from total_lines.
func (c *Colorizer) Colorize(line string) (out string, skipped, hadMatches bool) {
	if len(line) == 0 {
		return line, false, false
	}
	if len(line) > MaxLineLength {
		return line, false, false
	}

	for _, cr := range c.rules {
		if cr.Skip && cr.IsMatch(line) {
			return "", true, false
		}
	}

	text := line
	for _, cr := range c.rules {
		if cr.HasReplace() && cr.IsMatch(text) {
			text = cr.ReplaceAll(text)
		}
	}

	c.updateBlockState(text)

	ranges := c.collectRanges(text)
	hadMatches = len(ranges) > 0 || c.inBlock

	if !c.colorEnabled {
		return text, false, hadMatches
	}

	if !hadMatches {
		return text, false, false
	}

	return c.render(text, ranges), false, true
}

type coloredRange struct {
	start, end int
	style      lipgloss.Style
}

// updateBlockState finds the first matching Block/Unblock rule on text
// and updates in_block/block_style accordingly. Only one block-state
// transition happens per line, matching the "first match wins" rule
// ordering semantics.
func (c *Colorizer) updateBlockState(text string) {
	for _, cr := range c.rules {
		if cr.Count != rule.Block && cr.Count != rule.Unblock {
			continue
		}
		if !cr.IsMatch(text) {
			continue
		}
		if cr.Count == rule.Block {
			c.inBlock = true
			c.blockStyle = cr.style
		} else {
			c.inBlock = false
		}
		return
	}
}

// collectRanges gathers non-overlapping colored ranges from every
// colorizable rule, in rule order, skipping any range that overlaps one
// already claimed by an earlier rule (first rule to claim a span wins).
func (c *Colorizer) collectRanges(text string) []coloredRange {
	var ranges []coloredRange
	for _, cr := range c.rules {
		if !cr.colorizable || cr.Count == rule.Block || cr.Count == rule.Unblock {
			continue
		}
		for _, m := range cr.FindAllIndex(text) {
			if overlapsAny(ranges, m[0], m[1]) {
				continue
			}
			ranges = append(ranges, coloredRange{start: m[0], end: m[1], style: cr.style})
		}
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })
	return ranges
}

func overlapsAny(ranges []coloredRange, start, end int) bool {
	for _, r := range ranges {
		if start < r.end && end > r.start {
			return true
		}
	}
	return false
}

// render builds the final styled string: segments between colored ranges
// use the block style if in_block is set, otherwise are left plain;
// segments within a colored range always use that range's style.
func (c *Colorizer) render(text string, ranges []coloredRange) string {
	var b strings.Builder
	pos := 0
	for _, r := range ranges {
		if r.start > pos {
			b.WriteString(c.styleSegment(text[pos:r.start]))
		}
		b.WriteString(r.style.Render(text[r.start:r.end]))
		pos = r.end
	}
	if pos < len(text) {
		b.WriteString(c.styleSegment(text[pos:]))
	}
	return b.String()
}

func (c *Colorizer) styleSegment(segment string) string {
	if c.inBlock {
		return c.blockStyle.Render(segment)
	}
	return segment
}
