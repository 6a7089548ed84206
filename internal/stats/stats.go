// Package stats collects aggregate counters and samples (log level
// counts, error messages, timestamps, peer/slot metrics) from a stream of
// colorized log lines.
package stats

import (
	"fmt"
	"regexp"
	"strings"
)

// LogLevelCounts tallies lines by detected severity.
type LogLevelCounts struct {
	Error, Warn, Info, Debug, Trace int
}

// Total returns the sum of all level counts.
func (l LogLevelCounts) Total() int {
	return l.Error + l.Warn + l.Info + l.Debug + l.Trace
}

// levelCount is one (name, count) pair, used by IterNonzero.
type levelCount struct {
	Name  string
	Count int
}

// IterNonzero returns the level counts with Count > 0, in
// error/warn/info/debug/trace order.
func (l LogLevelCounts) IterNonzero() []levelCount {
	var out []levelCount
	for _, lc := range []levelCount{
		{"error", l.Error}, {"warn", l.Warn}, {"info", l.Info},
		{"debug", l.Debug}, {"trace", l.Trace},
	} {
		if lc.Count > 0 {
			out = append(out, lc)
		}
	}
	return out
}

// patterns precompiled once, mirroring a rule's compile-once invariant.
var (
	reError         = regexp.MustCompile(`(?i)\b(ERROR|ERR|CRIT|CRITICAL|FATAL|PANIC)\b`)
	reWarn          = regexp.MustCompile(`(?i)\b(WARN|WARNING)\b`)
	reInfo          = regexp.MustCompile(`(?i)\b(INFO|NOTICE)\b`)
	reDebug         = regexp.MustCompile(`(?i)\bDEBUG\b`)
	reTrace         = regexp.MustCompile(`(?i)\bTRACE\b`)
	reTimestampISO  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`)
	reTimestampSys  = regexp.MustCompile(`[A-Z][a-z]{2}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2}`)
	reErrorMessage  = regexp.MustCompile(`(?i)(?:error|err|failed|failure)[:\s]+["']?([^"'\n]{1,100})`)
	rePeerCount     = regexp.MustCompile(`(?i)\bpeers?[=:\s]+(\d+)`)
	reSlot          = regexp.MustCompile(`(?i)\bslot[=:\s]+(\d+)`)
)

const (
	maxErrorsTracked  = 20 // 2x the display cap, matching the original's overcollection
	maxErrorsDisplayed = 10
)

// errorMessage is a deduplicated, counted error message sample.
type errorMessage struct {
	Text  string
	Count int
}

// Collector accumulates LogLevelCounts, error-message samples, first/last
// timestamps, and peer/slot metrics from a line-oriented stream.
//
// peer/slot extraction has no counterpart method in the reference
// implementation's stats module (it only defines the regexes' intended
// callers elsewhere); PeerCount/Slot are implemented directly against the
// regexes themselves to satisfy the alert engine's peer-drop and
// sync-stall conditions.
type Collector struct {
	counts LogLevelCounts

	totalLines   int
	matchedLines int
	skippedLines int

	errorMessages   []errorMessage
	errorMessageIdx map[string]int

	firstTimestamp string
	lastTimestamp  string

	lastPeerCount        int
	havePeerCount         bool
	lastSlot              int
	haveSlot              bool
	linesSinceSlotChange int
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{errorMessageIdx: map[string]int{}}
}

// ProcessLine updates all counters and samples from a single line that
// produced a colorized result (hadMatches reports whether the colorizer
// accepted any colored range for it, distinguishing matched from total
// lines). Only one severity level is counted per line, checked in
// error > warn > info > debug > trace priority order.
func (c *Collector) ProcessLine(line string, hadMatches bool) {
	c.ProcessLineLevel(line, hadMatches)
}

// RecordSkipped bumps the skipped-line counter without running level
// detection, for lines a Skip rule dropped.
func (c *Collector) RecordSkipped() {
	c.totalLines++
	c.skippedLines++
}

// ProcessLineLevel is ProcessLine, additionally returning the detected
// level name ("error", "warn", "info", "debug", "trace", or "" if none),
// for callers that also want to drive per-line metrics.
func (c *Collector) ProcessLineLevel(line string, hadMatches bool) string {
	c.totalLines++
	if hadMatches {
		c.matchedLines++
	}
	level := ""
	switch {
	case reError.MatchString(line):
		c.counts.Error++
		c.recordErrorMessage(line)
		level = "error"
	case reWarn.MatchString(line):
		c.counts.Warn++
		level = "warn"
	case reInfo.MatchString(line):
		c.counts.Info++
		level = "info"
	case reDebug.MatchString(line):
		c.counts.Debug++
		level = "debug"
	case reTrace.MatchString(line):
		c.counts.Trace++
		level = "trace"
	}

	c.recordTimestamp(line)
	c.recordPeerAndSlot(line)
	return level
}

func (c *Collector) recordErrorMessage(line string) {
	m := reErrorMessage.FindStringSubmatch(line)
	if m == nil {
		return
	}
	msg := strings.TrimSpace(m[1])
	if msg == "" {
		return
	}
	if idx, ok := c.errorMessageIdx[msg]; ok {
		c.errorMessages[idx].Count++
		return
	}
	if len(c.errorMessages) >= maxErrorsTracked {
		return
	}
	c.errorMessageIdx[msg] = len(c.errorMessages)
	c.errorMessages = append(c.errorMessages, errorMessage{Text: msg, Count: 1})
}

func (c *Collector) recordTimestamp(line string) {
	ts := reTimestampISO.FindString(line)
	if ts == "" {
		ts = reTimestampSys.FindString(line)
	}
	if ts == "" {
		return
	}
	if c.firstTimestamp == "" {
		c.firstTimestamp = ts
	}
	c.lastTimestamp = ts
}

func (c *Collector) recordPeerAndSlot(line string) {
	if m := rePeerCount.FindStringSubmatch(line); m != nil {
		if n, ok := parseInt(m[1]); ok {
			c.lastPeerCount = n
			c.havePeerCount = true
		}
	}
	if m := reSlot.FindStringSubmatch(line); m != nil {
		if n, ok := parseInt(m[1]); ok {
			if c.haveSlot && n == c.lastSlot {
				c.linesSinceSlotChange++
			} else {
				c.linesSinceSlotChange = 0
			}
			c.lastSlot = n
			c.haveSlot = true
		}
	}
}

func parseInt(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// Counts returns the accumulated level counts.
func (c *Collector) Counts() LogLevelCounts { return c.counts }

// TotalLines, MatchedLines, and SkippedLines return the per-line
// bookkeeping counters.
func (c *Collector) TotalLines() int   { return c.totalLines }
func (c *Collector) MatchedLines() int { return c.matchedLines }
func (c *Collector) SkippedLines() int { return c.skippedLines }

// ErrorRate returns the fraction of total lines classified as errors, or
// 0 if no lines have been processed.
func (c *Collector) ErrorRate() float64 {
	if c.totalLines == 0 {
		return 0
	}
	return float64(c.counts.Error) / float64(c.totalLines)
}

// TopErrorMessages returns up to maxErrorsDisplayed error message samples,
// most frequent first.
func (c *Collector) TopErrorMessages() []errorMessage {
	sorted := make([]errorMessage, len(c.errorMessages))
	copy(sorted, c.errorMessages)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Count > sorted[j-1].Count; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > maxErrorsDisplayed {
		sorted = sorted[:maxErrorsDisplayed]
	}
	return sorted
}

// FirstTimestamp and LastTimestamp return the earliest/latest timestamp
// seen, or "" if none.
func (c *Collector) FirstTimestamp() string { return c.firstTimestamp }
func (c *Collector) LastTimestamp() string  { return c.lastTimestamp }

// PeerCount returns the most recently observed peer count and whether one
// has been seen.
func (c *Collector) PeerCount() (int, bool) { return c.lastPeerCount, c.havePeerCount }

// Slot returns the most recently observed slot number, whether one has
// been seen, and how many consecutive lines have reported the same slot
// (used by the alert engine's sync-stall condition).
func (c *Collector) Slot() (slot int, ok bool, linesSinceChange int) {
	return c.lastSlot, c.haveSlot, c.linesSinceSlotChange
}

// Snapshot is an immutable copy of the state the alert engine reads:
// error count and the latest peer/slot observations. Unlike Collector,
// a Snapshot has no methods that mutate it, so it can be handed to a
// goroutine running concurrently with the producer that keeps
// collecting into the live Collector.
type Snapshot struct {
	ErrorCount int

	PeerCount     int
	HavePeerCount bool

	Slot                 int
	HaveSlot             bool
	LinesSinceSlotChange int
}

// Snapshot copies c's current error count and peer/slot state into a
// value safe to pass across goroutines.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		ErrorCount:           c.counts.Error,
		PeerCount:            c.lastPeerCount,
		HavePeerCount:        c.havePeerCount,
		Slot:                 c.lastSlot,
		HaveSlot:             c.haveSlot,
		LinesSinceSlotChange: c.linesSinceSlotChange,
	}
}

// Merge folds other's counters into c: a commutative fold over level
// counts and error message counts, earliest-first/latest-last for
// timestamps. Peer/slot state from other, when other has observed any,
// replaces c's; otherwise c's is kept.
func (c *Collector) Merge(other *Collector) {
	c.counts.Error += other.counts.Error
	c.counts.Warn += other.counts.Warn
	c.counts.Info += other.counts.Info
	c.counts.Debug += other.counts.Debug
	c.counts.Trace += other.counts.Trace

	c.totalLines += other.totalLines
	c.matchedLines += other.matchedLines
	c.skippedLines += other.skippedLines

	for _, em := range other.errorMessages {
		if idx, ok := c.errorMessageIdx[em.Text]; ok {
			c.errorMessages[idx].Count += em.Count
			continue
		}
		if len(c.errorMessages) >= maxErrorsTracked {
			continue
		}
		c.errorMessageIdx[em.Text] = len(c.errorMessages)
		c.errorMessages = append(c.errorMessages, em)
	}

	if other.firstTimestamp != "" && (c.firstTimestamp == "" || other.firstTimestamp < c.firstTimestamp) {
		c.firstTimestamp = other.firstTimestamp
	}
	if other.lastTimestamp != "" && other.lastTimestamp > c.lastTimestamp {
		c.lastTimestamp = other.lastTimestamp
	}

	if other.havePeerCount {
		c.lastPeerCount = other.lastPeerCount
		c.havePeerCount = true
	}
	if other.haveSlot {
		c.lastSlot = other.lastSlot
		c.haveSlot = true
		c.linesSinceSlotChange = other.linesSinceSlotChange
	}
}

// Percentage returns what percent n is of total, or 0 if total is 0.
func Percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// TruncateMessage shortens msg to max runes, appending "..." if truncated.
func TruncateMessage(msg string, max int) string {
	r := []rune(msg)
	if len(r) <= max {
		return msg
	}
	return string(r[:max]) + "..."
}

// Summary formats a human-readable summary, written to stderr by callers.
func (c *Collector) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- log summary (%d lines, %d matched, %d skipped) ---\n",
		c.totalLines, c.matchedLines, c.skippedLines)
	for _, lc := range c.counts.IterNonzero() {
		fmt.Fprintf(&b, "%-6s %6d (%.1f%%)\n", lc.Name, lc.Count, Percentage(lc.Count, c.counts.Total()))
	}
	if top := c.TopErrorMessages(); len(top) > 0 {
		b.WriteString("top errors:\n")
		for _, em := range top {
			fmt.Fprintf(&b, "  [%dx] %s\n", em.Count, TruncateMessage(em.Text, 100))
		}
	}
	if c.firstTimestamp != "" {
		fmt.Fprintf(&b, "span: %s .. %s\n", c.firstTimestamp, c.lastTimestamp)
	}
	if n, ok := c.PeerCount(); ok {
		fmt.Fprintf(&b, "peers: %d\n", n)
	}
	if slot, ok, _ := c.Slot(); ok {
		fmt.Fprintf(&b, "slot: %d\n", slot)
	}
	return b.String()
}
