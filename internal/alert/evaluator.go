package alert

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/hydepwns/phos-go/internal/stats"
)

// syncStallLines is the fixed, non-configurable line count after which an
// unchanged slot triggers KindSyncStall, matching the original's fixed
// heuristic threshold.
const syncStallLines = 100

// reErrorWord mirrors stats' error-level regex; kept local rather than
// exported from internal/stats to avoid making that an alert-specific API.
var reErrorWord = regexp.MustCompile(`(?i)\b(ERROR|ERR|CRIT|CRITICAL|FATAL|PANIC)\b`)

// Evaluator tracks the running state a Condition needs to detect edge
// transitions (peer drops, sync stalls, threshold crossings) across a
// stream of lines. One Evaluator belongs to exactly one stream; it is
// not safe for concurrent use.
type Evaluator struct {
	lastPeerCount int
	havePeerCount bool

	lastSlot             int
	haveSlot             bool
	linesSinceSlotChange int
	// stallBase is the collector's same-slot line count at the last
	// sync-stall firing; linesSinceSlotChange counts on from there.
	stallBase int

	previousPeerCount     int
	havePreviousPeerCount bool

	errorFired     bool
	thresholdFired map[int]bool
}

// NewEvaluator returns an Evaluator with no prior state.
func NewEvaluator() *Evaluator {
	return &Evaluator{thresholdFired: map[int]bool{}}
}

// Reset rearms every fire-once condition, used when a stream is reused
// (e.g. container restart).
func (e *Evaluator) Reset() {
	*e = Evaluator{thresholdFired: map[int]bool{}}
}

// UpdateState refreshes peer/slot tracking from a line's stats
// snapshot. Called once per line, before Evaluate.
func (e *Evaluator) UpdateState(s stats.Snapshot) {
	if s.HavePeerCount {
		if e.havePeerCount {
			e.previousPeerCount, e.havePreviousPeerCount = e.lastPeerCount, true
		}
		e.lastPeerCount = s.PeerCount
		e.havePeerCount = true
	}
	if s.HaveSlot {
		if s.LinesSinceSlotChange < e.stallBase {
			e.stallBase = 0 // the slot changed since the last firing
		}
		e.lastSlot = s.Slot
		e.haveSlot = true
		e.linesSinceSlotChange = s.LinesSinceSlotChange - e.stallBase
	}
}

// Evaluate checks a single condition against the current line and
// evaluator state, returning a firing Payload if it matches.
func (e *Evaluator) Evaluate(c Condition, line string, errorCount int) (Payload, bool) {
	switch c.Kind {
	case KindError:
		return e.evaluateError(line)
	case KindErrorThreshold:
		return e.evaluateErrorThreshold(c, line, errorCount)
	case KindPeerDrop:
		return e.evaluatePeerDrop(c)
	case KindSyncStall:
		return e.evaluateSyncStall()
	case KindPattern:
		return e.evaluatePattern(c, line)
	default:
		return Payload{}, false
	}
}

func (e *Evaluator) evaluateError(line string) (Payload, bool) {
	if e.errorFired {
		return Payload{}, false
	}
	if !reErrorWord.MatchString(line) {
		return Payload{}, false
	}
	e.errorFired = true
	return NewPayload("Error detected", line, Error), true
}

func (e *Evaluator) evaluateErrorThreshold(c Condition, line string, errorCount int) (Payload, bool) {
	if e.thresholdFired[c.Threshold] {
		return Payload{}, false
	}
	if errorCount != c.Threshold || !reErrorWord.MatchString(line) {
		return Payload{}, false
	}
	e.thresholdFired[c.Threshold] = true
	return NewPayload(
		fmt.Sprintf("Error Threshold Reached: %d errors", c.Threshold),
		line, Error,
	).WithField("error_count", strconv.Itoa(c.Threshold)), true
}

func (e *Evaluator) evaluatePeerDrop(c Condition) (Payload, bool) {
	if !e.havePreviousPeerCount {
		return Payload{}, false
	}
	if e.previousPeerCount < c.Threshold || e.lastPeerCount >= c.Threshold {
		return Payload{}, false
	}
	return NewPayload("Peer count dropped", "", Warning).
		WithField("previous", strconv.Itoa(e.previousPeerCount)).
		WithField("current", strconv.Itoa(e.lastPeerCount)), true
}

func (e *Evaluator) evaluateSyncStall() (Payload, bool) {
	if !e.haveSlot || e.linesSinceSlotChange < syncStallLines {
		return Payload{}, false
	}
	e.stallBase += e.linesSinceSlotChange
	e.linesSinceSlotChange = 0
	return NewPayload(
		"Sync appears stalled",
		fmt.Sprintf("slot has not advanced in %d lines", syncStallLines),
		Critical,
	).WithField("slot", strconv.Itoa(e.lastSlot)), true
}

func (e *Evaluator) evaluatePattern(c Condition, line string) (Payload, bool) {
	if !c.Pattern.MatchString(line) {
		return Payload{}, false
	}
	return NewPayload("Pattern matched", line, Warning).
		WithField("pattern", c.Pattern.String()), true
}
