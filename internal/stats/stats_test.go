package stats_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/stats"
)

func TestProcessLineLevelPriority(t *testing.T) {
	c := stats.NewCollector()
	level := c.ProcessLineLevel("ERROR something failed and WARN too", true)
	assert.Equal(t, level, "error")
	assert.Equal(t, c.Counts().Error, 1)
	assert.Equal(t, c.Counts().Warn, 0)
}

func TestProcessLineLevelCounts(t *testing.T) {
	c := stats.NewCollector()
	c.ProcessLineLevel("INFO starting up", true)
	c.ProcessLineLevel("DEBUG details", true)
	c.ProcessLineLevel("plain line", false)

	assert.Equal(t, c.TotalLines(), 3)
	assert.Equal(t, c.MatchedLines(), 2)
	assert.Equal(t, c.Counts().Info, 1)
	assert.Equal(t, c.Counts().Debug, 1)
}

func TestRecordSkipped(t *testing.T) {
	c := stats.NewCollector()
	c.RecordSkipped()
	c.RecordSkipped()
	assert.Equal(t, c.TotalLines(), 2)
	assert.Equal(t, c.SkippedLines(), 2)
}

func TestErrorRate(t *testing.T) {
	c := stats.NewCollector()
	assert.Equal(t, c.ErrorRate(), float64(0))
	c.ProcessLineLevel("ERROR boom", true)
	c.ProcessLineLevel("INFO fine", true)
	assert.Equal(t, c.ErrorRate(), 0.5)
}

func TestTopErrorMessagesDedupAndSort(t *testing.T) {
	c := stats.NewCollector()
	c.ProcessLineLevel(`error: "disk full"`, true)
	c.ProcessLineLevel(`error: "disk full"`, true)
	c.ProcessLineLevel(`error: "connection refused"`, true)

	top := c.TopErrorMessages()
	assert.Assert(t, len(top) >= 1)
	assert.Equal(t, top[0].Count, 2)
}

func TestPeerAndSlotTracking(t *testing.T) {
	c := stats.NewCollector()
	c.ProcessLineLevel("INFO peers=12 slot=100", true)
	n, ok := c.PeerCount()
	assert.Assert(t, ok)
	assert.Equal(t, n, 12)

	slot, ok, since := c.Slot()
	assert.Assert(t, ok)
	assert.Equal(t, slot, 100)
	assert.Equal(t, since, 0)

	c.ProcessLineLevel("INFO slot=100 still waiting", true)
	_, _, since = c.Slot()
	assert.Equal(t, since, 1)
}

func TestMerge(t *testing.T) {
	a := stats.NewCollector()
	a.ProcessLineLevel("ERROR one", true)
	b := stats.NewCollector()
	b.ProcessLineLevel("WARN two", true)

	a.Merge(b)
	assert.Equal(t, a.Counts().Error, 1)
	assert.Equal(t, a.Counts().Warn, 1)
	assert.Equal(t, a.TotalLines(), 2)
}

func TestPercentageAndTruncate(t *testing.T) {
	assert.Equal(t, stats.Percentage(1, 4), float64(25))
	assert.Equal(t, stats.Percentage(1, 0), float64(0))
	assert.Equal(t, stats.TruncateMessage("hello", 10), "hello")
	assert.Equal(t, stats.TruncateMessage("hello world", 5), "hello...")
}

func TestSummaryIncludesCounts(t *testing.T) {
	c := stats.NewCollector()
	c.ProcessLineLevel("ERROR boom", true)
	summary := c.Summary()
	assert.Assert(t, len(summary) > 0)
}
