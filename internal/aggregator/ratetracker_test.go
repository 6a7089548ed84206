package aggregator

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestRateTrackerRecordAndRate(t *testing.T) {
	rt := NewRateTracker()
	for i := 0; i < 5; i++ {
		rt.Record("c1")
	}
	assert.Equal(t, rt.Rate("c1"), float64(5))
}

func TestRateTrackerUnknownContainer(t *testing.T) {
	rt := NewRateTracker()
	assert.Equal(t, rt.Rate("missing"), float64(0))
}

func TestRateTrackerForget(t *testing.T) {
	rt := NewRateTracker()
	rt.Record("c1")
	rt.Forget("c1")
	assert.Equal(t, rt.Rate("c1"), float64(0))
}

func TestRateTrackerRateGoesIdleAfterTwoSeconds(t *testing.T) {
	rt := NewRateTracker()
	rt.Record("c1")
	rt.windows["c1"].mu.Lock()
	rt.windows["c1"].lastUpdate = time.Now().Add(-3 * time.Second)
	rt.windows["c1"].mu.Unlock()

	assert.Equal(t, rt.Rate("c1"), float64(0))
}

func TestRateTrackerPruneStale(t *testing.T) {
	rt := NewRateTracker()
	rt.Record("stale")
	rt.Record("fresh")

	rt.windows["stale"].mu.Lock()
	rt.windows["stale"].lastUpdate = time.Now().Add(-10 * time.Minute)
	rt.windows["stale"].mu.Unlock()

	rt.PruneStale()

	_, staleExists := rt.windows["stale"]
	_, freshExists := rt.windows["fresh"]
	assert.Assert(t, !staleExists)
	assert.Assert(t, freshExists)
}
