package aggregator

import (
	"sync"
	"time"
)

// lineRateWindow tracks how many lines one container has produced in the
// trailing 1-second window, reusing its backing slice across updates
// instead of reallocating on every call.
type lineRateWindow struct {
	mu         sync.Mutex
	lines      []time.Time
	lastUpdate time.Time
}

const maxRateWindowEntries = 5000

func (w *lineRateWindow) record(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastUpdate = now
	cutoff := now.Add(-time.Second)

	validStart := 0
	for i, t := range w.lines {
		if t.After(cutoff) {
			validStart = i
			break
		}
	}
	if validStart > 0 {
		copy(w.lines, w.lines[validStart:])
		w.lines = w.lines[:len(w.lines)-validStart]
	}

	if len(w.lines) >= maxRateWindowEntries {
		dropCount := maxRateWindowEntries / 4
		resized := make([]time.Time, maxRateWindowEntries-dropCount, maxRateWindowEntries)
		copy(resized, w.lines[dropCount:])
		w.lines = resized
	}

	w.lines = append(w.lines, now)
}

func (w *lineRateWindow) rate() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if time.Since(w.lastUpdate) > 2*time.Second {
		return 0
	}

	now := time.Now()
	cutoff := now.Add(-time.Second)
	filtered := w.lines[:0:0]
	for _, t := range w.lines {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	w.lines = filtered
	return float64(len(filtered))
}

// RateTracker reports lines-per-second for each container streamed through
// a LogStreamer, keyed by container ID. It is exposed on /api/containers
// so the web UI can show activity without a client-side poll loop of its
// own.
type RateTracker struct {
	mu      sync.RWMutex
	windows map[string]*lineRateWindow
}

// NewRateTracker creates an empty tracker.
func NewRateTracker() *RateTracker {
	return &RateTracker{windows: map[string]*lineRateWindow{}}
}

// Record marks one line as having just arrived for containerID.
func (t *RateTracker) Record(containerID string) {
	t.mu.Lock()
	w, ok := t.windows[containerID]
	if !ok {
		w = &lineRateWindow{lastUpdate: time.Now()}
		t.windows[containerID] = w
	}
	t.mu.Unlock()
	w.record(time.Now())
}

// Rate returns containerID's current lines-per-second, 0 if unknown or
// idle for more than 2 seconds.
func (t *RateTracker) Rate(containerID string) float64 {
	t.mu.RLock()
	w, ok := t.windows[containerID]
	t.mu.RUnlock()
	if !ok {
		return 0
	}
	return w.rate()
}

// Forget drops a container's tracked rate, called once its stream ends.
func (t *RateTracker) Forget(containerID string) {
	t.mu.Lock()
	delete(t.windows, containerID)
	t.mu.Unlock()
}

// PruneStale removes containers that haven't logged a line in over 5
// minutes, for trackers attached to a long-running serve process where
// Forget isn't reliably called for every exit path.
func (t *RateTracker) PruneStale() {
	const staleAfter = 5 * time.Minute
	now := time.Now()

	t.mu.RLock()
	stale := make([]string, 0)
	for id, w := range t.windows {
		w.mu.Lock()
		last := w.lastUpdate
		w.mu.Unlock()
		if now.Sub(last) > staleAfter {
			stale = append(stale, id)
		}
	}
	t.mu.RUnlock()

	if len(stale) == 0 {
		return
	}
	t.mu.Lock()
	for _, id := range stale {
		delete(t.windows, id)
	}
	t.mu.Unlock()
}
