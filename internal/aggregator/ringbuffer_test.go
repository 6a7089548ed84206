package aggregator

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestRingBufferSnapshotOrderBeforeWrap(t *testing.T) {
	rb := newRingBuffer(3)
	rb.push(ColorizedLogEntry{RawLine: "a"})
	rb.push(ColorizedLogEntry{RawLine: "b"})

	got := rb.snapshot()
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].RawLine, "a")
	assert.Equal(t, got[1].RawLine, "b")
}

func TestRingBufferWrapsAndDropsOldest(t *testing.T) {
	rb := newRingBuffer(3)
	rb.push(ColorizedLogEntry{RawLine: "a"})
	rb.push(ColorizedLogEntry{RawLine: "b"})
	rb.push(ColorizedLogEntry{RawLine: "c"})
	rb.push(ColorizedLogEntry{RawLine: "d"})

	got := rb.snapshot()
	assert.Equal(t, len(got), 3)
	assert.Equal(t, got[0].RawLine, "b")
	assert.Equal(t, got[1].RawLine, "c")
	assert.Equal(t, got[2].RawLine, "d")
}

func TestRingBufferEmpty(t *testing.T) {
	rb := newRingBuffer(3)
	assert.Equal(t, len(rb.snapshot()), 0)
}

func TestStreamerBacklogIsPerContainer(t *testing.T) {
	s := &LogStreamer{backlog: map[string]*ringBuffer{}}

	entry := ColorizedLogEntry{ContainerID: "c1", Timestamp: time.Now(), RawLine: "hello"}
	s.backlogFor("c1").push(entry)

	assert.Equal(t, len(s.Backlog("c1")), 1)
	assert.Equal(t, len(s.Backlog("c2")), 0)
}
