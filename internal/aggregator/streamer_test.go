package aggregator_test

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/aggregator"
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/program"
	"github.com/hydepwns/phos-go/internal/rule"
)

// fakeProvider is an in-memory aggregator.Provider backed by a fixed set
// of lines per container, closed once drained.
type fakeProvider struct {
	lines map[string][]string
}

func (f *fakeProvider) ListContainers(ctx context.Context) ([]aggregator.ContainerInfo, error) {
	var out []aggregator.ContainerInfo
	for id := range f.lines {
		out = append(out, aggregator.ContainerInfo{ID: id, Name: id})
	}
	return out, nil
}

func (f *fakeProvider) GetLogs(ctx context.Context, id string, tail int, follow bool) (<-chan aggregator.LogLine, error) {
	ch := make(chan aggregator.LogLine, len(f.lines[id]))
	for _, l := range f.lines[id] {
		ch <- aggregator.LogLine{ContainerID: id, Text: l, Timestamp: time.Unix(0, 0)}
	}
	close(ch)
	return ch, nil
}

func (f *fakeProvider) VerifyConnection(ctx context.Context) error { return nil }

func testProgram() program.Program {
	rules := []rule.Rule{rule.MustNew(`ERROR`).Semantic(color.Error).Build()}
	return program.NewSimple("test.fake", "Fake", "test program", program.Dev, rules)
}

func TestLogStreamerBroadcastsColorizedEntries(t *testing.T) {
	p := &fakeProvider{lines: map[string][]string{
		"c1": {"ERROR boom", "INFO fine"},
	}}
	s := aggregator.NewLogStreamer(p, color.DefaultTheme(), program.NewRegistry(), 0, nil)

	sub := s.Subscribe()
	defer s.Unsubscribe(sub)

	s.StreamContainer(context.Background(), "c1", "c1", testProgram(), nil)

	var got []aggregator.ColorizedLogEntry
	for i := 0; i < 2; i++ {
		select {
		case e := <-sub:
			got = append(got, e)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for broadcast entry")
		}
	}
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].ContainerID, "c1")
	assert.Assert(t, got[0].HTMLLine != "")
}

func TestLogStreamerSkipsEmptyLines(t *testing.T) {
	p := &fakeProvider{lines: map[string][]string{
		"c1": {"", "INFO only line"},
	}}
	s := aggregator.NewLogStreamer(p, color.DefaultTheme(), program.NewRegistry(), 0, nil)
	sub := s.Subscribe()
	defer s.Unsubscribe(sub)

	s.StreamContainer(context.Background(), "c1", "c1", testProgram(), nil)

	select {
	case e := <-sub:
		assert.Assert(t, e.RawLine == "INFO only line")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast entry")
	}
}

func TestLogStreamerBacklogPerContainer(t *testing.T) {
	p := &fakeProvider{lines: map[string][]string{
		"c1": {"ERROR a"},
		"c2": {"ERROR b"},
	}}
	s := aggregator.NewLogStreamer(p, color.DefaultTheme(), program.NewRegistry(), 0, nil)

	s.StreamContainer(context.Background(), "c1", "c1", testProgram(), nil)
	s.StreamContainer(context.Background(), "c2", "c2", testProgram(), nil)

	b1 := s.Backlog("c1")
	b2 := s.Backlog("c2")
	assert.Equal(t, len(b1), 1)
	assert.Equal(t, len(b2), 1)
	assert.Assert(t, b1[0].RawLine != b2[0].RawLine)
}
