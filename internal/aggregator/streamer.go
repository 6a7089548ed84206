package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/hydepwns/phos-go/internal/alert"
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/colorizer"
	"github.com/hydepwns/phos-go/internal/logging"
	"github.com/hydepwns/phos-go/internal/program"
	"github.com/hydepwns/phos-go/internal/stats"
)

// defaultBroadcastCapacity and minBroadcastCapacity bound the buffered
// channel each subscriber receives broadcast entries on: bounded so
// a slow subscriber can't hold up memory growth without limit, never
// below 100 so a brief subscriber stall doesn't lose everything.
const (
	defaultBroadcastCapacity = 10_000
	minBroadcastCapacity     = 100
)

// ColorizedLogEntry is one line, colorized and HTML-rendered, ready to
// broadcast to subscribers.
type ColorizedLogEntry struct {
	ContainerID   string
	ContainerName string
	ProgramID     string
	Timestamp     time.Time
	RawLine       string
	AnsiLine      string
	HTMLLine      string
}

// AlertConfig configures alerting for one container's stream.
type AlertConfig struct {
	WebhookURL     string
	TelegramChatID string
	Conditions     []alert.Condition
}

// LogStreamer fans a Provider's per-container log streams into a single
// broadcast channel, colorizing each line with the program detected (or
// explicitly assigned) for that container.
type LogStreamer struct {
	provider Provider
	theme    *color.Theme
	registry *program.Registry

	maxLines int

	subsMu sync.RWMutex
	subs   []chan ColorizedLogEntry

	colorizersMu sync.Mutex
	colorizers   map[string]*colorizer.Colorizer

	metrics *stats.PrometheusMetrics
	rates   *RateTracker

	backlogMu sync.Mutex
	backlog   map[string]*ringBuffer
}

// NewLogStreamer constructs a streamer reading from provider, coloring
// with theme, and detecting programs from registry.
func NewLogStreamer(provider Provider, theme *color.Theme, registry *program.Registry, maxLines int, metrics *stats.PrometheusMetrics) *LogStreamer {
	if maxLines <= 0 {
		maxLines = defaultBroadcastCapacity
	}
	if maxLines < minBroadcastCapacity {
		maxLines = minBroadcastCapacity
	}
	return &LogStreamer{
		provider:   provider,
		theme:      theme,
		registry:   registry,
		maxLines:   maxLines,
		colorizers: map[string]*colorizer.Colorizer{},
		metrics:    metrics,
		rates:      NewRateTracker(),
		backlog:    map[string]*ringBuffer{},
	}
}

// Rates exposes the streamer's per-container rate tracker, read by the
// HTTP layer's /api/containers handler.
func (s *LogStreamer) Rates() *RateTracker { return s.rates }

// Subscribe registers a new subscriber and returns its channel. The
// caller must eventually call Unsubscribe to free the slot.
func (s *LogStreamer) Subscribe() chan ColorizedLogEntry {
	ch := make(chan ColorizedLogEntry, s.maxLines)
	s.subsMu.Lock()
	s.subs = append(s.subs, ch)
	s.subsMu.Unlock()
	return ch
}

// Unsubscribe removes ch from the broadcast list and closes it.
func (s *LogStreamer) Unsubscribe(ch chan ColorizedLogEntry) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, c := range s.subs {
		if c == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (s *LogStreamer) broadcast(entry ColorizedLogEntry) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- entry:
		default:
			// Slow subscriber: drop its oldest queued entry to make room
			// for this one, never blocking the producer.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- entry:
			default:
			}
		}
	}
}

// StreamContainer reads id's log stream, colorizes and broadcasts each
// line, and optionally evaluates an AlertConfig against it. It blocks
// until ctx is canceled or the provider's stream ends; callers run it in
// its own goroutine (via crashlog.SafeGo) per container.
func (s *LogStreamer) StreamContainer(ctx context.Context, id, name string, p program.Program, alertCfg *AlertConfig) {
	cz := s.colorizerForProgram(p)

	var mgr *alert.Manager
	if alertCfg != nil && alertCfg.WebhookURL != "" {
		b := alert.NewBuilder(alertCfg.WebhookURL).
			WithTelegramChatID(alertCfg.TelegramChatID).
			WithConditions(alertCfg.Conditions).
			WithProgram(p.Info().ID)
		mgr = b.Build()
	}
	collector := stats.NewCollector()

	lines, err := s.provider.GetLogs(ctx, id, 50, true)
	if err != nil {
		logging.Error().Err(err).Str("container", id).Msg("aggregator: failed to open log stream")
		return
	}

	defer s.rates.Forget(id)

	var mu sync.Mutex
	for line := range lines {
		if line.Text == "" {
			continue
		}
		s.rates.Record(id)
		ansi, skipped, hadMatches := cz.Colorize(line.Text)
		if skipped {
			collector.RecordSkipped()
			continue
		}
		level := collector.ProcessLineLevel(line.Text, hadMatches)
		if s.metrics != nil {
			s.metrics.Observe(name, level, collector)
		}

		entry := ColorizedLogEntry{
			ContainerID:   id,
			ContainerName: name,
			ProgramID:     p.Info().ID,
			Timestamp:     line.Timestamp,
			RawLine:       line.Text,
			AnsiLine:      ansi,
			HTMLLine:      AnsiToHTML(ansi),
		}
		s.backlogFor(id).push(entry)
		s.broadcast(entry)

		if mgr != nil {
			snap := collector.Snapshot()
			go func(l string, snap stats.Snapshot) {
				mu.Lock()
				defer mu.Unlock()
				mgr.CheckLine(ctx, l, snap)
			}(line.Text, snap)
		}
	}
}

// colorizerForProgram returns a fresh Colorizer for p, ready for a new
// stream. The cache holds one template instance per program (rules and
// styles, built once); every caller gets its own Clone so that two
// containers running the same program never share block-mode state.
func (s *LogStreamer) colorizerForProgram(p program.Program) *colorizer.Colorizer {
	id := p.Info().ID
	s.colorizersMu.Lock()
	defer s.colorizersMu.Unlock()
	tmpl, ok := s.colorizers[id]
	if !ok {
		tmpl = colorizer.New(p.Rules(), s.theme, true)
		s.colorizers[id] = tmpl
	}
	return tmpl.Clone()
}
