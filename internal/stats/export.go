package stats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ethereumRecord is the optional peer/slot sub-record in the JSON export,
// present only once a peer count or slot has been observed.
type ethereumRecord struct {
	PeerCount *int `json:"peer_count,omitempty"`
	Slot      *int `json:"slot,omitempty"`
}

// jsonSummary is the shape written by JSON().
type jsonSummary struct {
	Version        int             `json:"version"`
	Program        string          `json:"program,omitempty"`
	TotalLines     int             `json:"total_lines"`
	MatchedLines   int             `json:"matched_lines"`
	SkippedLines   int             `json:"skipped_lines"`
	Levels         map[string]int  `json:"levels"`
	ErrorRate      float64         `json:"error_rate"`
	TopErrors      []errorMessage  `json:"top_errors,omitempty"`
	FirstTimestamp string          `json:"first_timestamp,omitempty"`
	LastTimestamp  string          `json:"last_timestamp,omitempty"`
	Ethereum       *ethereumRecord `json:"ethereum,omitempty"`
}

// JSON renders the collector's state as a JSON document for the `--stats
// --stats-export json` CLI path. program names the colorizer's active
// program, if any, for the "program" field.
func (c *Collector) JSON(program string) ([]byte, error) {
	s := jsonSummary{
		Version:        1,
		Program:        program,
		TotalLines:     c.totalLines,
		MatchedLines:   c.matchedLines,
		SkippedLines:   c.skippedLines,
		Levels:         map[string]int{},
		ErrorRate:      c.ErrorRate(),
		TopErrors:      c.TopErrorMessages(),
		FirstTimestamp: c.firstTimestamp,
		LastTimestamp:  c.lastTimestamp,
	}
	for _, lc := range c.counts.IterNonzero() {
		s.Levels[lc.Name] = lc.Count
	}
	if n, ok := c.PeerCount(); ok {
		s.Ethereum = &ethereumRecord{PeerCount: &n}
	}
	if slot, ok, _ := c.Slot(); ok {
		if s.Ethereum == nil {
			s.Ethereum = &ethereumRecord{}
		}
		s.Ethereum.Slot = &slot
	}
	return json.Marshal(s)
}

// Compact renders the fixed-format one-line summary specified for
// periodic interval printing: "[HH:MM:SS] lines=N err=N warn=N info=N
// [peers=N] [slot=N]". now is passed in rather than read from the clock
// so callers control the timestamp shown (and tests stay deterministic).
func (c *Collector) Compact(now time.Time) string {
	out := fmt.Sprintf("[%s] lines=%d err=%d warn=%d info=%d",
		now.Format("15:04:05"), c.totalLines, c.counts.Error, c.counts.Warn, c.counts.Info)
	if n, ok := c.PeerCount(); ok {
		out += fmt.Sprintf(" peers=%d", n)
	}
	if slot, ok, _ := c.Slot(); ok {
		out += fmt.Sprintf(" slot=%d", slot)
	}
	return out
}

// Prometheus renders the collector's state as Prometheus text-exposition
// format, with a fixed set of metric names. This is used by the CLI's
// one-shot `--stats-export prometheus` path; the aggregator instead uses
// PrometheusMetrics below to serve a live /metrics endpoint.
func (c *Collector) Prometheus(program string) string {
	var b []byte
	appendf := func(format string, args ...any) {
		b = append(b, []byte(fmt.Sprintf(format, args...))...)
	}
	appendf("# HELP phos_lines_processed_total Total lines processed.\n")
	appendf("# TYPE phos_lines_processed_total counter\n")
	appendf("phos_lines_processed_total{program=%q} %d\n", program, c.totalLines)

	appendf("# HELP phos_lines_matched_total Total lines that produced a colorized range.\n")
	appendf("# TYPE phos_lines_matched_total counter\n")
	appendf("phos_lines_matched_total{program=%q} %d\n", program, c.matchedLines)

	appendf("# HELP phos_log_level_total Lines by detected level.\n")
	appendf("# TYPE phos_log_level_total counter\n")
	for _, lc := range c.counts.IterNonzero() {
		appendf("phos_log_level_total{program=%q,level=%q} %d\n", program, lc.Name, lc.Count)
	}

	appendf("# HELP phos_error_rate Fraction of lines classified as errors.\n")
	appendf("# TYPE phos_error_rate gauge\n")
	appendf("phos_error_rate{program=%q} %f\n", program, c.ErrorRate())

	if n, ok := c.PeerCount(); ok {
		appendf("# HELP phos_ethereum_peers Most recently observed peer count.\n")
		appendf("# TYPE phos_ethereum_peers gauge\n")
		appendf("phos_ethereum_peers{program=%q} %d\n", program, n)
	}
	if slot, ok, _ := c.Slot(); ok {
		appendf("# HELP phos_ethereum_slot Most recently observed slot number.\n")
		appendf("# TYPE phos_ethereum_slot gauge\n")
		appendf("phos_ethereum_slot{program=%q} %d\n", program, slot)
	}
	return string(b)
}

// PrometheusMetrics holds the live counters/gauges the aggregator
// registers once per process and serves through promhttp.Handler() at
// /metrics, updated incrementally as lines are processed.
type PrometheusMetrics struct {
	LinesTotal  *prometheus.CounterVec
	PeerCount   prometheus.Gauge
	Slot        prometheus.Gauge
	ErrorsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates and registers the aggregator's metrics
// against reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		LinesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phos",
			Name:      "log_lines_total",
			Help:      "Number of log lines processed, by detected level.",
		}, []string{"level", "container"}),
		PeerCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "phos",
			Name:      "peer_count",
			Help:      "Most recently observed peer count.",
		}),
		Slot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "phos",
			Name:      "slot",
			Help:      "Most recently observed slot number.",
		}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phos",
			Name:      "errors_total",
			Help:      "Total number of error-level lines seen, by container.",
		}, []string{"container"}),
	}
	reg.MustRegister(m.LinesTotal, m.PeerCount, m.Slot, m.ErrorsTotal)
	return m
}

// Observe updates m from a single line's detected level (as returned by
// Collector.ProcessLineLevel) and the collector's current peer/slot
// state, keyed by container.
func (m *PrometheusMetrics) Observe(container, level string, c *Collector) {
	if level != "" {
		m.LinesTotal.WithLabelValues(level, container).Inc()
		if level == "error" {
			m.ErrorsTotal.WithLabelValues(container).Inc()
		}
	}
	if n, ok := c.PeerCount(); ok {
		m.PeerCount.Set(float64(n))
	}
	if slot, ok, _ := c.Slot(); ok {
		m.Slot.Set(float64(slot))
	}
}
