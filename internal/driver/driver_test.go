package driver_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/colorizer"
	"github.com/hydepwns/phos-go/internal/driver"
	"github.com/hydepwns/phos-go/internal/rule"
	"github.com/hydepwns/phos-go/internal/stats"
)

func newTestColorizer() *colorizer.Colorizer {
	rules := []rule.Rule{rule.MustNew(`ERROR`).Semantic(color.Error).Build()}
	return colorizer.New(rules, color.DefaultTheme(), true)
}

func TestProcessStdinWritesColorizedLines(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("ERROR one\nINFO two\n")

	err := driver.ProcessStdin(context.Background(), in, driver.Options{
		Colorizer: newTestColorizer(),
		Out:       &out,
	})
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out.String(), "ERROR one"))
	assert.Assert(t, strings.Contains(out.String(), "INFO two"))
}

func TestProcessStdinSkipsDroppedLines(t *testing.T) {
	var out bytes.Buffer
	rules := []rule.Rule{rule.MustNew(`healthcheck`).SkipLine().Build()}
	cz := colorizer.New(rules, color.DefaultTheme(), true)
	in := strings.NewReader("GET /healthcheck 200\nGET /index 200\n")

	err := driver.ProcessStdin(context.Background(), in, driver.Options{
		Colorizer: cz,
		Out:       &out,
	})
	assert.NilError(t, err)
	assert.Assert(t, !strings.Contains(out.String(), "healthcheck"))
	assert.Assert(t, strings.Contains(out.String(), "/index"))
}

func TestProcessStdinPrintsSummaryUnlessSuppressed(t *testing.T) {
	var out, statsOut bytes.Buffer
	in := strings.NewReader("ERROR boom\n")

	err := driver.ProcessStdin(context.Background(), in, driver.Options{
		Colorizer: newTestColorizer(),
		Out:       &out,
		Stats:     stats.NewCollector(),
		StatsOut:  &statsOut,
	})
	assert.NilError(t, err)
	assert.Assert(t, statsOut.Len() > 0)
}

func TestProcessStdinSuppressesSummary(t *testing.T) {
	var out, statsOut bytes.Buffer
	in := strings.NewReader("ERROR boom\n")

	err := driver.ProcessStdin(context.Background(), in, driver.Options{
		Colorizer:            newTestColorizer(),
		Out:                  &out,
		Stats:                stats.NewCollector(),
		StatsOut:             &statsOut,
		SuppressFinalSummary: true,
	})
	assert.NilError(t, err)
	assert.Equal(t, statsOut.Len(), 0)
}

func TestMergedStats(t *testing.T) {
	a := stats.NewCollector()
	a.ProcessLineLevel("ERROR one", true)
	b := stats.NewCollector()
	b.ProcessLineLevel("WARN two", true)

	merged := driver.MergedStats(a, b, nil)
	assert.Equal(t, merged.Counts().Error, 1)
	assert.Equal(t, merged.Counts().Warn, 1)
}

func TestProcessStdinContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := driver.ProcessStdin(ctx, strings.NewReader("line one\nline two\n"), driver.Options{
		Colorizer: newTestColorizer(),
		Out:       &out,
	})
	assert.Assert(t, err != nil)
}
