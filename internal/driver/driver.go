// Package driver wires a Colorizer (and optionally a stats collector and
// alert manager) to a line-oriented input source: stdin, or a spawned
// subprocess's stdout/stderr.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/hydepwns/phos-go/internal/alert"
	"github.com/hydepwns/phos-go/internal/colorizer"
	"github.com/hydepwns/phos-go/internal/logging"
	"github.com/hydepwns/phos-go/internal/stats"
)

// maxScannerBuffer gives headroom over the colorizer's MaxLineLength:
// about a hundred times it, so bufio.Scanner doesn't choke on a long line
// before the colorizer's own length gate gets to decide what to do with
// it.
const maxScannerBuffer = 1024 * 1024

// Options configures a driver run.
type Options struct {
	Colorizer    *colorizer.Colorizer
	Stats        *stats.Collector   // nil disables stats collection
	Alerts       *alert.Manager     // nil disables alerting
	Out          io.Writer          // defaults to os.Stdout
	StatsOut     io.Writer          // defaults to os.Stderr
	StatsInterval time.Duration     // 0 disables periodic printing
	// SuppressFinalSummary skips the human-readable Summary() print on
	// exit, for callers that print a different export format (JSON,
	// Prometheus) themselves once the stream ends.
	SuppressFinalSummary bool
}

func (o *Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o *Options) statsOut() io.Writer {
	if o.StatsOut != nil {
		return o.StatsOut
	}
	return os.Stderr
}

// ProcessStdin reads lines from stdin, colorizes them, and writes
// colorized output to Options.Out, until EOF or ctx is canceled. If
// Options.Stats is set, a final summary is printed to Options.StatsOut on
// exit (and, if StatsInterval > 0, a compact line is printed
// periodically while the stream runs).
func ProcessStdin(ctx context.Context, stdin io.Reader, opts Options) error {
	return processStream(ctx, stdin, opts)
}

func processStream(ctx context.Context, r io.Reader, opts Options) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScannerBuffer)

	var stopTicker func()
	if opts.Stats != nil && opts.StatsInterval > 0 {
		stopTicker = startStatsTicker(ctx, opts)
	}
	if stopTicker != nil {
		defer stopTicker()
	}

	// Alert conditions read error, peer and slot state from a collector;
	// with stats off, alerting gets a private one that is never printed.
	alertStats := opts.Stats
	if opts.Alerts != nil && alertStats == nil {
		alertStats = stats.NewCollector()
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()
		out, skipped, hadMatches := opts.Colorizer.Colorize(line)

		if opts.Stats != nil {
			if skipped {
				opts.Stats.RecordSkipped()
			} else {
				opts.Stats.ProcessLine(line, hadMatches)
			}
		}
		if opts.Alerts != nil && !skipped {
			if alertStats != opts.Stats {
				alertStats.ProcessLine(line, hadMatches)
			}
			opts.Alerts.CheckLine(ctx, line, alertStats.Snapshot())
		}

		if skipped {
			continue
		}
		fmt.Fprintln(opts.out(), out)
	}

	if opts.Stats != nil && !opts.SuppressFinalSummary {
		fmt.Fprint(opts.statsOut(), opts.Stats.Summary())
	}

	return scanner.Err()
}

func startStatsTicker(ctx context.Context, opts Options) func() {
	ticker := time.NewTicker(opts.StatsInterval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case now := <-ticker.C:
				fmt.Fprintln(opts.statsOut(), opts.Stats.Compact(now))
			}
		}
	}()
	return func() { close(done) }
}

// ProcessCommand spawns name with args, piping its stdout and stderr
// each through their own Colorizer/stats/alert state (each line stream
// owns independent collector state per the "Stats is owned by one
// driver" ownership rule), and returns once the process exits. The
// combined exit error (if any) is returned so callers can propagate the
// child's exit code.
func ProcessCommand(ctx context.Context, name string, args []string, stdoutOpts, stderrOpts Options) error {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("driver: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("driver: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("driver: start %s: %w", name, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := processStream(ctx, stdout, stdoutOpts); err != nil {
			logging.Debug().Err(err).Msg("driver: stdout stream ended")
		}
	}()
	go func() {
		defer wg.Done()
		if err := processStream(ctx, stderr, stderrOpts); err != nil {
			logging.Debug().Err(err).Msg("driver: stderr stream ended")
		}
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("driver: %s: %w", name, err)
	}
	return nil
}

// MergedStats combines the independently-accumulated stdout/stderr
// collectors from ProcessCommand into one, per the commutative-merge
// ownership rule for multi-reader stats.
func MergedStats(collectors ...*stats.Collector) *stats.Collector {
	merged := stats.NewCollector()
	for _, c := range collectors {
		if c != nil {
			merged.Merge(c)
		}
	}
	return merged
}
