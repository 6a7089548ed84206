// Package crashlog provides panic recovery for long-running goroutines:
// a crashing goroutine's stack, a dump of every other goroutine, and
// basic memory/FD stats are written to a crash report file instead of
// taking the whole process down.
package crashlog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/hydepwns/phos-go/internal/logging"
)

// Path is the crash report file location. Overridable in tests.
var Path = filepath.Join(os.TempDir(), "phos-crash.log")

// Write appends a full crash report for a recovered panic value r to
// Path, and logs a one-line summary via internal/logging. No-op if r is
// nil.
func Write(r any, goroutineName string) {
	if r == nil {
		return
	}

	f, err := os.OpenFile(Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logging.Error().Err(err).Str("path", Path).Msg("crashlog: failed to open crash log, falling back to stderr")
		f = os.Stderr
	}
	defer f.Close()

	if goroutineName == "" {
		goroutineName = "main"
	}

	fmt.Fprintf(f, "\n\n=== crash report %s ===\n", time.Now().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(f, "goroutine: %s\n", goroutineName)
	fmt.Fprintf(f, "error: %v\n\n", r)

	fmt.Fprintf(f, "-- crashing goroutine stack --\n")
	f.Write(debug.Stack())

	fmt.Fprintf(f, "\n-- all goroutines --\n")
	buf := make([]byte, 1024*1024)
	n := runtime.Stack(buf, true)
	f.Write(buf[:n])

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Fprintf(f, "\n-- system --\n")
	fmt.Fprintf(f, "goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(f, "alloc_mb: %d\n", m.Alloc/1024/1024)
	fmt.Fprintf(f, "total_alloc_mb: %d\n", m.TotalAlloc/1024/1024)
	fmt.Fprintf(f, "sys_mb: %d\n", m.Sys/1024/1024)
	fmt.Fprintf(f, "gc_runs: %d\n", m.NumGC)
	fmt.Fprintf(f, "open_fds: %d\n", countOpenFDs())

	logging.Error().
		Str("goroutine", goroutineName).
		Str("crash_log", Path).
		Interface("recovered", r).
		Msg("recovered from panic")
}

// SafeGo launches fn in a new goroutine with panic recovery: a panic is
// written to the crash log (tagged with name) instead of crashing the
// process, and the goroutine simply exits.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Write(r, name)
			}
		}()
		fn()
	}()
}

// countOpenFDs returns the number of open file descriptors on Linux, 0
// elsewhere (matches /proc availability, not a portability abstraction
// worth pulling in a library for).
func countOpenFDs() int {
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		return 0
	}
	return len(entries)
}

// GoroutineCount returns the current number of live goroutines, used by
// the watchdog in cmd/phos to detect runaway goroutine growth.
func GoroutineCount() int {
	return runtime.NumGoroutine()
}
