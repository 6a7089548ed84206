// Command phos is a universal log colorizer and aggregator: it reads
// line-oriented text from stdin, a spawned subprocess, or (via the
// aggregator) a container runtime, colorizes recognized patterns, and
// optionally emits statistics and webhook alerts as the stream flows.
package main

import (
	"os"

	"github.com/hydepwns/phos-go/internal/crashlog"
	"github.com/hydepwns/phos-go/internal/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			crashlog.Write(r, "main")
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("phos: command failed")
		os.Exit(1)
	}
}
