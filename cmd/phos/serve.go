package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/docker/docker/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hydepwns/phos-go/internal/aggregator"
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/config"
	"github.com/hydepwns/phos-go/internal/crashlog"
	"github.com/hydepwns/phos-go/internal/logging"
	"github.com/hydepwns/phos-go/internal/stats"
)

const goroutineWarnThreshold = 1000
const goroutineFatalThreshold = 10_000

var (
	flagServePort            int
	flagServeMaxLines        int
	flagServeContainerFilter string
	flagServeBackend         string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web log aggregator against a container backend",
	Long: `serve watches a container runtime, colorizing each container's logs with
its auto-detected program, and exposes them over HTTP and WebSocket for a
browser-based multi-pane viewer.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagServePort, "port", 0, "HTTP listen port (default 8080, or $PHOS_PORT)")
	serveCmd.Flags().IntVar(&flagServeMaxLines, "max-lines", 0, "per-subscriber broadcast buffer size (default 10000, or $PHOS_MAX_LINES)")
	serveCmd.Flags().StringVar(&flagServeContainerFilter, "container-filter", "", "only stream containers whose name matches this substring ($PHOS_CONTAINER_FILTER)")
	serveCmd.Flags().StringVar(&flagServeBackend, "backend", "", "container backend: docker (default, or $PHOS_BACKEND)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	gcfg, err := config.LoadGlobal(flagConfigPath)
	if err != nil {
		return fmt.Errorf("phos: loading config: %w", err)
	}
	registerConfiguredUserPrograms()

	backend := resolveString(flagServeBackend, cmd.Flags().Changed("backend"), "PHOS_BACKEND", "", "docker")
	if backend != "docker" {
		logging.Warn().Str("backend", backend).Msg("phos serve: unsupported backend, falling back to docker")
		backend = "docker"
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("phos: creating docker client: %w", err)
	}
	defer cli.Close()

	provider := aggregator.NewDockerProvider(cli)
	if err := provider.VerifyConnection(cmd.Context()); err != nil {
		return fmt.Errorf("phos: connecting to docker: %w", err)
	}

	themeName := resolveString(flagTheme, cmd.Flags().Changed("theme"), "PHOS_THEME", gcfg.Theme, "default-dark")
	theme, ok := color.Get(config.ThemesDir(configDir()), themeName)
	if !ok {
		theme = color.DefaultTheme()
	}

	maxLines := flagServeMaxLines
	if maxLines == 0 {
		if env := os.Getenv("PHOS_MAX_LINES"); env != "" {
			if n, err := strconv.Atoi(env); err == nil {
				maxLines = n
			}
		}
	}

	metrics := stats.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	streamer := aggregator.NewLogStreamer(provider, theme, registry, maxLines, metrics)
	server := aggregator.NewServer(streamer, provider, registry)
	registerStaticAssets(server.Mux())

	containerFilter := resolveString(flagServeContainerFilter, cmd.Flags().Changed("container-filter"), "PHOS_CONTAINER_FILTER", "", "")

	watchCtx, cancelWatch := context.WithCancel(cmd.Context())
	defer cancelWatch()
	crashlog.SafeGo("container-watch", func() { watchContainers(watchCtx, provider, streamer, containerFilter) })
	crashlog.SafeGo("goroutine-monitor", goroutineWatchdog)

	port := flagServePort
	if port == 0 {
		if env := os.Getenv("PHOS_PORT"); env != "" {
			if n, err := strconv.Atoi(env); err == nil {
				port = n
			}
		}
	}
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: server}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serveErrChan := make(chan error, 1)
	crashlog.SafeGo("http-server", func() {
		logging.Info().Int("port", port).Msg("phos serve: listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErrChan <- err
		}
	})

	select {
	case <-sigChan:
		logging.Info().Msg("phos serve: shutting down")
	case err := <-serveErrChan:
		cancelWatch()
		return fmt.Errorf("phos: serving: %w", err)
	}

	cancelWatch()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// watchContainers polls the provider for the running container set every
// few seconds, starting a StreamContainer goroutine for any container not
// already being streamed. Containers are never explicitly unwatched: a
// stopped container's followed log stream keeps retrying in GetLogs's
// reconnect loop until ctx is canceled at shutdown.
func watchContainers(ctx context.Context, provider aggregator.Provider, streamer *aggregator.LogStreamer, filter string) {
	seen := map[string]bool{}
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	poll := func() {
		containers, err := provider.ListContainers(ctx)
		if err != nil {
			logging.Warn().Err(err).Msg("phos serve: failed to list containers")
			return
		}
		for _, c := range containers {
			if seen[c.ID] {
				continue
			}
			if filter != "" && !containsFold(c.Name, filter) {
				continue
			}
			p, ok := registry.Detect(c.Image + " " + c.Name)
			if !ok {
				p, _ = registry.Get("custom.generic")
			}
			if p == nil {
				continue
			}
			seen[c.ID] = true
			crashlog.SafeGo("stream-"+c.ID, func() { streamer.StreamContainer(ctx, c.ID, c.Name, p, nil) })
		}
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
			streamer.Rates().PruneStale()
		}
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// goroutineWatchdog periodically checks the live goroutine count: a high
// count is logged, a critically high one panics. It runs under
// crashlog.SafeGo, whose recover writes the crash report; the watchdog
// goroutine then exits while the server keeps running.
func goroutineWatchdog() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		count := crashlog.GoroutineCount()
		if count > goroutineWarnThreshold {
			logging.Warn().Int("goroutines", count).Msg("phos serve: high goroutine count")
		}
		if count > goroutineFatalThreshold {
			panic(fmt.Sprintf("phos serve: goroutine leak detected - %d goroutines active (threshold: %d)", count, goroutineFatalThreshold))
		}
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>phos</title>
<link rel="stylesheet" href="/styles.css">
</head>
<body>
<h1>phos</h1>
<div id="containers"></div>
<div id="panes"></div>
<script>
async function loadContainers() {
  const res = await fetch('/api/containers');
  const containers = await res.json();
  const root = document.getElementById('containers');
  root.innerHTML = '';
  for (const c of containers) {
    const btn = document.createElement('button');
    btn.textContent = c.name + ' (' + (c.program || 'unrecognized') + ', ' + c.lines_per_second.toFixed(1) + ' l/s)';
    btn.onclick = () => openPane(c);
    root.appendChild(btn);
  }
}

function openPane(c) {
  const pane = document.createElement('pre');
  pane.className = 'pane';
  document.getElementById('panes').appendChild(pane);
  const proto = location.protocol === 'https:' ? 'wss' : 'ws';
  const ws = new WebSocket(proto + '://' + location.host + '/ws/logs/' + c.id);
  ws.onmessage = (evt) => {
    const msg = JSON.parse(evt.data);
    const line = document.createElement('div');
    line.innerHTML = msg.html || msg.error || '';
    pane.appendChild(line);
    pane.scrollTop = pane.scrollHeight;
  };
}

loadContainers();
</script>
</body>
</html>
`

const stylesCSS = `body { background: #111; color: #ddd; font-family: monospace; margin: 1rem; }
#containers { margin-bottom: 1rem; }
#containers button { margin-right: 0.5rem; margin-bottom: 0.5rem; }
.pane { background: #000; border: 1px solid #333; height: 20rem; overflow-y: auto; padding: 0.5rem; margin-bottom: 1rem; white-space: pre-wrap; }
`

func registerStaticAssets(mux *http.ServeMux) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHTML)
	})
	mux.HandleFunc("/styles.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		fmt.Fprint(w, stylesCSS)
	})
}
