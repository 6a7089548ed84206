package aggregator

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/logging"
	"github.com/hydepwns/phos-go/internal/program"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes the aggregator's HTTP and WebSocket surface: container
// listing, theme listing, live log streaming, and Prometheus metrics.
type Server struct {
	streamer *LogStreamer
	provider Provider
	registry *program.Registry
	mux      *http.ServeMux
}

// NewServer builds the HTTP mux for streamer/provider/registry. Static
// assets (index HTML, stylesheet) are not served here: the caller
// registers its own handlers for them on the returned mux before use,
// keeping this package free of embedded-asset concerns.
func NewServer(streamer *LogStreamer, provider Provider, registry *program.Registry) *Server {
	s := &Server{streamer: streamer, provider: provider, registry: registry, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/containers", s.handleContainers)
	s.mux.HandleFunc("/api/themes", s.handleThemes)
	s.mux.HandleFunc("/ws/logs/", s.handleWebSocket)
	s.mux.Handle("/metrics", promhttp.Handler())
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// Mux exposes the underlying mux so callers can register static file
// handlers for "/" and "/styles.css".
func (s *Server) Mux() *http.ServeMux { return s.mux }

type containerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Image   string  `json:"image"`
	Status  string  `json:"status"`
	Program string  `json:"program,omitempty"`
	Rate    float64 `json:"lines_per_second"`
}

func (s *Server) handleContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := s.provider.ListContainers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	out := make([]containerResponse, 0, len(containers))
	for _, c := range containers {
		resp := containerResponse{ID: c.ID, Name: c.Name, Image: c.Image, Status: c.Status, Rate: s.streamer.Rates().Rate(c.ID)}
		if p, ok := s.registry.Detect(c.Image + " " + c.Name); ok {
			resp.Program = p.Info().ID
		}
		out = append(out, resp)
	}
	writeJSON(w, out)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, color.ListBuiltin())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	containerID := r.URL.Path[len("/ws/logs/"):]
	if containerID == "" {
		http.Error(w, "missing container id", http.StatusBadRequest)
		return
	}

	programOverride := r.URL.Query().Get("program")

	containers, err := s.provider.ListContainers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	var info *ContainerInfo
	for i := range containers {
		if containers[i].ID == containerID {
			info = &containers[i]
			break
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("aggregator: websocket upgrade failed")
		return
	}
	defer conn.Close()

	if info == nil {
		conn.WriteJSON(map[string]string{"error": "container not found"})
		return
	}

	var p program.Program
	if programOverride != "" {
		p, _ = s.registry.Get(programOverride)
	}
	if p == nil {
		p, _ = s.registry.Detect(info.Image + " " + info.Name)
	}
	if p == nil {
		p, _ = s.registry.Get("custom.generic")
	}

	connID := uuid.NewString()
	logging.Debug().Str("connection_id", connID).Str("container", containerID).Msg("aggregator: websocket subscriber connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub := s.streamer.Subscribe()
	defer s.streamer.Unsubscribe(sub)

	for _, entry := range s.streamer.Backlog(containerID) {
		msg := entryToMessage(entry)
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}

	if p != nil {
		go s.streamer.StreamContainer(ctx, containerID, info.Name, p, nil)
	}

	for entry := range sub {
		if entry.ContainerID != containerID {
			continue
		}
		if err := conn.WriteJSON(entryToMessage(entry)); err != nil {
			return
		}
	}
}

func entryToMessage(entry ColorizedLogEntry) map[string]any {
	return map[string]any{
		"container_id":   entry.ContainerID,
		"container_name": entry.ContainerName,
		"program":        entry.ProgramID,
		"timestamp":      entry.Timestamp,
		"html":           entry.HTMLLine,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("aggregator: failed to encode JSON response")
	}
}
