package aggregator_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/aggregator"
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/program"
)

func TestHandleContainersListsFromProvider(t *testing.T) {
	p := &fakeProvider{lines: map[string][]string{"c1": {"ERROR boom"}}}
	streamer := aggregator.NewLogStreamer(p, color.DefaultTheme(), program.DefaultRegistry(), 0, nil)
	srv := aggregator.NewServer(streamer, p, program.DefaultRegistry())

	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/containers")
	assert.NilError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, resp.StatusCode, http.StatusOK)

	var containers []map[string]any
	assert.NilError(t, json.NewDecoder(resp.Body).Decode(&containers))
	assert.Equal(t, len(containers), 1)
	assert.Equal(t, containers[0]["id"], "c1")
}

func TestHandleThemesListsBuiltins(t *testing.T) {
	p := &fakeProvider{lines: map[string][]string{}}
	streamer := aggregator.NewLogStreamer(p, color.DefaultTheme(), program.DefaultRegistry(), 0, nil)
	srv := aggregator.NewServer(streamer, p, program.DefaultRegistry())

	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/themes")
	assert.NilError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, resp.StatusCode, http.StatusOK)

	var names []string
	assert.NilError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Assert(t, len(names) > 0)
}

func TestHandleWebSocketMissingContainerID(t *testing.T) {
	p := &fakeProvider{lines: map[string][]string{}}
	streamer := aggregator.NewLogStreamer(p, color.DefaultTheme(), program.DefaultRegistry(), 0, nil)
	srv := aggregator.NewServer(streamer, p, program.DefaultRegistry())

	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ws/logs/")
	assert.NilError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, resp.StatusCode, http.StatusBadRequest)
}

func TestHandleWebSocketUnknownContainerReportsError(t *testing.T) {
	p := &fakeProvider{lines: map[string][]string{}}
	streamer := aggregator.NewLogStreamer(p, color.DefaultTheme(), program.DefaultRegistry(), 0, nil)
	srv := aggregator.NewServer(streamer, p, program.DefaultRegistry())

	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/logs/missing"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NilError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]string
	assert.NilError(t, conn.ReadJSON(&msg))
	assert.Equal(t, msg["error"], "container not found")
}
