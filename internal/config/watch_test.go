package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/config"
)

func TestWatchDirNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan string, 4)

	w, err := config.WatchDir(dir, func(path string) { changes <- path })
	assert.NilError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "new-program.yaml")
	assert.NilError(t, os.WriteFile(target, []byte("id: test"), 0644))

	select {
	case path := <-changes:
		assert.Equal(t, path, target)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a watch notification")
	}
}

func TestWatchDirMissingDirErrors(t *testing.T) {
	_, err := config.WatchDir("/no/such/directory", func(string) {})
	assert.Assert(t, err != nil)
}
