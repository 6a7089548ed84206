package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/config"
)

func TestProgramsDirAndThemesDir(t *testing.T) {
	assert.Equal(t, config.ProgramsDir("/tmp/phos"), filepath.Join("/tmp/phos", "programs"))
	assert.Equal(t, config.ThemesDir("/tmp/phos"), filepath.Join("/tmp/phos", "themes"))
}

func TestProgramsDirDefaultsWhenEmpty(t *testing.T) {
	got := config.ProgramsDir("")
	assert.Assert(t, len(got) > 0)
	assert.Equal(t, filepath.Base(got), "programs")
}

func TestLoadGlobalMissingDefaultIsNotError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := config.LoadGlobal("")
	assert.NilError(t, err)
	assert.Equal(t, cfg.Theme, "")
}

func TestLoadGlobalMissingExplicitIsError(t *testing.T) {
	_, err := config.LoadGlobal("/no/such/config.yaml")
	assert.Assert(t, err != nil)
}

func TestLoadGlobalExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("theme: gruvbox\nstats_export: json\n"), 0644))

	cfg, err := config.LoadGlobal(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Theme, "gruvbox")
	assert.Equal(t, cfg.StatsExport, "json")
}

func TestDefaultDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")
	assert.Equal(t, config.DefaultDir(), filepath.Join("/custom/xdg", "phos"))
}
