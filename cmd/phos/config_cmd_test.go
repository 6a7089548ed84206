package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestConfigPathCmdUsesFlagWhenSet(t *testing.T) {
	orig := flagConfigPath
	defer func() { flagConfigPath = orig }()

	flagConfigPath = "/tmp/explicit/config.yaml"
	out := captureStdout(t, func() {
		assert.NilError(t, configPathCmd.RunE(configPathCmd, nil))
	})
	assert.Equal(t, strings.TrimSpace(out), "/tmp/explicit/config.yaml")
}

func TestConfigPathCmdDefaultsToXDG(t *testing.T) {
	orig := flagConfigPath
	defer func() { flagConfigPath = orig }()
	flagConfigPath = ""

	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	out := captureStdout(t, func() {
		assert.NilError(t, configPathCmd.RunE(configPathCmd, nil))
	})
	assert.Assert(t, strings.Contains(out, "config.yaml"))
}

func TestConfigValidateCmdReportsNoErrorsOnEmptyDir(t *testing.T) {
	origPath := flagConfigPath
	defer func() { flagConfigPath = origPath }()

	tmp := t.TempDir()
	flagConfigPath = filepath.Join(tmp, "config.yaml")

	out := captureStdout(t, func() {
		assert.NilError(t, configValidateCmd.RunE(configValidateCmd, nil))
	})
	assert.Assert(t, strings.Contains(out, "config valid"))
}

func TestConfigValidateCmdReportsProgramErrors(t *testing.T) {
	origPath := flagConfigPath
	defer func() { flagConfigPath = origPath }()

	tmp := t.TempDir()
	flagConfigPath = filepath.Join(tmp, "config.yaml")

	progsDir := filepath.Join(tmp, "programs")
	assert.NilError(t, os.MkdirAll(progsDir, 0o755))
	assert.NilError(t, os.WriteFile(filepath.Join(progsDir, "bad.yaml"), []byte("not: [valid"), 0o644))

	err := configValidateCmd.RunE(configValidateCmd, nil)
	assert.Assert(t, err != nil)
}

func TestConfigInitCmdWritesDefaultFile(t *testing.T) {
	origPath := flagConfigPath
	defer func() { flagConfigPath = origPath }()

	tmp := t.TempDir()
	flagConfigPath = filepath.Join(tmp, "config.yaml")

	out := captureStdout(t, func() {
		assert.NilError(t, configInitCmd.RunE(configInitCmd, nil))
	})
	assert.Assert(t, strings.Contains(out, "wrote"))

	data, err := os.ReadFile(filepath.Join(tmp, "config.yaml"))
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "theme: default-dark"))

	for _, sub := range []string{"programs", "themes"} {
		info, err := os.Stat(filepath.Join(tmp, sub))
		assert.NilError(t, err)
		assert.Assert(t, info.IsDir())
	}
}

func TestConfigInitCmdLeavesExistingFileAlone(t *testing.T) {
	origPath := flagConfigPath
	defer func() { flagConfigPath = origPath }()

	tmp := t.TempDir()
	flagConfigPath = filepath.Join(tmp, "config.yaml")
	assert.NilError(t, os.WriteFile(flagConfigPath, []byte("theme: custom\n"), 0o644))

	out := captureStdout(t, func() {
		assert.NilError(t, configInitCmd.RunE(configInitCmd, nil))
	})
	assert.Assert(t, strings.Contains(out, "already exists"))

	data, err := os.ReadFile(flagConfigPath)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "theme: custom\n")
}
