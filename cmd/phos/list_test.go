package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	assert.NilError(t, err)
	os.Stdout = w

	fn()

	assert.NilError(t, w.Close())
	os.Stdout = old

	out, err := io.ReadAll(r)
	assert.NilError(t, err)
	return string(out)
}

func TestListCmdPrintsAllCategories(t *testing.T) {
	flagListCategory = ""
	out := captureStdout(t, func() {
		assert.NilError(t, listCmd.RunE(listCmd, nil))
	})
	assert.Assert(t, strings.Contains(out, "devops.docker"))
}

func TestListCmdFiltersByCategory(t *testing.T) {
	flagListCategory = "devops"
	defer func() { flagListCategory = "" }()

	out := captureStdout(t, func() {
		assert.NilError(t, listCmd.RunE(listCmd, nil))
	})
	assert.Assert(t, strings.Contains(out, "devops.docker"))
	assert.Assert(t, !strings.Contains(out, "ethereum.lodestar"))
}

func TestListCmdUnknownCategoryErrors(t *testing.T) {
	flagListCategory = "not-a-real-category"
	defer func() { flagListCategory = "" }()

	err := listCmd.RunE(listCmd, nil)
	assert.Assert(t, err != nil)
}

func TestThemesCmdListsBuiltins(t *testing.T) {
	out := captureStdout(t, func() {
		assert.NilError(t, themesCmd.RunE(themesCmd, nil))
	})
	assert.Assert(t, strings.Contains(out, "default-dark"))
}

func TestInfoCmdShowsProgramDetail(t *testing.T) {
	out := captureStdout(t, func() {
		assert.NilError(t, infoCmd.RunE(infoCmd, []string{"devops.docker"}))
	})
	assert.Assert(t, strings.Contains(out, "id:          devops.docker"))
	assert.Assert(t, strings.Contains(out, "detects:"))
}

func TestInfoCmdUnknownProgramErrors(t *testing.T) {
	err := infoCmd.RunE(infoCmd, []string{"no.such.program"})
	assert.ErrorContains(t, err, "unknown program")
}

func TestColorsCmdListsSemanticNames(t *testing.T) {
	out := captureStdout(t, func() {
		assert.NilError(t, colorsCmd.RunE(colorsCmd, nil))
	})
	assert.Assert(t, len(out) > 0)
}
