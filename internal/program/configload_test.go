package program_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/program"
)

func TestFromConfigDefaultsIDFromName(t *testing.T) {
	p, err := program.FromConfig(program.Config{Name: "My Tool"})
	assert.NilError(t, err)
	assert.Equal(t, p.Info().ID, "custom.my-tool")
	assert.Equal(t, p.Info().Category, program.Custom)
}

func TestFromConfigParsesCategory(t *testing.T) {
	p, err := program.FromConfig(program.Config{Name: "Tool", Category: "network"})
	assert.NilError(t, err)
	assert.Equal(t, p.Info().Category, program.Network)
}

func TestFromConfigUnknownCategoryErrors(t *testing.T) {
	_, err := program.FromConfig(program.Config{Name: "Tool", Category: "not-a-category"})
	assert.Assert(t, err != nil)
}

func TestFromConfigInvalidRuleRegex(t *testing.T) {
	_, err := program.FromConfig(program.Config{
		Name:  "Tool",
		Rules: []program.RuleConfig{{Regex: "["}},
	})
	assert.Assert(t, err != nil)
	var invalid *program.ErrInvalidRule
	assert.Assert(t, errors.As(err, &invalid))
}

func TestFromConfigBuildsRules(t *testing.T) {
	p, err := program.FromConfig(program.Config{
		Name: "Tool",
		Rules: []program.RuleConfig{
			{Regex: `ERROR`, Colors: []string{"error"}, Bold: true},
		},
	})
	assert.NilError(t, err)
	assert.Equal(t, len(p.Rules()), 1)
	assert.Assert(t, p.Rules()[0].Bold)
}

func TestParseColorTokenDomainFallsBackToNamed(t *testing.T) {
	c := program.ParseColorToken("lighthouse", nil)
	assert.Equal(t, c.Kind, color.KindNamed)
}

func TestParseColorTokenDomainResolved(t *testing.T) {
	c := program.ParseColorToken("lighthouse", map[string]string{"lighthouse": "#9933FF"})
	assert.Equal(t, c.Kind, color.KindHex)
	assert.Equal(t, c.Hex, "#9933FF")
}

func TestLoadUserProgramsMissingDirIsNotError(t *testing.T) {
	programs, errs := program.LoadUserPrograms(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, len(programs), 0)
	assert.Equal(t, len(errs), 0)
}

func TestLoadUserProgramsEmptyDirString(t *testing.T) {
	programs, errs := program.LoadUserPrograms("")
	assert.Equal(t, len(programs), 0)
	assert.Equal(t, len(errs), 0)
}

func TestLoadUserProgramsParsesValidAndSkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "good.yaml"), []byte("name: Good Tool\n"), 0644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("rules:\n  - regex: \"[\"\n"), 0644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not a program"), 0644))

	programs, errs := program.LoadUserPrograms(dir)
	assert.Equal(t, len(programs), 1)
	assert.Equal(t, len(errs), 1)
	assert.Equal(t, programs[0].Info().Name, "Good Tool")
}

func TestRegisterUserProgramsAddsToRegistry(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "good.yaml"), []byte("name: Good Tool\n"), 0644))

	reg := program.NewRegistry()
	errs := program.RegisterUserPrograms(reg, dir)
	assert.Equal(t, len(errs), 0)
	assert.Equal(t, reg.Len(), 1)
}
