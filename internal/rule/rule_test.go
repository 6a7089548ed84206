package rule_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/rule"
)

func TestBuilderBuild(t *testing.T) {
	r, err := rule.New(`\d+`)
	assert.NilError(t, err)
	built := r.Semantic(color.Number).Bold().Build()

	assert.Assert(t, built.IsMatch("value=42"))
	assert.Assert(t, !built.IsMatch("no digits here"))
	assert.Equal(t, len(built.Colors), 1)
	assert.Equal(t, built.Bold, true)
}

func TestNewInvalidPattern(t *testing.T) {
	_, err := rule.New(`(unterminated`)
	assert.Assert(t, err != nil)
}

func TestMustNewPanicsOnBadPattern(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected MustNew to panic on an invalid pattern")
		}
	}()
	rule.MustNew(`[`)
}

func TestFindAllIndexOnce(t *testing.T) {
	built := rule.MustNew(`\d+`).Count(rule.Once).Build()
	matches := built.FindAllIndex("1 2 3")
	assert.Equal(t, len(matches), 1)
}

func TestFindAllIndexMore(t *testing.T) {
	built := rule.MustNew(`\d+`).Build()
	matches := built.FindAllIndex("1 2 3")
	assert.Equal(t, len(matches), 3)
}

func TestSkipLine(t *testing.T) {
	built := rule.MustNew(`healthcheck`).SkipLine().Build()
	assert.Assert(t, built.Skip)
}

func TestReplaceWith(t *testing.T) {
	built := rule.MustNew(`secret=\S+`).ReplaceWith("secret=***").Build()
	assert.Assert(t, built.HasReplace())
	assert.Equal(t, built.ReplaceAll("token secret=abc123 end"), "token secret=*** end")
}

func TestNoReplaceByDefault(t *testing.T) {
	built := rule.MustNew(`\d+`).Build()
	assert.Assert(t, !built.HasReplace())
}
