package color_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/color"
)

func TestParseSemanticColorAliases(t *testing.T) {
	cases := map[string]color.SemanticColor{
		"warning":    color.Warn,
		"bool":       color.Boolean,
		"id":         color.Identifier,
		"tag":        color.Label,
		"time":       color.Timestamp,
		"fail":       color.Failure,
		"measure":    color.Metric,
		"ERROR":      color.Error,
	}
	for name, want := range cases {
		got, ok := color.ParseSemanticColor(name)
		assert.Assert(t, ok, name)
		assert.Equal(t, got, want, name)
	}
}

func TestParseSemanticColorUnknown(t *testing.T) {
	_, ok := color.ParseSemanticColor("not-a-color")
	assert.Assert(t, !ok)
}

func TestParseSpec(t *testing.T) {
	assert.Equal(t, color.ParseSpec("error").Kind, color.SpecSemantic)
	assert.Equal(t, color.ParseSpec("#FF0000").Kind, color.SpecHex)
	assert.Equal(t, color.ParseSpec("red").Kind, color.SpecNamed)
	assert.Equal(t, color.ParseSpec("lighthouse").Kind, color.SpecDomain)
}

func TestParseHexRGB(t *testing.T) {
	r, g, b, ok := color.ParseHexRGB("#FF8800")
	assert.Assert(t, ok)
	assert.Equal(t, r, uint8(0xFF))
	assert.Equal(t, g, uint8(0x88))
	assert.Equal(t, b, uint8(0x00))

	_, _, _, ok = color.ParseHexRGB("bad")
	assert.Assert(t, !ok)
}

func TestBrandColorKnownAndUnknown(t *testing.T) {
	assert.Equal(t, color.BrandColor("geth"), "#6699FF")
	assert.Equal(t, color.BrandColor("unknown-client"), "")
}

func TestColorString(t *testing.T) {
	assert.Equal(t, color.Named("red").String(), "red")
	assert.Equal(t, color.Hex("#FFFFFF").String(), "#FFFFFF")
	assert.Equal(t, color.RGB(1, 2, 3).String(), "rgb(1,2,3)")
	assert.Equal(t, color.Semantic(color.Error).String(), "error")
}
