package color_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"gotest.tools/v3/assert"

	"github.com/hydepwns/phos-go/internal/color"
)

func TestToLipglossHex(t *testing.T) {
	st := color.ToLipgloss(color.Hex("#AABBCC"))
	assert.Equal(t, st.GetForeground(), lipgloss.Color("#AABBCC"))
}

func TestToLipglossNamed(t *testing.T) {
	st := color.ToLipgloss(color.Named("red"))
	assert.Equal(t, st.GetForeground(), lipgloss.Color("1"))
}

func TestToLipglossRGB(t *testing.T) {
	st := color.ToLipgloss(color.RGB(0xAA, 0xBB, 0xCC))
	assert.Equal(t, st.GetForeground(), lipgloss.Color("#AABBCC"))
}

func TestToLipglossUnresolvedSemanticHasNoForeground(t *testing.T) {
	st := color.ToLipgloss(color.Semantic(color.Error))
	assert.Equal(t, st.Render("x"), "x", "an unresolved semantic color should apply no styling")
}
