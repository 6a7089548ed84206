package color

import (
	"github.com/charmbracelet/lipgloss"
)

// ToLipgloss converts a concrete Color (Named, Hex, or RGB) to a lipgloss
// style carrying only a foreground color. Semantic colors must be resolved
// by a Theme before reaching here; ToLipgloss treats an unresolved
// Semantic as "no foreground" rather than failing, since the colorizer's
// hot path never errors.
func ToLipgloss(c Color) lipgloss.Style {
	switch c.Kind {
	case KindNamed:
		return lipgloss.NewStyle().Foreground(namedToLipgloss(c.Name))
	case KindHex:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex))
	case KindRGB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(rgbHex(c.R, c.G, c.B)))
	default:
		return lipgloss.NewStyle()
	}
}

func rgbHex(r, g, b uint8) string {
	const hexDigits = "0123456789ABCDEF"
	buf := [7]byte{'#'}
	for i, v := range [3]uint8{r, g, b} {
		buf[1+i*2] = hexDigits[v>>4]
		buf[2+i*2] = hexDigits[v&0xF]
	}
	return string(buf[:])
}

func namedToLipgloss(name string) lipgloss.Color {
	switch name {
	case "black":
		return lipgloss.Color("0")
	case "red":
		return lipgloss.Color("1")
	case "green":
		return lipgloss.Color("2")
	case "yellow":
		return lipgloss.Color("3")
	case "blue":
		return lipgloss.Color("4")
	case "magenta", "purple":
		return lipgloss.Color("5")
	case "cyan":
		return lipgloss.Color("6")
	case "white":
		return lipgloss.Color("7")
	case "bright_black", "gray", "grey":
		return lipgloss.Color("8")
	case "bright_red":
		return lipgloss.Color("9")
	case "bright_green":
		return lipgloss.Color("10")
	case "bright_yellow":
		return lipgloss.Color("11")
	case "bright_blue":
		return lipgloss.Color("12")
	case "bright_magenta":
		return lipgloss.Color("13")
	case "bright_cyan":
		return lipgloss.Color("14")
	case "bright_white":
		return lipgloss.Color("15")
	default:
		return lipgloss.Color("")
	}
}
