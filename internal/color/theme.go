package color

import "strings"

// Palette defines the 9 base colors a theme is built from. Semantic colors
// are derived from a palette using the fixed mapping in Palette.ToColors,
// so a theme author only has to pick 9 hex values instead of all 16
// semantic slots.
type Palette struct {
	Red, Orange, Green, Cyan, Blue, Purple string
	Gray                                   string // muted/comment color
	Dim                                     string // even more muted, for trace
	Foreground                             string // main text color
}

// ToColors derives the fixed 16-entry semantic color set from the palette.
func (p Palette) ToColors() map[SemanticColor]Color {
	return map[SemanticColor]Color{
		Error:      Hex(p.Red),
		Warn:       Hex(p.Orange),
		Info:       Hex(p.Blue),
		Debug:      Hex(p.Gray),
		Trace:      Hex(p.Dim),
		Number:     Hex(p.Purple),
		String:     Hex(p.Green),
		Boolean:    Hex(p.Purple),
		Success:    Hex(p.Green),
		Failure:    Hex(p.Red),
		Timestamp:  Hex(p.Gray),
		Key:        Hex(p.Cyan),
		Value:      Hex(p.Foreground),
		Identifier: Hex(p.Cyan),
		Label:      Hex(p.Cyan),
		Metric:     Hex(p.Purple),
	}
}

// Theme maps semantic colors to concrete colors, letting rules be written
// once (against semantic colors) and rendered consistently across many
// color schemes.
type Theme struct {
	Name        string
	Description string
	colors      map[SemanticColor]Color
}

// New creates an empty theme with no color mappings.
func New(name string) *Theme {
	return &Theme{Name: name, colors: map[SemanticColor]Color{}}
}

// FromPalette builds a theme by deriving all 16 semantic colors from a
// 9-color palette.
func FromPalette(name, description string, p Palette) *Theme {
	return &Theme{Name: name, Description: description, colors: p.ToColors()}
}

// Set assigns a concrete color to a semantic slot.
func (t *Theme) Set(s SemanticColor, c Color) {
	t.colors[s] = c
}

// Resolve looks up the concrete color for a semantic color, if the theme
// defines one.
func (t *Theme) Resolve(s SemanticColor) (Color, bool) {
	c, ok := t.colors[s]
	return c, ok
}

// ResolveColor resolves a Color that may itself be Semantic, returning it
// unchanged if it is already concrete or if the theme has no mapping for
// it.
func (t *Theme) ResolveColor(c Color) Color {
	if c.Kind != KindSemantic {
		return c
	}
	if resolved, ok := t.Resolve(c.Semantic); ok {
		return resolved
	}
	return c
}

// Validate returns the semantic colors this theme has no mapping for. An
// empty result means the theme fully covers SemanticColor's range.
func (t *Theme) Validate() []SemanticColor {
	var missing []SemanticColor
	for _, s := range All {
		if _, ok := t.colors[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

type themeDef struct {
	name        string
	description string
	palette     Palette
}

var builtinThemes = []themeDef{
	{"default-dark", "Default dark theme", Palette{
		Red: "#FF5555", Orange: "#FFAA00", Green: "#AAFFAA", Cyan: "#88FFFF",
		Blue: "#55AAFF", Purple: "#FF88FF", Gray: "#888888", Dim: "#666666",
		Foreground: "#FFFFFF",
	}},
	{"dracula", "Dracula color scheme", Palette{
		Red: "#FF5555", Orange: "#FFB86C", Green: "#F1FA8C", Cyan: "#8BE9FD",
		Blue: "#8BE9FD", Purple: "#BD93F9", Gray: "#6272A4", Dim: "#6272A4",
		Foreground: "#F8F8F2",
	}},
	{"nord", "Nord arctic theme", Palette{
		Red: "#BF616A", Orange: "#D08770", Green: "#A3BE8C", Cyan: "#88C0D0",
		Blue: "#81A1C1", Purple: "#B48EAD", Gray: "#4C566A", Dim: "#4C566A",
		Foreground: "#ECEFF4",
	}},
	{"catppuccin", "Catppuccin Mocha", Palette{
		Red: "#F38BA8", Orange: "#FAB387", Green: "#A6E3A1", Cyan: "#94E2D5",
		Blue: "#89B4FA", Purple: "#CBA6F7", Gray: "#6C7086", Dim: "#6C7086",
		Foreground: "#CDD6F4",
	}},
	{"synthwave84", "Retro-futuristic neon aesthetic", Palette{
		Red: "#FE4450", Orange: "#FEDE5D", Green: "#72F1B8", Cyan: "#03EDF9",
		Blue: "#03EDF9", Purple: "#FF7EDB", Gray: "#848BBD", Dim: "#495495",
		Foreground: "#FFFFFF",
	}},
	{"gruvbox", "Retro groove with earthy colors", Palette{
		Red: "#FB4934", Orange: "#FE8019", Green: "#B8BB26", Cyan: "#8EC07C",
		Blue: "#83A598", Purple: "#D3869B", Gray: "#928374", Dim: "#928374",
		Foreground: "#EBDBB2",
	}},
	{"monokai", "Classic editor color scheme", Palette{
		Red: "#F92672", Orange: "#FD971F", Green: "#E6DB74", Cyan: "#66D9EF",
		Blue: "#66D9EF", Purple: "#AE81FF", Gray: "#75715E", Dim: "#75715E",
		Foreground: "#F8F8F2",
	}},
	{"solarized", "Precision colors, dark variant", Palette{
		Red: "#DC322F", Orange: "#CB4B16", Green: "#859900", Cyan: "#2AA198",
		Blue: "#268BD2", Purple: "#6C71C4", Gray: "#586E75", Dim: "#586E75",
		Foreground: "#93A1A1",
	}},
	{"matrix", "Green monochrome hacker aesthetic", Palette{
		Red: "#00FF00", Orange: "#00DD00", Green: "#00AA00", Cyan: "#00DD00",
		Blue: "#00AA00", Purple: "#00DD00", Gray: "#007700", Dim: "#005500",
		Foreground: "#00AA00",
	}},
	{"phosphor", "Amber CRT terminal nostalgia", Palette{
		Red: "#FFCC00", Orange: "#FFAA00", Green: "#DD8800", Cyan: "#FFAA00",
		Blue: "#DD8800", Purple: "#FFAA00", Gray: "#AA6600", Dim: "#774400",
		Foreground: "#DD8800",
	}},
	{"tokyo-night", "Modern city lights aesthetic", Palette{
		Red: "#F7768E", Orange: "#FF9E64", Green: "#9ECE6A", Cyan: "#73DACA",
		Blue: "#7AA2F7", Purple: "#BB9AF7", Gray: "#565F89", Dim: "#565F89",
		Foreground: "#A9B1D6",
	}},
	{"horizon", "Warm sunset colors", Palette{
		Red: "#E95678", Orange: "#FAB795", Green: "#29D398", Cyan: "#59E3E3",
		Blue: "#26BBD9", Purple: "#EE64AE", Gray: "#6C6F93", Dim: "#6C6F93",
		Foreground: "#FDF0ED",
	}},
	{"high-contrast", "Maximum readability", Palette{
		Red: "#FF0000", Orange: "#FFFF00", Green: "#00FF00", Cyan: "#00FFFF",
		Blue: "#00FFFF", Purple: "#FF00FF", Gray: "#888888", Dim: "#666666",
		Foreground: "#FFFFFF",
	}},
}

// Builtin looks up a built-in theme by name, case-insensitively.
func Builtin(name string) (*Theme, bool) {
	lower := strings.ToLower(name)
	for _, def := range builtinThemes {
		if def.name == lower {
			return FromPalette(def.name, def.description, def.palette), true
		}
	}
	return nil, false
}

// ListBuiltin returns the names of all built-in themes, in definition
// order.
func ListBuiltin() []string {
	names := make([]string, len(builtinThemes))
	for i, def := range builtinThemes {
		names[i] = def.name
	}
	return names
}

// DefaultTheme returns the default-dark theme, used when no theme is
// otherwise configured.
func DefaultTheme() *Theme {
	t, _ := Builtin("default-dark")
	return t
}
