package color

import (
	"os"
	"path/filepath"

	"github.com/hydepwns/phos-go/internal/config"
	"github.com/hydepwns/phos-go/internal/logging"
)

// ThemeConfig is the on-disk shape of a user-defined theme file (YAML or
// JSON): a name/description, an optional direct semantic-color map, and/or
// a 9-color palette. When both are present, direct colors override the
// palette-derived ones.
type ThemeConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Colors      map[string]string `yaml:"colors" json:"colors"`
	Palette     *PaletteConfig    `yaml:"palette" json:"palette"`
}

// PaletteConfig is the on-disk shape of a 9-color palette, with gray/dim/
// foreground defaulted when omitted.
type PaletteConfig struct {
	Red, Orange, Green, Cyan, Blue, Purple string
	Gray                                   string
	Dim                                     string
	Foreground                             string
}

func (p PaletteConfig) toPalette() Palette {
	gray, dim, fg := p.Gray, p.Dim, p.Foreground
	if gray == "" {
		gray = "#888888"
	}
	if dim == "" {
		dim = "#666666"
	}
	if fg == "" {
		fg = "#FFFFFF"
	}
	return Palette{
		Red: p.Red, Orange: p.Orange, Green: p.Green, Cyan: p.Cyan,
		Blue: p.Blue, Purple: p.Purple, Gray: gray, Dim: dim, Foreground: fg,
	}
}

// FromConfig builds a Theme from a parsed ThemeConfig: palette-derived
// colors first, then direct color overrides on top.
func FromConfig(cfg ThemeConfig) *Theme {
	t := New(cfg.Name)
	t.Description = cfg.Description

	if cfg.Palette != nil {
		for sem, c := range cfg.Palette.toPalette().ToColors() {
			t.Set(sem, c)
		}
	}
	for name, hex := range cfg.Colors {
		if sem, ok := ParseSemanticColor(name); ok {
			t.Set(sem, Hex(hex))
		}
	}
	return t
}

// LoadFromFile loads a theme from a YAML or JSON file.
func LoadFromFile(path string) (*Theme, error) {
	var cfg ThemeConfig
	if err := config.LoadFile(path, nil, &cfg); err != nil {
		return nil, err
	}
	return FromConfig(cfg), nil
}

// LoadUserTheme searches themesDir for a file named <name>.{yaml,yml,json}
// and loads it, logging a warning and returning ok=false if the file
// exists but fails to parse: config load failures never abort a running
// process.
func LoadUserTheme(themesDir, name string) (*Theme, bool) {
	if themesDir == "" {
		return nil, false
	}
	if _, err := os.Stat(themesDir); err != nil {
		return nil, false
	}

	for _, ext := range []string{"yaml", "yml", "json"} {
		path := filepath.Join(themesDir, name+"."+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		theme, err := LoadFromFile(path)
		if err != nil {
			logging.Warn().Str("path", path).Err(err).Msg("failed to load theme")
			return nil, false
		}
		return theme, true
	}
	return nil, false
}

// Get resolves a theme by name, checking the user themes directory first
// and falling back to a built-in theme.
func Get(themesDir, name string) (*Theme, bool) {
	if t, ok := LoadUserTheme(themesDir, name); ok {
		return t, true
	}
	return Builtin(name)
}

// ValidateThemesDir parses every recognized theme file directly under dir
// and returns the load errors, without installing anything: the
// fail-fast counterpart to LoadUserTheme's warn-and-skip used by `phos
// config validate`. A missing dir yields no errors.
func ValidateThemesDir(dir string) []error {
	var errs []error
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errs
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := config.FormatFromExtension(filepath.Ext(entry.Name())); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := LoadFromFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
