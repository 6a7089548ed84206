package program

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/config"
	"github.com/hydepwns/phos-go/internal/logging"
	"github.com/hydepwns/phos-go/internal/rule"
)

// RuleConfig is the on-disk shape of one rule within a program file.
type RuleConfig struct {
	Regex   string   `yaml:"regex" json:"regex"`
	Colors  []string `yaml:"colors" json:"colors"`
	Bold    bool     `yaml:"bold" json:"bold"`
	Skip    bool     `yaml:"skip" json:"skip"`
	Replace string   `yaml:"replace" json:"replace"`
}

// Config is the on-disk shape of a user-defined program file.
type Config struct {
	Name           string            `yaml:"name" json:"name"`
	ID             string            `yaml:"id" json:"id"`
	Description    string            `yaml:"description" json:"description"`
	Category       string            `yaml:"category" json:"category"`
	Detect         []string          `yaml:"detect" json:"detect"`
	SemanticColors map[string]string `yaml:"semantic_colors" json:"semantic_colors"`
	Rules          []RuleConfig      `yaml:"rules" json:"rules"`
}

// ErrInvalidRule reports a rule whose regex failed to compile, carrying
// the offending pattern.
type ErrInvalidRule struct {
	Pattern string
	Err     error
}

func (e *ErrInvalidRule) Error() string {
	return fmt.Sprintf("invalid rule pattern %q: %v", e.Pattern, e.Err)
}

func (e *ErrInvalidRule) Unwrap() error { return e.Err }

// ParseColorToken resolves one color token from a rule's `colors` list:
// semantic name, hex, ANSI-named, then domain color (looked up in
// domainColors; if absent, treated as an ANSI name anyway so an
// unresolved token still degrades to *some* styling attempt rather than
// silently vanishing).
func ParseColorToken(token string, domainColors map[string]string) color.Color {
	spec := color.ParseSpec(token)
	switch spec.Kind {
	case color.SpecSemantic:
		return color.Semantic(spec.Semantic)
	case color.SpecHex:
		return color.Hex(spec.Hex)
	case color.SpecNamed:
		return color.Named(spec.Name)
	case color.SpecDomain:
		if hex, ok := domainColors[spec.Domain]; ok {
			return color.Hex(hex)
		}
		return color.Named(spec.Domain)
	default:
		return color.Named(token)
	}
}

func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// FromConfig builds a Program from a parsed Config, compiling every rule's
// regex and resolving its color tokens against the program's own
// semantic_colors map.
func FromConfig(cfg Config) (Program, error) {
	id := cfg.ID
	if id == "" {
		id = "custom." + slug(cfg.Name)
	}

	category := Custom
	if cfg.Category != "" {
		c, err := ParseCategory(cfg.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}

	rules := make([]rule.Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		b, err := rule.New(rc.Regex)
		if err != nil {
			return nil, &ErrInvalidRule{Pattern: rc.Regex, Err: err}
		}
		for _, token := range rc.Colors {
			b.Color(ParseColorToken(token, cfg.SemanticColors))
		}
		if rc.Bold {
			b.Bold()
		}
		if rc.Skip {
			b.SkipLine()
		}
		if rc.Replace != "" {
			b.ReplaceWith(rc.Replace)
		}
		rules = append(rules, b.Build())
	}

	domainColors := make(map[string]color.Color, len(cfg.SemanticColors))
	for name, hex := range cfg.SemanticColors {
		domainColors[name] = color.Hex(hex)
	}

	p := NewSimple(id, cfg.Name, cfg.Description, category, rules).
		WithDetectPatterns(cfg.Detect...).
		WithDomainColors(domainColors)
	return p, nil
}

// LoadUserPrograms reads every recognized config file directly under dir
// (no recursion) and parses it into a Program. A missing dir is not an
// error — user program directories are optional. Per-file errors are
// returned alongside whatever programs did load successfully, so callers
// can choose to warn-and-continue (normal startup) or report-and-fail
// (`phos config validate`).
func LoadUserPrograms(dir string) ([]Program, []error) {
	var programs []Program
	var errs []error
	if dir == "" {
		return programs, errs
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return programs, errs
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := config.FormatFromExtension(filepath.Ext(entry.Name())); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		var cfg Config
		if err := config.LoadFile(path, nil, &cfg); err != nil {
			errs = append(errs, err)
			continue
		}
		p, err := FromConfig(cfg)
		if err != nil {
			errs = append(errs, &config.Error{Path: path, Err: err})
			continue
		}
		programs = append(programs, p)
	}
	return programs, errs
}

// RegisterUserPrograms loads dir's program files into reg, logging a
// warning per failed file instead of aborting startup. It returns the
// same per-file errors for callers that also want to report them (e.g.
// `phos config validate`).
func RegisterUserPrograms(reg *Registry, dir string) []error {
	programs, errs := LoadUserPrograms(dir)
	for _, p := range programs {
		reg.Register(p)
	}
	for _, err := range errs {
		logging.Warn().Err(err).Msg("program: failed to load user program file")
	}
	return errs
}
