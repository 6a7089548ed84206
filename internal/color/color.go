// Package color provides color representations for terminal output:
// concrete colors (named, hex, RGB), semantic colors resolved by a theme,
// and the flexible ColorSpec used when parsing rule configuration.
package color

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variant held by a Color value.
type Kind int

const (
	KindNamed Kind = iota
	KindHex
	KindRGB
	KindSemantic
)

// Color is a concrete or semantic color specification for styling text.
//
// Only one of the fields is meaningful, selected by Kind: Name for
// KindNamed, Hex for KindHex, R/G/B for KindRGB, Semantic for KindSemantic.
type Color struct {
	Kind     Kind
	Name     string
	Hex      string
	R, G, B  uint8
	Semantic SemanticColor
}

func Named(name string) Color { return Color{Kind: KindNamed, Name: name} }
func Hex(hex string) Color    { return Color{Kind: KindHex, Hex: hex} }
func RGB(r, g, b uint8) Color { return Color{Kind: KindRGB, R: r, G: g, B: b} }
func Semantic(s SemanticColor) Color { return Color{Kind: KindSemantic, Semantic: s} }

func (c Color) String() string {
	switch c.Kind {
	case KindNamed:
		return c.Name
	case KindHex:
		return c.Hex
	case KindRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	case KindSemantic:
		return c.Semantic.String()
	default:
		return ""
	}
}

// SemanticColor is an abstract color concept that a Theme resolves to a
// concrete Color. Writing rules against semantic colors keeps them portable
// across themes.
type SemanticColor int

const (
	Error SemanticColor = iota
	Warn
	Info
	Debug
	Trace
	Number
	String
	Boolean
	Timestamp
	Key
	Value
	Success
	Failure
	Identifier
	Label
	Metric
)

// All lists every semantic color variant, used for theme completeness
// validation.
var All = []SemanticColor{
	Error, Warn, Info, Debug, Trace,
	Number, String, Boolean,
	Timestamp, Key, Value,
	Success, Failure,
	Identifier, Label, Metric,
}

func (s SemanticColor) String() string {
	switch s {
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Debug:
		return "debug"
	case Trace:
		return "trace"
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Timestamp:
		return "timestamp"
	case Key:
		return "key"
	case Value:
		return "value"
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Identifier:
		return "identifier"
	case Label:
		return "label"
	case Metric:
		return "metric"
	default:
		return "unknown"
	}
}

// ParseSemanticColor parses a semantic color by name, including the aliases
// the original recognizes (warn/warning, bool/boolean, id/identifier,
// tag/label, time/timestamp, fail/failure, measure/metric).
func ParseSemanticColor(name string) (SemanticColor, bool) {
	switch strings.ToLower(name) {
	case "error":
		return Error, true
	case "warn", "warning":
		return Warn, true
	case "info":
		return Info, true
	case "debug":
		return Debug, true
	case "trace":
		return Trace, true
	case "number":
		return Number, true
	case "string":
		return String, true
	case "boolean", "bool":
		return Boolean, true
	case "timestamp", "time":
		return Timestamp, true
	case "key":
		return Key, true
	case "value":
		return Value, true
	case "success":
		return Success, true
	case "failure", "fail":
		return Failure, true
	case "identifier", "id":
		return Identifier, true
	case "label", "tag":
		return Label, true
	case "metric", "measure":
		return Metric, true
	default:
		return 0, false
	}
}

// Spec is a flexible color specification used when parsing rule
// configuration files: it may name a semantic color, a domain-specific
// color (resolved by a Program's domain colors), a named ANSI color, or a
// hex color. Parsing tries semantic, then hex, then named-ANSI, and falls
// back to treating the name as domain-specific.
type Spec struct {
	Kind     SpecKind
	Semantic SemanticColor
	Domain   string
	Name     string
	Hex      string
}

type SpecKind int

const (
	SpecSemantic SpecKind = iota
	SpecDomain
	SpecNamed
	SpecHex
)

func ParseSpec(name string) Spec {
	if sem, ok := ParseSemanticColor(name); ok {
		return Spec{Kind: SpecSemantic, Semantic: sem}
	}
	if strings.HasPrefix(name, "#") {
		return Spec{Kind: SpecHex, Hex: name}
	}
	if isANSIColorName(name) {
		return Spec{Kind: SpecNamed, Name: name}
	}
	return Spec{Kind: SpecDomain, Domain: name}
}

func isANSIColorName(name string) bool {
	switch strings.ToLower(name) {
	case "black", "red", "green", "yellow", "blue", "magenta", "purple",
		"cyan", "white", "gray", "grey",
		"bright_black", "bright_red", "bright_green", "bright_yellow",
		"bright_blue", "bright_magenta", "bright_cyan", "bright_white":
		return true
	default:
		return false
	}
}

// ParseHexRGB parses "#RRGGBB" or "RRGGBB" into RGB components. It reports
// ok=false on malformed input rather than erroring, matching the
// colorization hot path's never-fail invariant: a bad color spec degrades
// to no styling, it never aborts a line.
func ParseHexRGB(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) < 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}

// BrandColor returns the known hex brand color for an Ethereum client name,
// or "" if the client isn't recognized.
func BrandColor(client string) string {
	switch strings.ToLower(client) {
	case "lighthouse":
		return "#9933FF"
	case "prysm":
		return "#22CC88"
	case "teku":
		return "#3366FF"
	case "nimbus":
		return "#CC9933"
	case "lodestar":
		return "#AA44FF"
	case "grandine":
		return "#FF6633"
	case "lambda":
		return "#9966FF"
	case "geth":
		return "#6699FF"
	case "nethermind":
		return "#33CCCC"
	case "besu":
		return "#009999"
	case "erigon":
		return "#66CC33"
	case "reth":
		return "#FF9966"
	case "mana":
		return "#CC66FF"
	case "charon":
		return "#6633FF"
	case "mevboost", "mev-boost", "mev_boost":
		return "#FF6699"
	default:
		return ""
	}
}
