// Package program provides the infrastructure for defining and discovering
// log colorization programs: each Program supplies the rules for a
// specific log format, plus metadata used for listing and auto-detection.
package program

import (
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/rule"
)

// Info is metadata about a program.
type Info struct {
	// ID is a unique identifier, e.g. "ethereum.lodestar", "devops.docker".
	ID string
	// Name is a display name, e.g. "Lodestar", "Docker".
	Name string
	// Description of what this program colorizes.
	Description string
	Category    Category
}

// Program supplies colorization rules for a specific log format.
type Program interface {
	Info() Info
	Rules() []rule.Rule
	// DomainColors returns colors specific to this program's domain that
	// aren't universal semantic colors (e.g. per-client brand colors).
	DomainColors() map[string]color.Color
	// DetectPatterns returns substrings matched (as whole words,
	// case-insensitively) against a command line to auto-detect this
	// program.
	DetectPatterns() []string
}

// Simple is the standard Program implementation, built from data rather
// than a custom type.
type Simple struct {
	info         Info
	rules        []rule.Rule
	detect       []string
	domainColors map[string]color.Color
}

// NewSimple constructs a Simple program.
func NewSimple(id, name, description string, category Category, rules []rule.Rule) *Simple {
	return &Simple{
		info:         Info{ID: id, Name: name, Description: description, Category: category},
		rules:        rules,
		domainColors: map[string]color.Color{},
	}
}

// WithDetectPatterns sets the auto-detection patterns and returns the
// receiver for chaining.
func (p *Simple) WithDetectPatterns(patterns ...string) *Simple {
	p.detect = patterns
	return p
}

// WithDomainColors sets domain-specific colors and returns the receiver
// for chaining.
func (p *Simple) WithDomainColors(colors map[string]color.Color) *Simple {
	p.domainColors = colors
	return p
}

func (p *Simple) Info() Info                        { return p.info }
func (p *Simple) Rules() []rule.Rule                 { return p.rules }
func (p *Simple) DetectPatterns() []string           { return p.detect }
func (p *Simple) DomainColors() map[string]color.Color { return p.domainColors }
