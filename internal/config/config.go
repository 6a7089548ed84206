// Package config loads phos configuration, program, and theme files,
// auto-detecting YAML or JSON by file extension, and wraps parse errors
// with the file path that caused them.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileFormat is a supported config file encoding.
type FileFormat int

const (
	FormatYAML FileFormat = iota
	FormatJSON
)

// FormatFromPath detects a file format from its extension: .yaml/.yml are
// YAML, .json is JSON. Returns ok=false for anything else.
func FormatFromPath(path string) (FileFormat, bool) {
	return FormatFromExtension(filepath.Ext(path))
}

// FormatFromExtension detects a format from a file extension, matching
// case-insensitively and tolerating a leading dot or not.
func FormatFromExtension(ext string) (FileFormat, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	default:
		return 0, false
	}
}

// Error wraps a config loading failure, optionally carrying the file path
// that caused it.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func withPath(path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Path: path, Err: err}
}

// Parse decodes content into v using the given format.
func Parse(format FileFormat, content []byte, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(content, v)
	case FormatJSON:
		return json.Unmarshal(content, v)
	default:
		return fmt.Errorf("unknown file format")
	}
}

// LoadFile reads path, detects its format from the extension (falling back
// to defaultFormat when the extension is unrecognized and defaultFormat is
// non-nil), and decodes it into v. Errors are wrapped with the file path so
// callers can report exactly which file failed.
func LoadFile(path string, defaultFormat *FileFormat, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return withPath(path, err)
	}

	format, ok := FormatFromPath(path)
	if !ok {
		if defaultFormat == nil {
			return withPath(path, fmt.Errorf("unknown file format: %s", filepath.Ext(path)))
		}
		format = *defaultFormat
	}

	if err := Parse(format, content, v); err != nil {
		return withPath(path, err)
	}
	return nil
}
