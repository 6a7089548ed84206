package config

import (
	"os"
	"path/filepath"
)

// AlertsConfig is the `alerts` block of the global config file.
type AlertsConfig struct {
	URL             string   `yaml:"url" json:"url"`
	TelegramChatID  string   `yaml:"telegram_chat_id" json:"telegram_chat_id"`
	CooldownSeconds uint64   `yaml:"cooldown" json:"cooldown"`
	Conditions      []string `yaml:"conditions" json:"conditions"`
}

// PTYConfig is the `pty` block of the global config file. phos's own
// drivers (stdin, subprocess pump) don't currently allocate a
// pseudo-terminal, but the schema is still parsed and preserved so a
// config file shared with tooling that does (an interactive wrapper
// invoking `phos -- <command>` against a TTY-hungry program) round-trips
// cleanly.
type PTYConfig struct {
	DrainTimeoutMS      int32    `yaml:"drain_timeout_ms" json:"drain_timeout_ms"`
	DrainMaxRetries     uint32   `yaml:"drain_max_retries" json:"drain_max_retries"`
	InteractiveCommands []string `yaml:"interactive_commands" json:"interactive_commands"`
}

// GlobalConfig is the shape of ~/.config/phos/config.yaml (or .json), the
// per-user defaults a CLI flag overrides.
type GlobalConfig struct {
	Theme                string        `yaml:"theme" json:"theme"`
	Stats                bool          `yaml:"stats" json:"stats"`
	StatsExport          string        `yaml:"stats_export" json:"stats_export"`
	StatsIntervalSeconds uint64        `yaml:"stats_interval" json:"stats_interval"`
	Color                *bool         `yaml:"color" json:"color"`
	Alerts               *AlertsConfig `yaml:"alerts" json:"alerts"`
	PTY                  *PTYConfig    `yaml:"pty" json:"pty"`
}

// DefaultDir returns phos's config directory: $XDG_CONFIG_HOME/phos if
// set, otherwise ~/.config/phos.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "phos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "phos")
	}
	return filepath.Join(home, ".config", "phos")
}

// ProgramsDir and ThemesDir return the user program/theme directories
// under dir (DefaultDir() if dir is "").
func ProgramsDir(dir string) string {
	if dir == "" {
		dir = DefaultDir()
	}
	return filepath.Join(dir, "programs")
}

func ThemesDir(dir string) string {
	if dir == "" {
		dir = DefaultDir()
	}
	return filepath.Join(dir, "themes")
}

// LoadGlobal loads the global config from explicitPath, or from
// DefaultDir()/config.yaml if explicitPath is "". A missing file at the
// default location is not an error (defaults apply); a missing file at an
// explicitly requested path is.
func LoadGlobal(explicitPath string) (GlobalConfig, error) {
	var cfg GlobalConfig

	path := explicitPath
	usingDefault := path == ""
	if usingDefault {
		path = filepath.Join(DefaultDir(), "config.yaml")
	}

	if _, err := os.Stat(path); err != nil {
		if usingDefault {
			return cfg, nil
		}
		return cfg, withPath(path, err)
	}

	err := LoadFile(path, nil, &cfg)
	return cfg, err
}
