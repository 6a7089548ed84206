package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/config"
	"github.com/hydepwns/phos-go/internal/program"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or scaffold phos's configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfigPath
		if path == "" {
			path = filepath.Join(config.DefaultDir(), "config.yaml")
		}
		fmt.Println(path)
		return nil
	},
}

// configValidateCmd fails fast on every bad program or theme file under
// the config directory, unlike normal startup's warn-and-skip: this is
// the command an operator runs before trusting a config change.
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate user program and theme files",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := configDir()

		_, programErrs := program.LoadUserPrograms(config.ProgramsDir(dir))
		themeErrs := color.ValidateThemesDir(config.ThemesDir(dir))

		total := len(programErrs) + len(themeErrs)
		for _, err := range programErrs {
			fmt.Fprintf(os.Stderr, "program error: %v\n", err)
		}
		for _, err := range themeErrs {
			fmt.Fprintf(os.Stderr, "theme error: %v\n", err)
		}

		if total == 0 {
			fmt.Println("config valid")
			return nil
		}
		return fmt.Errorf("phos: %d config error(s) found", total)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.DefaultDir()
		if flagConfigPath != "" {
			dir = filepath.Dir(flagConfigPath)
		}

		for _, sub := range []string{"", "programs", "themes"} {
			if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
				return fmt.Errorf("phos: creating %s: %w", sub, err)
			}
		}

		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("%s already exists, leaving it alone\n", path)
			return nil
		}

		defaults := config.GlobalConfig{
			Theme:       "default-dark",
			Stats:       false,
			StatsExport: "human",
		}
		out, err := yaml.Marshal(defaults)
		if err != nil {
			return fmt.Errorf("phos: rendering default config: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("phos: writing %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
