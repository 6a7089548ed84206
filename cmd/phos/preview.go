package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/colorizer"
	"github.com/hydepwns/phos-go/internal/config"
)

// sampleLines are generic log lines covering the common level words
// (error/warn/info/debug/trace) that custom.generic colorizes. `phos
// preview` renders these same lines for every program.
var sampleLines = []string{
	"2026-07-31T10:15:03Z INFO  starting up, version=1.4.2 pid=8823",
	"2026-07-31T10:15:04Z DEBUG config loaded from /etc/app/config.yaml",
	"2026-07-31T10:15:07Z WARN  connection pool at 90% capacity",
	"2026-07-31T10:15:09Z ERROR failed to reach upstream: dial tcp: connection refused",
	"2026-07-31T10:15:10Z TRACE retrying in 500ms (attempt 2/5)",
}

var previewCmd = &cobra.Command{
	Use:   "preview [program]",
	Short: "Render sample lines through a program's rules",
	Long:  "Render a handful of representative log lines through a program's rules and the active theme, to preview what its colorization looks like.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registerConfiguredUserPrograms()

		programID := flagProgram
		if len(args) > 0 {
			programID = args[0]
		}
		p, err := resolveProgram(programID, nil)
		if err != nil {
			return err
		}

		themeName := flagTheme
		if themeName == "" {
			themeName = "default-dark"
		}
		theme, ok := color.Get(config.ThemesDir(configDir()), themeName)
		if !ok {
			theme = color.DefaultTheme()
		}

		cz := colorizer.New(p.Rules(), theme, true)

		fmt.Printf("%s (%s) with theme %q:\n\n", p.Info().Name, p.Info().ID, theme.Name)
		for _, line := range sampleLines {
			out, skipped, _ := cz.Colorize(line)
			if skipped {
				continue
			}
			fmt.Println(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
