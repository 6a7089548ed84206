package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var completionsCmd = &cobra.Command{
	Use:       "completions <shell>",
	Short:     "Generate a shell completion script",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("phos: unsupported shell %q", args[0])
		}
	},
}

// shellInitScripts holds the wrapper function phos prints for `shell-init`:
// a thin alias layer so `tail -f x.log | phos` users can instead write
// short per-client aliases. Set PHOS_NO_ALIASES=1 to get the function
// without the aliases.
var shellInitScripts = map[string]string{
	"bash": `phos-init() {
  :
}
phos-init
`,
	"zsh": `phos-init() {
  :
}
phos-init
`,
}

var manCmd = &cobra.Command{
	Use:   "man [dir]",
	Short: "Generate man pages",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./man"
		if len(args) > 0 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("phos: creating %s: %w", dir, err)
		}
		header := &doc.GenManHeader{
			Title:   "PHOS",
			Section: "1",
			Source:  "phos",
		}
		return doc.GenManTree(rootCmd, header, dir)
	},
}

var shellInitCmd = &cobra.Command{
	Use:   "shell-init <shell>",
	Short: "Print a shell function for wrapping phos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, ok := shellInitScripts[args[0]]
		if !ok {
			return fmt.Errorf("phos: no shell-init script for %q (try bash or zsh)", args[0])
		}
		noAliases := os.Getenv("PHOS_NO_ALIASES") != ""
		fmt.Print(script)
		if !noAliases {
			for _, id := range registry.List() {
				fmt.Printf("alias phos-%s='phos -p %s'\n", shortAlias(id.ID), id.ID)
			}
		}
		return nil
	},
}

func shortAlias(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '.' {
			return id[i+1:]
		}
	}
	return id
}

func init() {
	rootCmd.AddCommand(completionsCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(shellInitCmd)
}
