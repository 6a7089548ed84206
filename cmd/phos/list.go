package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/program"
)

var flagListCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known programs",
	Long:  "List every built-in and user-defined program, optionally filtered by category.",
	RunE: func(cmd *cobra.Command, args []string) error {
		registerConfiguredUserPrograms()

		var infos []program.Info
		if flagListCategory != "" {
			cat, err := program.ParseCategory(flagListCategory)
			if err != nil {
				return err
			}
			infos = registry.ListByCategory(cat)
		} else {
			infos = registry.List()
		}

		for _, cat := range registry.Categories() {
			if flagListCategory != "" {
				parsed, _ := program.ParseCategory(flagListCategory)
				if cat != parsed {
					continue
				}
			}
			printed := false
			for _, info := range infos {
				if info.Category != cat {
					continue
				}
				if !printed {
					fmt.Printf("%s (%s)\n", cat.DisplayName(), cat.Description())
					printed = true
				}
				fmt.Printf("  %-24s %s\n", info.ID, info.Description)
			}
		}
		return nil
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List built-in themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := color.ListBuiltin()
		sort.Strings(names)
		for _, name := range names {
			t, _ := color.Builtin(name)
			fmt.Printf("  %-16s %s\n", t.Name, t.Description)
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show detail for one program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registerConfiguredUserPrograms()

		p, ok := registry.Get(args[0])
		if !ok {
			return fmt.Errorf("phos: unknown program %q", args[0])
		}
		info := p.Info()
		fmt.Printf("%s\n", info.Name)
		fmt.Printf("  id:          %s\n", info.ID)
		fmt.Printf("  category:    %s\n", info.Category.DisplayName())
		fmt.Printf("  description: %s\n", info.Description)
		fmt.Printf("  rules:       %d\n", len(p.Rules()))
		if patterns := p.DetectPatterns(); len(patterns) > 0 {
			fmt.Printf("  detects:     %v\n", patterns)
		}
		if domain := p.DomainColors(); len(domain) > 0 {
			fmt.Println("  domain colors:")
			names := make([]string, 0, len(domain))
			for name := range domain {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("    %-12s %s\n", name, domain[name])
			}
		}
		return nil
	},
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List semantic color names recognized by rule configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range color.All {
			fmt.Printf("  %s\n", s)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagListCategory, "category", "", "filter by category")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(colorsCmd)
}
