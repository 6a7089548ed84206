package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hydepwns/phos-go/internal/alert"
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/colorizer"
	"github.com/hydepwns/phos-go/internal/config"
	"github.com/hydepwns/phos-go/internal/driver"
	"github.com/hydepwns/phos-go/internal/logging"
	"github.com/hydepwns/phos-go/internal/program"
	"github.com/hydepwns/phos-go/internal/stats"
)

var (
	flagProgram             string
	flagConfigPath          string
	flagTheme               string
	flagColorMode           string
	flagStats               bool
	flagStatsExport         string
	flagStatsInterval       time.Duration
	flagAlertWebhook        string
	flagAlertTelegramChatID string
	flagAlertConditions     []string

	registry = program.DefaultRegistry()
)

var rootCmd = &cobra.Command{
	Use:   "phos [flags] [-- command [args...]]",
	Short: "A universal log colorizer and aggregator",
	Long: `phos reads line-oriented text from stdin or a spawned subprocess,
recognizes domain-specific patterns (Ethereum clients, orchestrators,
databases, HTTP servers, and more), decorates matched spans with terminal
styling, and optionally emits statistics and webhook alerts as the
stream flows.

Run with no trailing command to colorize stdin:
  tail -f app.log | phos -p docker

Or spawn and colorize a subprocess directly:
  phos -p lodestar -- lodestar beacon --network mainnet`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagProgram, "program", "p", "", "program to colorize for (auto-detected if omitted)")
	rootCmd.Flags().StringVarP(&flagProgram, "client", "c", "", "alias for --program")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a global config file (default ~/.config/phos/config.yaml)")
	rootCmd.Flags().StringVarP(&flagTheme, "theme", "t", "default-dark", "color theme name")
	rootCmd.Flags().StringVar(&flagColorMode, "color", "auto", "color output mode: auto, always, never")
	rootCmd.Flags().BoolVar(&flagStats, "stats", false, "collect and print statistics")
	rootCmd.Flags().StringVar(&flagStatsExport, "stats-export", "human", "statistics export format: human, json, prometheus")
	rootCmd.Flags().DurationVar(&flagStatsInterval, "stats-interval", 0, "periodic stats print interval (0 = end-only)")
	rootCmd.Flags().StringVar(&flagAlertWebhook, "alert-webhook", "", "Discord/Telegram/generic webhook URL for alerts")
	rootCmd.Flags().StringVar(&flagAlertTelegramChatID, "alert-telegram-chat-id", "", "Telegram chat ID (required for Telegram webhooks)")
	rootCmd.Flags().StringArrayVar(&flagAlertConditions, "alert-condition", nil, "alert condition (repeatable): error, error-threshold:N, peer-drop:N, sync-stall, pattern:<regex>")
}

// resolveString applies the documented "CLI flag > env var > global
// config > built-in default" precedence used throughout phos's run mode.
func resolveString(flagVal string, flagChanged bool, envVar, configVal, def string) string {
	if flagChanged && flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if configVal != "" {
		return configVal
	}
	if flagVal != "" {
		return flagVal
	}
	return def
}

// configDir returns the directory a --config path lives in, or "" to let
// config.ProgramsDir/ThemesDir fall back to the default config directory.
func configDir() string {
	if flagConfigPath != "" {
		return filepath.Dir(flagConfigPath)
	}
	return ""
}

// registerConfiguredUserPrograms loads user-defined program files into the
// shared registry, warning (not failing) on bad files. Every subcommand
// that looks programs up by name calls this first, so `phos info foo` sees
// the same registry `phos -p foo` would.
func registerConfiguredUserPrograms() {
	program.RegisterUserPrograms(registry, config.ProgramsDir(configDir()))
}

func runRoot(cmd *cobra.Command, args []string) error {
	gcfg, err := config.LoadGlobal(flagConfigPath)
	if err != nil {
		return fmt.Errorf("phos: loading config: %w", err)
	}

	registerConfiguredUserPrograms()

	themeName := resolveString(flagTheme, cmd.Flags().Changed("theme"), "PHOS_THEME", gcfg.Theme, "default-dark")
	theme, ok := color.Get(config.ThemesDir(configDir()), themeName)
	if !ok {
		logging.Warn().Str("theme", themeName).Msg("phos: unknown theme, falling back to default-dark")
		theme = color.DefaultTheme()
	}

	programID := resolveString(flagProgram, cmd.Flags().Changed("program") || cmd.Flags().Changed("client"), "PHOS_PROGRAM", "", "")

	dashIdx := cmd.ArgsLenAtDash()
	var commandArgs []string
	if dashIdx >= 0 {
		commandArgs = args[dashIdx:]
	}

	p, err := resolveProgram(programID, commandArgs)
	if err != nil {
		return err
	}

	colorEnabled := resolveColorEnabled(flagColorMode, gcfg)
	cz := colorizer.New(p.Rules(), theme, colorEnabled)

	statsEnabled := flagStats || gcfg.Stats
	var collector *stats.Collector
	if statsEnabled {
		collector = stats.NewCollector()
	}

	statsExport := flagStatsExport
	if statsExport == "" || statsExport == "human" {
		if gcfg.StatsExport != "" {
			statsExport = gcfg.StatsExport
		}
	}
	statsInterval := flagStatsInterval
	if statsInterval == 0 && gcfg.StatsIntervalSeconds > 0 {
		statsInterval = time.Duration(gcfg.StatsIntervalSeconds) * time.Second
	}

	alertMgr, err := buildAlertManager(cmd, gcfg, p.Info().ID)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Colorizer:            cz,
		Stats:                collector,
		Alerts:               alertMgr,
		StatsInterval:        statsInterval,
		SuppressFinalSummary: statsEnabled && statsExport != "human",
	}

	var runErr error
	if len(commandArgs) > 0 {
		// Each reader thread (stdout, stderr) owns an independent
		// Colorizer/Stats/Alerts instance — block-mode state, counters,
		// and rate-limiter state are never shared across streams — and
		// the two collectors are merged once the process exits.
		stdoutOpts := opts
		stdoutOpts.Colorizer = colorizer.New(p.Rules(), theme, colorEnabled)
		stderrOpts := opts
		stderrOpts.Colorizer = colorizer.New(p.Rules(), theme, colorEnabled)

		var stderrCollector *stats.Collector
		if statsEnabled {
			stdoutOpts.Stats = collector
			stderrCollector = stats.NewCollector()
			stderrOpts.Stats = stderrCollector
		}
		if alertMgr != nil {
			stdoutOpts.Alerts = alertMgr
			stderrOpts.Alerts, err = buildAlertManager(cmd, gcfg, p.Info().ID)
			if err != nil {
				return err
			}
		}

		runErr = driver.ProcessCommand(cmd.Context(), commandArgs[0], commandArgs[1:], stdoutOpts, stderrOpts)

		if stderrCollector != nil {
			collector = driver.MergedStats(collector, stderrCollector)
		}
	} else {
		runErr = driver.ProcessStdin(cmd.Context(), os.Stdin, opts)
	}

	if statsEnabled && statsExport != "human" {
		printStatsExport(collector, p.Info().ID, statsExport)
	}

	return runErr
}

func resolveProgram(programID string, commandArgs []string) (program.Program, error) {
	if programID != "" {
		p, ok := registry.Get(programID)
		if !ok {
			return nil, fmt.Errorf("phos: unknown program %q", programID)
		}
		return p, nil
	}

	detectSource := strings.Join(commandArgs, " ")
	if detectSource == "" {
		detectSource = strings.Join(os.Args, " ")
	}
	if p, ok := registry.Detect(detectSource); ok {
		return p, nil
	}
	p, _ := registry.Get("custom.generic")
	return p, nil
}

func resolveColorEnabled(mode string, gcfg config.GlobalConfig) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if gcfg.Color != nil {
			return *gcfg.Color
		}
		fi, err := os.Stdout.Stat()
		if err != nil {
			return false
		}
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
}

func buildAlertManager(cmd *cobra.Command, gcfg config.GlobalConfig, programID string) (*alert.Manager, error) {
	var configuredURL, configuredChatID string
	var configuredConditions []string
	if gcfg.Alerts != nil {
		configuredURL = gcfg.Alerts.URL
		configuredChatID = gcfg.Alerts.TelegramChatID
		configuredConditions = gcfg.Alerts.Conditions
	}

	url := resolveString(flagAlertWebhook, cmd.Flags().Changed("alert-webhook"), "PHOS_ALERT_WEBHOOK", configuredURL, "")
	if url == "" {
		return nil, nil
	}

	conditionStrs := flagAlertConditions
	if len(conditionStrs) == 0 {
		if env := os.Getenv("PHOS_ALERT_CONDITIONS"); env != "" {
			conditionStrs = strings.Split(env, ",")
		} else if len(configuredConditions) > 0 {
			conditionStrs = configuredConditions
		}
	}

	var conditions []alert.Condition
	if len(conditionStrs) > 0 {
		parsed, err := alert.ParseConditions(strings.Join(conditionStrs, ","))
		if err != nil {
			return nil, fmt.Errorf("phos: %w", err)
		}
		conditions = parsed
	}

	chatID := flagAlertTelegramChatID
	if chatID == "" {
		chatID = configuredChatID
	}

	b := alert.NewBuilder(url).
		WithTelegramChatID(chatID).
		WithConditions(conditions).
		WithProgram(programID)

	if gcfg.Alerts != nil && gcfg.Alerts.CooldownSeconds > 0 {
		cooldown := time.Duration(gcfg.Alerts.CooldownSeconds) * time.Second
		b = b.WithCooldown(cooldown, cooldown)
	}

	return b.Build(), nil
}

func printStatsExport(c *stats.Collector, programID, format string) {
	if c == nil {
		return
	}
	switch format {
	case "json":
		out, err := c.JSON(programID)
		if err != nil {
			logging.Error().Err(err).Msg("phos: failed to render stats as JSON")
			return
		}
		fmt.Fprintln(os.Stderr, string(out))
	case "prometheus":
		fmt.Fprint(os.Stderr, c.Prometheus(programID))
	default:
		fmt.Fprint(os.Stderr, c.Summary())
	}
}
