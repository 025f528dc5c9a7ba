// robbo is a tile-grid puzzle game for the terminal.
//
// Usage:
//
//	robbo play               - Play the built-in level set or one given with --levelset
//	robbo bench              - Run the simulation unthrottled and report frames per second
//	robbo levels             - List, check or export a level set
//	robbo scores             - Browse high scores, level stats and benchmark history
//	robbo serve              - Start SSH server for remote play
//	robbo config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Game config YAML (default: search ~/.robbo/configs, ./configs)
//	--difficulty <name>   - easy, normal, hard or fixed
//	--db <path>           - Set database path (default: ~/.robbo/robbo.db)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-robbo/internal/config"
	"github.com/vovakirdan/tui-robbo/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "robbo",
	Short: "Robbo - collect the screws and escape in the capsule",
	Long: `Robbo is a tile-grid puzzle game played in the terminal.

Collect every screw on the level to activate the capsule, then step into it.
Bears, birds and turrets are in the way; bombs clear rubble and enemies alike.

Available commands:
  play     - Play a level set
  bench    - Benchmark the simulation
  levels   - List, check or export a level set
  scores   - View high scores and level statistics
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  robbo play
  robbo play --level 5 --difficulty hard
  robbo play --levelset ./my.txt --pick
  robbo bench --frames 10000 --render
  robbo serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies the difficulty preset.
func loadConfig() (config.RobboConfig, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, "", err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	return cfg, source, nil
}

func mustLoadConfig() (config.RobboConfig, string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg, source
}

// newLogger builds a component logger honouring --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// openLogFile opens ~/.robbo/robbo.log for appending. The caller closes it.
func openLogFile() (*os.File, error) {
	path := config.UserPath("robbo.log")
	if path == "" {
		return nil, fmt.Errorf("cannot locate home directory")
	}
	if err := os.MkdirAll(config.UserPath(), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
