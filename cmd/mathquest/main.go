// mathquest is a gamified math practice client for the terminal.
//
// Usage:
//
//	mathquest                    - Play (same as mathquest play)
//	mathquest play               - Play in this terminal
//	mathquest serve              - Start SSH server for remote play
//	mathquest status             - Show the saved player
//	mathquest leaderboard        - Show this week's standings
//	mathquest catalog            - List store items, topics and badges
//	mathquest import <file>      - Import a save document
//	mathquest reset --yes        - Erase all progress
//
// Global flags:
//
//	--db <path>        - Set database path (default: ~/.mathquest/mathquest.db)
//	--save <key>       - Save slot (default: progress)
//	--config <path>    - Custom rules YAML
//	--seed <value>     - Set RNG seed for reproducible rewards
//	--log-level <lvl>  - debug, info, warn or error
//
// The AI question provider is configured through MATHQUEST_API_KEY,
// MATHQUEST_MODEL, MATHQUEST_BASE_URL and MATHQUEST_TIMEOUT.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathquest/internal/config"
	"github.com/vovakirdan/tui-mathquest/internal/core"
	"github.com/vovakirdan/tui-mathquest/internal/platform/tui"
	"github.com/vovakirdan/tui-mathquest/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagSaveKey  string
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mathquest",
	Short: "Math Quest - math adventures in your terminal",
	Long: `Math Quest turns math practice into an adventure: answer challenges,
climb the level map, unlock lightning rounds and riddles, collect badges and
spend points in the store.

Available commands:
  play         - Play in this terminal (default)
  serve        - Start SSH server for remote play
  status       - Show the saved player
  leaderboard  - Show this week's standings
  catalog      - List store items, topics and badges
  import       - Import a save document
  reset        - Erase all progress

Examples:
  mathquest
  MATHQUEST_API_KEY=sk-... mathquest play
  mathquest serve --ssh :2222
  mathquest status`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mathquest/mathquest.db", "Path to the save database")
	rootCmd.PersistentFlags().StringVar(&flagSaveKey, "save", storage.DefaultSaveKey, "Save slot key")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates a logger on w honoring --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// mustRules loads the game rules or exits.
func mustRules() config.Rules {
	rules, err := config.LoadRules(flagConfig)
	if err != nil {
		fail("loading rules: %v", err)
	}
	return rules
}

// mustStore opens the save database or exits.
func mustStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening save database: %v", err)
	}
	return store
}

// mustServices wires the engines around store or exits.
func mustServices(store *storage.Store, logger *log.Logger) *tui.Services {
	provider, err := config.LoadProvider()
	if err != nil {
		fail("reading provider settings: %v", err)
	}
	rt := core.DefaultConfig()
	rt.Seed = flagSeed
	return tui.NewServices(store, mustRules(), provider, rt, logger)
}
