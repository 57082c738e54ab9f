package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mathquest/internal/platform/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Math Quest in this terminal.

Controls:
  ↑/↓, ←/→   - Move, switch tabs and map levels
  1-9        - Pick an answer option
  Enter      - Select, submit an answer, next question
  Esc        - Back to the map (a running quiz is abandoned)
  Ctrl+G     - Hint power-up
  Ctrl+S     - Skip power-up
  Ctrl+T     - Time+ power-up
  Ctrl+D     - Dismiss a notice
  Ctrl+C     - Quit

Logs are written to a file so they do not disturb the screen.

Examples:
  mathquest play
  mathquest play --save sister
  mathquest play --config ./my-rules.yaml --log-level debug`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.mathquest/mathquest.log", "Path to the log file")
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}

func runPlay(_ *cobra.Command, _ []string) {
	logOut := openLogFile(flagLogFile)
	defer logOut.Close()
	logger := newLogger(logOut, "mathquest")

	store := mustStore()
	defer store.Close()
	services := mustServices(store, logger)

	// Get terminal size for the first frame
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := services.Session(flagSaveKey)
	err := tui.Run(ctx, orch, tui.Options{Width: width, Height: height, Bell: os.Stdout})
	if err != nil {
		logger.Error("session ended with error", "error", err)
		store.Close()
		fail("running game: %v", err)
	}
}

// openLogFile opens path for appending, falling back to discarding logs.
func openLogFile(path string) *os.File {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		devNull, nullErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if nullErr != nil {
			return os.Stderr
		}
		return devNull
	}
	return f
}
