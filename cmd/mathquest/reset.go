package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathquest/internal/progression"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress",
	Long: `Erase the player of a save slot together with its quiz log.

This cannot be undone, so it needs --yes.

Examples:
  mathquest reset --yes
  mathquest reset --save sister --yes`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm erasing the save")
}

func runReset(_ *cobra.Command, _ []string) {
	store := mustStore()
	defer store.Close()
	logger := newLogger(io.Discard, "mathquest")

	keeper := mustServices(store, logger).Keeper(flagSaveKey)
	err := keeper.Reset(flagYes)
	if errors.Is(err, progression.ErrResetNotConfirmed) {
		fmt.Printf("This erases save %q for good. Run again with --yes to confirm.\n", flagSaveKey)
		return
	}
	if err != nil {
		store.Close()
		fail("resetting save: %v", err)
	}
	fmt.Printf("Save %q erased.\n", flagSaveKey)
}
