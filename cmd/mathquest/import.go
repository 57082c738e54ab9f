package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathquest/internal/storage"
)

var flagForce bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a save document",
	Long: `Load a save document from a JSON file into a save slot.

Both the current document format and the older flat progress format are
accepted; older documents are migrated on the way in.

An existing save is never overwritten unless --force is given.

Examples:
  mathquest import ./progress.json
  mathquest import ./backup.json --save sister --force`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing save")
}

func runImport(_ *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fail("reading %s: %v", args[0], err)
	}
	st, err := storage.Decode(data)
	if err != nil {
		fail("decoding %s: %v", args[0], err)
	}
	if st.Identity.Name == "" {
		fail("%s has no player name", args[0])
	}

	store := mustStore()
	defer store.Close()

	if _, err := store.LoadRaw(flagSaveKey); err == nil && !flagForce {
		store.Close()
		fail("save %q already exists (use --force to overwrite)", flagSaveKey)
	} else if err != nil && !errors.Is(err, storage.ErrNoSave) {
		store.Close()
		fail("reading save: %v", err)
	}

	keeper := mustServices(store, log.New(io.Discard)).Keeper(flagSaveKey)
	keeper.Replace(st)
	if keeper.SaveFailed() {
		store.Close()
		fail("could not write save %q", flagSaveKey)
	}

	imported := keeper.State()
	fmt.Printf("Imported %s (level %d, %d points) into save %q.\n",
		imported.Identity.Name, imported.Progression.Level, imported.Progression.Score, flagSaveKey)
}
