package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
	"github.com/vovakirdan/tui-mathquest/internal/player"
	"github.com/vovakirdan/tui-mathquest/internal/storage"
)

var flagAllSaves bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved player",
	Long: `Print the player of a save slot: level, points, missions, power-ups
and badges, plus totals from the quiz log.

Examples:
  mathquest status
  mathquest status --save sister
  mathquest status --all`,
	Run: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&flagAllSaves, "all", false, "List every save slot in the database")
}

func runStatus(_ *cobra.Command, _ []string) {
	store := mustStore()
	defer store.Close()

	if flagAllSaves {
		printSaves(store)
		return
	}

	st, err := store.LoadState(flagSaveKey)
	if errors.Is(err, storage.ErrNoSave) {
		fmt.Printf("No player in save %q yet.\n", flagSaveKey)
		fmt.Println()
		fmt.Println("Run 'mathquest play' to create one!")
		return
	}
	if err != nil {
		store.Close()
		fail("reading save: %v", err)
	}

	p := st.Progression
	fmt.Printf("%s (grade %d)\n", st.Identity.Name, st.Identity.Grade)
	fmt.Println()
	fmt.Printf("  Level         %d\n", p.Level)
	fmt.Printf("  Points        %d\n", p.Score)
	fmt.Printf("  This week     %d (since %s)\n", p.WeeklyScore, p.LastWeeklyReset)
	fmt.Printf("  Perfect run   %d\n", p.PerfectScoreStreak)
	fmt.Printf("  Badges        %d/%d\n", st.Achievements.Len(), len(catalog.Badges))

	fmt.Println()
	fmt.Printf("Power-ups:")
	for _, kind := range player.PowerUps {
		fmt.Printf("  %s %d", kind, st.Inventory[kind])
	}
	fmt.Println()

	fmt.Println()
	fmt.Printf("Missions for %s:\n", st.Missions.Date)
	for _, m := range st.Missions.List {
		mark := " "
		if m.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %-36s %d/%d  +%d\n", mark, m.Description, m.Progress, m.Goal, m.Reward)
	}

	if stats, err := store.QuizStats(flagSaveKey); err == nil && stats.Quizzes > 0 {
		fmt.Println()
		fmt.Printf("Quizzes: %d · Best: %d · Accuracy: %.0f%%\n", stats.Quizzes, stats.BestScore, stats.Accuracy()*100)
	}
}

func printSaves(store *storage.Store) {
	saves, err := store.ListSaves()
	if err != nil {
		store.Close()
		fail("listing saves: %v", err)
	}
	if len(saves) == 0 {
		fmt.Println("No saves yet.")
		return
	}

	fmt.Printf("  %-24s  %s\n", "Save", "Updated")
	fmt.Printf("  %-24s  %s\n", "----", "-------")
	for _, s := range saves {
		fmt.Printf("  %-24s  %s\n", s.Key, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
