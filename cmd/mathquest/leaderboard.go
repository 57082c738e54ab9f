package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show this week's standings",
	Long: `Rank the player's weekly points against this week's rivals.

Opening the save rolls over a finished week first, exactly as the game does.

Examples:
  mathquest leaderboard
  mathquest leaderboard --save sister`,
	Run: runLeaderboard,
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	store := mustStore()
	defer store.Close()
	services := mustServices(store, log.New(io.Discard))

	keeper := services.Keeper(flagSaveKey)
	if !keeper.Open() {
		fmt.Printf("No player in save %q yet.\n", flagSaveKey)
		return
	}
	st := keeper.State()

	fmt.Printf("Weekly leaderboard - week of %s\n", st.Progression.LastWeeklyReset)
	fmt.Println()
	fmt.Printf("  %-4s  %-20s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-20s  %s\n", "----", "----", "-----")
	for _, e := range services.Board.WeeklyStandings(keeper.Key(), st) {
		name := e.Name
		if e.IsPlayer {
			name += " (you)"
		}
		fmt.Printf("  %-4d  %-20s  %d\n", e.Rank, name, e.Score)
	}
}
