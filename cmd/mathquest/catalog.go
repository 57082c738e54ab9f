package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathquest/internal/catalog"
)

var flagGrade int

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List store items, topics and badges",
	Long: `Shows everything the game offers: store items with their prices,
quiz topics for a grade and the badges that can be earned.

Examples:
  mathquest catalog
  mathquest catalog --grade 1`,
	Run: runCatalog,
}

func init() {
	catalogCmd.Flags().IntVar(&flagGrade, "grade", 2, "Grade to list topics for")
}

func runCatalog(_ *cobra.Command, _ []string) {
	fmt.Println("Store:")
	for _, k := range []catalog.Kind{catalog.KindTheme, catalog.KindPawn, catalog.KindAvatar, catalog.KindPowerUp} {
		fmt.Println()
		fmt.Printf("  %s\n", k)
		for _, item := range catalog.Items(k) {
			name := item.Name
			if item.Quantity > 1 {
				name = fmt.Sprintf("%s x%d", name, item.Quantity)
			}
			fmt.Printf("    %-20s  %-26s  %5d\n", item.ID, name, item.Cost)
		}
	}

	fmt.Println()
	fmt.Printf("Topics for grade %d:\n", flagGrade)
	for _, t := range catalog.TopicsForGrade(flagGrade) {
		fmt.Printf("  %-28s  %s\n", t.ID, t.Name)
	}

	fmt.Println()
	fmt.Println("Badges:")
	for _, b := range catalog.Badges {
		fmt.Printf("  %-20s  %-18s  %-9s  %s\n", b.ID, b.Name, b.Rarity, b.Hint)
	}
}
