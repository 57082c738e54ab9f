// Package catalog holds the static store, topic and badge definitions.
package catalog

import "github.com/vovakirdan/tui-mathquest/internal/player"

// Kind groups store items.
type Kind int

const (
	KindTheme Kind = iota
	KindPawn
	KindAvatar
	KindPowerUp
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTheme:
		return "theme"
	case KindPawn:
		return "pawn"
	case KindAvatar:
		return "avatar"
	case KindPowerUp:
		return "power-up"
	default:
		return "unknown"
	}
}

// Category maps a cosmetic kind to its unlock category.
// Power-ups have no category and report ok=false.
func (k Kind) Category() (player.Category, bool) {
	switch k {
	case KindTheme:
		return player.CategoryTheme, true
	case KindPawn:
		return player.CategoryPawn, true
	case KindAvatar:
		return player.CategoryAvatar, true
	default:
		return "", false
	}
}

// KindFor maps an unlock category back to its item kind.
func KindFor(c player.Category) Kind {
	switch c {
	case player.CategoryPawn:
		return KindPawn
	case player.CategoryAvatar:
		return KindAvatar
	default:
		return KindTheme
	}
}

// Item is a purchasable entry. Quantity applies to power-ups only.
type Item struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	Icon        string
	Cost        int
	Quantity    int
}

// Themes recolor the whole interface.
var Themes = []Item{
	{ID: player.DefaultTheme, Kind: KindTheme, Name: "Classic", Icon: "🎨", Cost: 0},
	{ID: "ocean", Kind: KindTheme, Name: "Ocean", Icon: "🌊", Cost: 250},
	{ID: "jungle", Kind: KindTheme, Name: "Jungle", Icon: "🌳", Cost: 300},
	{ID: "space", Kind: KindTheme, Name: "Space", Icon: "🚀", Cost: 500},
}

// Pawns are the map markers.
var Pawns = []Item{
	{ID: player.DefaultPawn, Kind: KindPawn, Name: "Explorer Flag", Description: "The standard flag for every explorer.", Icon: "🚩", Cost: 0},
	{ID: "pawn_rocket", Kind: KindPawn, Name: "Speed Rocket", Description: "Shows off a remarkable learning pace.", Icon: "🚀", Cost: 400},
	{ID: "pawn_wizard_hat", Kind: KindPawn, Name: "Wizard Hat", Description: "Every step becomes a little spell.", Icon: "🧙", Cost: 600},
	{ID: "pawn_robot", Kind: KindPawn, Name: "Clever Robot", Description: "A high-tech companion on the map.", Icon: "🤖", Cost: 800},
}

// Avatars decorate the profile.
var Avatars = []Item{
	{ID: player.DefaultAvatar, Kind: KindAvatar, Name: "Rising Star", Description: "The default picture for future champions.", Icon: "🌟", Cost: 0},
	{ID: "avatar_detective", Kind: KindAvatar, Name: "Little Detective", Description: "Always finds the right answer.", Icon: "🕵️", Cost: 500},
	{ID: "avatar_ninja", Kind: KindAvatar, Name: "Number Ninja", Description: "Quick and precise in every sum.", Icon: "🥷", Cost: 500},
	{ID: "avatar_superhero", Kind: KindAvatar, Name: "Superhero", Description: "Super powers for super sums.", Icon: "🦸", Cost: 750},
	{ID: "avatar_wizard", Kind: KindAvatar, Name: "Tiny Wizard", Description: "Turns numbers into magic.", Icon: "🪄", Cost: 750},
}

// PowerUps are consumables bought in packs.
var PowerUps = []Item{
	{ID: string(player.PowerUpTimeBoost), Kind: KindPowerUp, Name: "Time+", Description: "Adds 30 seconds to the quiz clock.", Icon: "⏳", Cost: 50, Quantity: 1},
	{ID: string(player.PowerUpHint), Kind: KindPowerUp, Name: "Hint Pack", Description: "Two hints from the AI tutor.", Icon: "💡", Cost: 100, Quantity: 2},
	{ID: string(player.PowerUpSkip), Kind: KindPowerUp, Name: "Skip", Description: "Skip a question without it counting as wrong.", Icon: "⏩", Cost: 150, Quantity: 1},
}

// Items returns every item of a kind.
func Items(k Kind) []Item {
	switch k {
	case KindTheme:
		return Themes
	case KindPawn:
		return Pawns
	case KindAvatar:
		return Avatars
	case KindPowerUp:
		return PowerUps
	default:
		return nil
	}
}

// Find looks up an item by kind and id.
func Find(k Kind, id string) (Item, bool) {
	for _, it := range Items(k) {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// IDs returns the ids of every item of a kind.
func IDs(k Kind) []string {
	items := Items(k)
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
