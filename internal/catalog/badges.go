package catalog

// Rarity orders badges for display.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
)

// String returns a human-readable name for the rarity.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	default:
		return "unknown"
	}
}

// Badge ids.
const (
	BadgeFirstQuiz        = "first_quiz"
	BadgePerfectScore     = "perfect_score"
	BadgeCreativeSpark    = "creative_spark"
	BadgeFirstPurchase    = "first_purchase"
	BadgeStreak3          = "streak_3"
	BadgeLevel5           = "level_5"
	BadgeScore1000        = "score_1000"
	BadgeQuizMasterAddSub = "quiz_master_add_sub"
	BadgeLevel10          = "level_10"
	BadgeStreak5          = "streak_5"
	BadgeThemeCollector   = "theme_collector"
	BadgeAICollaborator   = "ai_collaborator"
	BadgeMathMaster       = "math_master"
)

// Badge is a static achievement definition.
type Badge struct {
	ID          string
	Name        string
	Description string
	Hint        string
	Icon        string
	Rarity      Rarity
}

// Badges lists every badge. The master badge is last.
var Badges = []Badge{
	{ID: BadgeFirstQuiz, Name: "Happy Start", Description: "Finished the first challenge.", Hint: "Complete any challenge.", Icon: "🔰", Rarity: RarityCommon},
	{ID: BadgePerfectScore, Name: "Brilliant!", Description: "Perfect score in a challenge.", Hint: "Answer every question correctly.", Icon: "🎯", Rarity: RarityCommon},
	{ID: BadgeCreativeSpark, Name: "Creative Spark", Description: "Used creative mode for the first time.", Hint: "Make up a problem of your own.", Icon: "🎨", Rarity: RarityCommon},
	{ID: BadgeFirstPurchase, Name: "Tiny Collector", Description: "Bought the first theme in the store.", Hint: "Spend points on a new theme.", Icon: "🛍", Rarity: RarityCommon},

	{ID: BadgeStreak3, Name: "Triple Streak", Description: "Perfect score three times in a row.", Hint: "Three perfect challenges without a break.", Icon: "🔥", Rarity: RarityUncommon},
	{ID: BadgeLevel5, Name: "Explorer", Description: "Reached level 5.", Hint: "Keep learning and levelling up.", Icon: "🗺", Rarity: RarityUncommon},
	{ID: BadgeScore1000, Name: "First Thousand", Description: "Reached 1000 points.", Hint: "Collect points from challenges and missions.", Icon: "💰", Rarity: RarityUncommon},
	{ID: BadgeQuizMasterAddSub, Name: "Plus-Minus Pro", Description: "Five perfect addition and subtraction challenges.", Hint: "Master the addition and subtraction topic.", Icon: "➕", Rarity: RarityUncommon},

	{ID: BadgeLevel10, Name: "Math Expert", Description: "Reached level 10.", Hint: "Only the most patient learners get here.", Icon: "🧠", Rarity: RarityRare},
	{ID: BadgeStreak5, Name: "Eternal Flame", Description: "Perfect score five times in a row.", Hint: "Stay focused for a long perfect streak.", Icon: "☄", Rarity: RarityRare},
	{ID: BadgeThemeCollector, Name: "Theme Collector", Description: "Unlocked every theme in the store.", Hint: "Save up and buy every theme.", Icon: "🖼", Rarity: RarityRare},
	{ID: BadgeAICollaborator, Name: "AI Creator", Description: "Created ten problems in creative mode.", Hint: "Use creative mode often.", Icon: "🤖", Rarity: RarityRare},

	{ID: BadgeMathMaster, Name: "Math Master", Description: "Collected every other badge.", Hint: "Conquer every other achievement.", Icon: "👑", Rarity: RarityEpic},
}

// FindBadge looks up a badge by id.
func FindBadge(id string) (Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// BadgeIDsExcept returns every badge id other than skip.
func BadgeIDsExcept(skip string) []string {
	ids := make([]string, 0, len(Badges))
	for _, b := range Badges {
		if b.ID != skip {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
