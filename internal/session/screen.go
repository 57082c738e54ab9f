// Package session drives the screen state machine of one player: which
// screen is active, how a finished quiz routes through level-up events, and
// the asynchronous work screens hand off to the question service.
package session

// Screen is one state of the session. The set is closed; use Dispatch to
// branch on it exhaustively.
type Screen interface {
	Name() string
	screen()
}

type (
	// Landing greets a player without a save.
	Landing struct{}
	// Setup collects the name and grade of a new player.
	Setup struct{}
	// MainHub shows the adventure map and daily missions.
	MainHub struct{}
	// TopicSelect picks the quiz topic.
	TopicSelect struct{}
	// Playing runs a quiz round.
	Playing struct{}
	// Store sells cosmetics and power-ups.
	Store struct{}
	// CreativeMode turns a free text idea into one question.
	CreativeMode struct{}
	// Profile shows badges and cosmetics and edits the grade.
	Profile struct{}
	// ParentDashboard shows missed questions, quiz history and analysis.
	ParentDashboard struct{}
	// Leaderboard shows the weekly standings.
	Leaderboard struct{}
	// LightningRound is the timed challenge unlocked at Level.
	LightningRound struct{ Level int }
	// RiddleChallenge is the riddle unlocked at Level.
	RiddleChallenge struct{ Level int }
	// Review summarizes the finished quiz and any event bonus.
	Review struct{}
)

func (Landing) Name() string         { return "landing" }
func (Setup) Name() string           { return "setup" }
func (MainHub) Name() string         { return "hub" }
func (TopicSelect) Name() string     { return "topics" }
func (Playing) Name() string         { return "playing" }
func (Store) Name() string           { return "store" }
func (CreativeMode) Name() string    { return "creative" }
func (Profile) Name() string         { return "profile" }
func (ParentDashboard) Name() string { return "parent" }
func (Leaderboard) Name() string     { return "leaderboard" }
func (LightningRound) Name() string  { return "lightning" }
func (RiddleChallenge) Name() string { return "riddle" }
func (Review) Name() string          { return "review" }

func (Landing) screen()         {}
func (Setup) screen()           {}
func (MainHub) screen()         {}
func (TopicSelect) screen()     {}
func (Playing) screen()         {}
func (Store) screen()           {}
func (CreativeMode) screen()    {}
func (Profile) screen()         {}
func (ParentDashboard) screen() {}
func (Leaderboard) screen()     {}
func (LightningRound) screen()  {}
func (RiddleChallenge) screen() {}
func (Review) screen()          {}

// Visitor has one method per screen. Adding a screen breaks every visitor
// at compile time.
type Visitor[T any] interface {
	Landing(Landing) T
	Setup(Setup) T
	MainHub(MainHub) T
	TopicSelect(TopicSelect) T
	Playing(Playing) T
	Store(Store) T
	CreativeMode(CreativeMode) T
	Profile(Profile) T
	ParentDashboard(ParentDashboard) T
	Leaderboard(Leaderboard) T
	LightningRound(LightningRound) T
	RiddleChallenge(RiddleChallenge) T
	Review(Review) T
}

// Dispatch calls the visitor method matching s. A nil screen is treated as Landing.
func Dispatch[T any](s Screen, v Visitor[T]) T {
	switch s := s.(type) {
	case Setup:
		return v.Setup(s)
	case MainHub:
		return v.MainHub(s)
	case TopicSelect:
		return v.TopicSelect(s)
	case Playing:
		return v.Playing(s)
	case Store:
		return v.Store(s)
	case CreativeMode:
		return v.CreativeMode(s)
	case Profile:
		return v.Profile(s)
	case ParentDashboard:
		return v.ParentDashboard(s)
	case Leaderboard:
		return v.Leaderboard(s)
	case LightningRound:
		return v.LightningRound(s)
	case RiddleChallenge:
		return v.RiddleChallenge(s)
	case Review:
		return v.Review(s)
	case Landing:
		return v.Landing(s)
	default:
		return v.Landing(Landing{})
	}
}

// HubDestinations are the screens reachable directly from the hub.
var HubDestinations = []Screen{TopicSelect{}, Store{}, CreativeMode{}, Profile{}, ParentDashboard{}, Leaderboard{}}

// sameScreen compares screens by value. All screens are comparable structs.
func sameScreen(a, b Screen) bool {
	return a == b
}
