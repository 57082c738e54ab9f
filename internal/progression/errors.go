package progression

import "errors"

// Rejections of domain operations. The state is never changed when one is returned.
var (
	ErrInsufficientScore = errors.New("progression: not enough points")
	ErrAlreadyOwned      = errors.New("progression: item already owned")
	ErrUnknownItem       = errors.New("progression: unknown item")
	ErrNotUnlocked       = errors.New("progression: item not unlocked")
	ErrNoPowerUp         = errors.New("progression: power-up not in inventory")
	ErrInvalidGrade      = errors.New("progression: grade out of range")
	ErrEmptyName         = errors.New("progression: name is required")
	ErrNoPlayer          = errors.New("progression: no player loaded")
	ErrPlayerExists      = errors.New("progression: save already has a player")
	ErrResetNotConfirmed = errors.New("progression: reset not confirmed")
)

// Message returns the text shown to the player for a rejected operation.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientScore):
		return "Not enough points yet. Finish a few more challenges!"
	case errors.Is(err, ErrAlreadyOwned):
		return "You already own this item."
	case errors.Is(err, ErrUnknownItem):
		return "That item is not in the store."
	case errors.Is(err, ErrNotUnlocked):
		return "Unlock this item in the store first."
	case errors.Is(err, ErrNoPowerUp):
		return "You have none left. Buy more in the store."
	case errors.Is(err, ErrInvalidGrade):
		return "Pick a grade from 1 to 5."
	case errors.Is(err, ErrEmptyName):
		return "Please type your name."
	case errors.Is(err, ErrNoPlayer):
		return "Create a player first."
	case errors.Is(err, ErrPlayerExists):
		return "This save already has a player. Reconnect to continue."
	case errors.Is(err, ErrResetNotConfirmed):
		return "Confirm the reset to erase all progress."
	default:
		return "Something went wrong. Please try again."
	}
}
