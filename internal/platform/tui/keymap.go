package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mathquest/internal/core"
)

// KeyMapper translates Bubble Tea key messages to UI actions.
// Only non-printable keys are mapped so text inputs keep every letter.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit
	case "up":
		return core.ActionUp
	case "down":
		return core.ActionDown
	case "left", "shift+tab":
		return core.ActionLeft
	case "right", "tab":
		return core.ActionRight
	case "enter":
		return core.ActionConfirm
	case "esc":
		return core.ActionBack
	case "ctrl+g":
		return core.ActionHint
	case "ctrl+s":
		return core.ActionSkip
	case "ctrl+t":
		return core.ActionTimeBoost
	case "ctrl+d":
		return core.ActionDismiss
	}
	return core.ActionNone
}

// choiceIndex maps the keys 1-9 to a zero-based option index.
func choiceIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

// HelpKeys are the bindings shown in the help bar.
type HelpKeys struct {
	Move     key.Binding
	Switch   key.Binding
	Select   key.Binding
	Back     key.Binding
	Hint     key.Binding
	Skip     key.Binding
	Time     key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
	playing  bool
	canClose bool
}

// ShortHelp returns key bindings for the short help view.
func (k HelpKeys) ShortHelp() []key.Binding {
	if k.playing {
		return []key.Binding{k.Select, k.Hint, k.Skip, k.Time, k.Back}
	}
	keys := []key.Binding{k.Move, k.Switch, k.Select, k.Back}
	if k.canClose {
		keys = append(keys, k.Dismiss)
	}
	return append(keys, k.Quit)
}

// FullHelp returns key bindings for the full help view.
func (k HelpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Switch, k.Select, k.Back},
		{k.Hint, k.Skip, k.Time},
		{k.Dismiss, k.Quit},
	}
}

// DefaultHelpKeys returns the help bar bindings.
func DefaultHelpKeys() HelpKeys {
	return HelpKeys{
		Move:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		Switch:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "switch")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Hint:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^G", "hint")),
		Skip:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^S", "skip")),
		Time:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^T", "+time")),
		Dismiss: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^D", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^C", "quit")),
	}
}
