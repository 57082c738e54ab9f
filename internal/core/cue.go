package core

// Cue is an audio/speech hint attached to an engine outcome.
// The engine never plays sound itself; front ends map cues to whatever they can emit.
type Cue int

const (
	CueNone Cue = iota
	CueCorrect
	CueIncorrect
	CueAchievement
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueCorrect:
		return "Correct"
	case CueIncorrect:
		return "Incorrect"
	case CueAchievement:
		return "Achievement"
	default:
		return "None"
	}
}
