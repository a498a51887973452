package onboarding

import tea "github.com/charmbracelet/bubbletea"

// StepState reports where an onboarding step is in its lifecycle.
type StepState int

const (
	StepHidden StepState = iota
	StepInProgress
	StepComplete
)

func (s StepState) String() string {
	switch s {
	case StepHidden:
		return "hidden"
	case StepInProgress:
		return "in-progress"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// KeyboardHandler consumes key presses routed to a step.
type KeyboardHandler interface {
	HandleKey(msg tea.KeyMsg)
}

// StepStateProvider reports a step's completion.
type StepStateProvider interface {
	StepState() StepState
}

// Step is one panel of the onboarding screen.
// Render returns "" when the area has no room to draw in.
type Step interface {
	KeyboardHandler
	StepStateProvider
	Render(width, height int) string
}

// heightHinter is implemented by steps that need less than the full area.
type heightHinter interface {
	DesiredHeight(width int) int
}
