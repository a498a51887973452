package onboarding

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

// SignInStatus is a read-only step that reports the shared sign-in state once
// an earlier step has finished.
type SignInStatus struct {
	shared *SharedState
	after  StepStateProvider
	theme  Theme
}

// NewSignInStatus returns a status line that stays hidden until after completes.
func NewSignInStatus(shared *SharedState, after StepStateProvider, theme Theme) *SignInStatus {
	return &SignInStatus{shared: shared, after: after, theme: theme}
}

// HandleKey ignores input.
func (s *SignInStatus) HandleKey(tea.KeyMsg) {}

func (s *SignInStatus) StepState() StepState {
	if s.after.StepState() != StepComplete {
		return StepHidden
	}
	return StepComplete
}

// Message describes the current shared state in one line.
func (s *SignInStatus) Message() string {
	switch s.shared.SignIn.Load() {
	case SignInChatGPTSuccess:
		return "Signed in with your ChatGPT account"
	case SignInAPIKeyConfigured:
		return "API key configured"
	}
	if s.shared.ShowLoginForm.Load() {
		return "Continue to sign in with a new account"
	}
	return "Choose how to sign in"
}

func (s *SignInStatus) Render(width, height int) string {
	if width <= 0 || height <= 0 || s.StepState() == StepHidden {
		return ""
	}
	style := s.theme.Plain
	if s.shared.SignIn.Load() != SignInPickMode {
		style = s.theme.Success
	}
	return style.Render(truncate.StringWithTail(s.Message(), uint(width), "…"))
}

func (s *SignInStatus) DesiredHeight(int) int { return 1 }
