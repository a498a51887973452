package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"account-picker/pkg/accounts"
	"account-picker/pkg/logging"
)

// Screen stacks onboarding steps vertically and routes keys to the first step
// still in progress. It quits once no step is in progress.
type Screen struct {
	steps  []Step
	frames *FrameSignal
	keys   KeyMap
	theme  Theme
	help   help.Model

	width  int
	height int
	ready  bool

	done    bool
	aborted bool
}

// NewScreen builds the onboarding model.
func NewScreen(frames *FrameSignal, keys KeyMap, theme Theme, steps ...Step) Screen {
	h := help.New()
	h.Styles.ShortKey = theme.Help
	h.Styles.ShortDesc = theme.Detail
	h.Styles.ShortSeparator = theme.Detail
	return Screen{
		steps:  steps,
		frames: frames,
		keys:   keys,
		theme:  theme,
		help:   h,
	}
}

func (s Screen) Init() tea.Cmd {
	return s.frames.Wait()
}

func (s Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width
		s.ready = true
		return s, nil

	case FrameMsg:
		return s, s.frames.Wait()

	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Quit) {
			s.aborted = true
			return s, tea.Quit
		}
		if step := s.active(); step != nil {
			step.HandleKey(msg)
		}
		if s.active() == nil {
			s.done = true
			return s, tea.Quit
		}
		return s, nil
	}
	return s, nil
}

func (s Screen) View() string {
	if s.aborted {
		return ""
	}
	if !s.ready {
		return "account-picker: loading...\n"
	}

	footer := ""
	if !s.done {
		footer = s.help.View(s.keys)
	}
	avail := s.height
	if footer != "" {
		avail -= lipgloss.Height(footer)
	}

	var parts []string
	for _, st := range s.steps {
		if st.StepState() == StepHidden {
			continue
		}
		h := avail
		if hh, ok := st.(heightHinter); ok {
			h = min(h, hh.DesiredHeight(s.width))
		}
		if h <= 0 {
			break
		}
		out := st.Render(s.width, h)
		if out == "" {
			continue
		}
		parts = append(parts, out)
		avail -= lipgloss.Height(out)
	}
	if footer != "" {
		parts = append(parts, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Aborted reports whether the user quit before finishing.
func (s Screen) Aborted() bool { return s.aborted }

// Done reports whether every step finished.
func (s Screen) Done() bool { return s.done }

func (s Screen) active() Step {
	for _, st := range s.steps {
		if st.StepState() == StepInProgress {
			return st
		}
	}
	return nil
}

// RunOptions configures RunTUI. Directory is required.
type RunOptions struct {
	Directory accounts.Directory
	Shared    *SharedState
	Keys      *KeyMap
	Theme     *Theme
	Logger    *log.Logger
	AltScreen bool

	// Input and Output default to the process terminal.
	Input  io.Reader
	Output io.Writer
}

// Result is the state left behind when the picker exits.
type Result struct {
	Selection     Selection
	Selected      bool
	SignIn        SignInState
	ShowLoginForm bool
	Aborted       bool
}

// RunTUI runs the account picker until the user commits a choice or quits.
func RunTUI(ctx context.Context, opts RunOptions) (Result, error) {
	if opts.Directory == nil {
		return Result{}, errors.New("onboarding: nil account directory")
	}
	shared := opts.Shared
	if shared == nil {
		shared = NewSharedState()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	theme := AutoTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	frames := NewFrameSignal()
	defer frames.Close()

	picker := NewAccountPicker(frames, opts.Directory, shared, PickerOptions{
		Keys:   &keys,
		Theme:  &theme,
		Logger: logger,
	})
	status := NewSignInStatus(shared, picker, theme)
	screen := NewScreen(frames, keys, theme, picker, status)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(screen, progOpts...).Run()
	if err != nil {
		return Result{}, fmt.Errorf("run picker: %w", err)
	}

	res := Result{
		SignIn:        shared.SignIn.Load(),
		ShowLoginForm: shared.ShowLoginForm.Load(),
	}
	if sc, ok := final.(Screen); ok {
		res.Aborted = sc.Aborted()
	}
	res.Selection, res.Selected = picker.Selection()
	logger.Debug("picker finished", "selected", res.Selected, "aborted", res.Aborted, "sign_in", res.SignIn)
	return res, nil
}
