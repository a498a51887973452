package onboarding

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameRequester asks for the screen to be repainted. Calls never block and
// may be repeated freely.
type FrameRequester interface {
	ScheduleFrame()
}

// FrameMsg is delivered to the program when a repaint was requested.
type FrameMsg struct{}

// FrameSignal coalesces repaint requests into at most one pending FrameMsg.
type FrameSignal struct {
	ch   chan struct{}
	done chan struct{}
	once sync.Once
}

// NewFrameSignal returns an open signal.
func NewFrameSignal() *FrameSignal {
	return &FrameSignal{
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// ScheduleFrame records a repaint request. Requests made while one is
// already pending are dropped.
func (f *FrameSignal) ScheduleFrame() {
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

// Wait returns a command that yields FrameMsg once a repaint is pending,
// or nil after Close.
func (f *FrameSignal) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ch:
			return FrameMsg{}
		case <-f.done:
			return nil
		}
	}
}

// Close releases any pending Wait.
func (f *FrameSignal) Close() {
	f.once.Do(func() { close(f.done) })
}
