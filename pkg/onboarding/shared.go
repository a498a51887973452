package onboarding

import "sync"

// SignInState is the onboarding sign-in progress shared between steps.
type SignInState int

const (
	// SignInPickMode means the user is choosing how to sign in.
	SignInPickMode SignInState = iota
	// SignInChatGPTSuccess means a ChatGPT account is active.
	SignInChatGPTSuccess
	// SignInAPIKeyConfigured means an API key account is active.
	SignInAPIKeyConfigured
)

func (s SignInState) String() string {
	switch s {
	case SignInPickMode:
		return "pick-mode"
	case SignInChatGPTSuccess:
		return "chatgpt-success"
	case SignInAPIKeyConfigured:
		return "apikey-configured"
	default:
		return "unknown"
	}
}

// Cell is a value shared between onboarding steps.
// Writers replace the value under an exclusive lock; readers get a consistent snapshot.
type Cell[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewCell returns a cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{v: v}
}

// Load returns the current value.
func (c *Cell[T]) Load() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v
}

// Store replaces the current value. Last writer wins.
func (c *Cell[T]) Store(v T) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// SharedState holds the cells the account picker writes and sibling steps read.
type SharedState struct {
	ShowLoginForm *Cell[bool]
	SignIn        *Cell[SignInState]
}

// NewSharedState returns cells with the login form hidden and sign-in in pick mode.
func NewSharedState() *SharedState {
	return &SharedState{
		ShowLoginForm: NewCell(false),
		SignIn:        NewCell(SignInPickMode),
	}
}
