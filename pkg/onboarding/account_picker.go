package onboarding

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"account-picker/pkg/accounts"
	"account-picker/pkg/logging"
)

const (
	pickerTitle        = "Accounts"
	pickerInstructions = "Choose which account to use for this session:"
	addAccountLabel    = "Add another account"
	activeAnnotation   = " (current)"
)

// SelectionKind distinguishes the two ways the picker can finish.
type SelectionKind int

const (
	SelectionExistingAccount SelectionKind = iota
	SelectionAddNew
)

func (k SelectionKind) String() string {
	if k == SelectionAddNew {
		return "add-new"
	}
	return "existing-account"
}

// Selection is the picker's committed outcome.
// AccountKind is only set for SelectionExistingAccount.
type Selection struct {
	Kind        SelectionKind
	AccountKind accounts.Kind
}

// PickerOptions customizes an AccountPicker. The zero value is usable.
type PickerOptions struct {
	Keys   *KeyMap
	Theme  *Theme
	Logger *log.Logger
}

// AccountPicker lets the user pick a registered account or start adding a new one.
//
// The entry list is the directory's accounts followed by one synthetic
// "Add another account" row. The stored highlight may run past the end of the
// list; every read goes through currentHighlight, which clamps it.
type AccountPicker struct {
	frames FrameRequester
	dir    accounts.Directory
	shared *SharedState
	keys   KeyMap
	theme  Theme
	log    *log.Logger

	accounts    []accounts.Summary
	highlighted int
	selection   *Selection
	err         string
}

// NewAccountPicker queries dir once and builds the picker.
// If no accounts are available, the shared login form flag is raised immediately.
func NewAccountPicker(frames FrameRequester, dir accounts.Directory, shared *SharedState, opts PickerOptions) *AccountPicker {
	p := &AccountPicker{
		frames: frames,
		dir:    dir,
		shared: shared,
		keys:   DefaultKeyMap(),
		theme:  NoTheme(),
		log:    opts.Logger,
	}
	if opts.Keys != nil {
		p.keys = *opts.Keys
	}
	if opts.Theme != nil {
		p.theme = *opts.Theme
	}
	if p.log == nil {
		p.log = logging.Discard()
	}

	list, err := dir.ListAccounts()
	if err != nil {
		p.err = err.Error()
		p.log.Warn("list accounts failed", "err", err)
	} else {
		p.accounts = list
	}
	p.highlighted = activeIndex(p.accounts, 0)

	if len(p.accounts) == 0 {
		p.shared.ShowLoginForm.Store(true)
	}
	p.log.Debug("account picker ready", "accounts", len(p.accounts))
	return p
}

// totalEntries counts the accounts plus the synthetic add-new row.
func (p *AccountPicker) totalEntries() int {
	return len(p.accounts) + 1
}

// currentHighlight is the stored highlight clamped to the entry list.
func (p *AccountPicker) currentHighlight() int {
	return min(p.highlighted, p.totalEntries()-1)
}

func (p *AccountPicker) highlightNext() {
	n := p.totalEntries()
	if n == 0 {
		return
	}
	p.highlighted = (p.currentHighlight() + 1) % n
}

func (p *AccountPicker) highlightPrev() {
	n := p.totalEntries()
	if n == 0 {
		return
	}
	cur := p.currentHighlight()
	if cur == 0 {
		p.highlighted = n - 1
		return
	}
	p.highlighted = cur - 1
}

// selectCurrent commits the highlighted entry.
func (p *AccountPicker) selectCurrent() {
	idx := p.currentHighlight()
	if idx < len(p.accounts) {
		p.selectAccount(idx)
		return
	}
	p.selectAddNew()
}

func (p *AccountPicker) selectAccount(idx int) {
	acct := p.accounts[idx]
	if err := p.dir.ActivateAccount(acct.ID); err != nil {
		p.err = err.Error()
		p.log.Warn("activate account failed", "id", acct.ID, "err", err)
		return
	}

	p.err = ""
	p.selection = &Selection{Kind: SelectionExistingAccount, AccountKind: acct.Kind}
	p.shared.ShowLoginForm.Store(false)
	p.shared.SignIn.Store(signInStateFor(acct.Kind))
	p.log.Info("account activated", "id", acct.ID, "kind", acct.Kind)

	// The switch has happened; a failed refresh only leaves the list stale.
	list, err := p.dir.ListAccounts()
	if err != nil {
		p.err = err.Error()
		p.log.Warn("refresh accounts failed", "err", err)
		return
	}
	p.accounts = list
	p.highlighted = activeIndex(list, p.currentHighlight())
}

func (p *AccountPicker) selectAddNew() {
	p.err = ""
	p.selection = &Selection{Kind: SelectionAddNew}
	p.shared.ShowLoginForm.Store(true)
	p.shared.SignIn.Store(SignInPickMode)
	p.highlighted = len(p.accounts)
	p.log.Info("adding a new account")
}

// HandleKey applies one key press. Every key, handled or not, requests a repaint.
func (p *AccountPicker) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, p.keys.Up):
		p.highlightPrev()
	case key.Matches(msg, p.keys.Down):
		p.highlightNext()
	case key.Matches(msg, p.keys.Select):
		p.selectCurrent()
	}
	p.frames.ScheduleFrame()
}

// StepState is complete once a selection has been committed.
func (p *AccountPicker) StepState() StepState {
	if p.selection != nil {
		return StepComplete
	}
	return StepInProgress
}

// Selection returns the committed outcome, if any.
func (p *AccountPicker) Selection() (Selection, bool) {
	if p.selection == nil {
		return Selection{}, false
	}
	return *p.selection, true
}

// Accounts returns a copy of the current snapshot.
func (p *AccountPicker) Accounts() []accounts.Summary {
	out := make([]accounts.Summary, len(p.accounts))
	copy(out, p.accounts)
	return out
}

// Highlighted returns the index of the highlighted entry.
func (p *AccountPicker) Highlighted() int { return p.currentHighlight() }

// Err returns the message from the last failed directory call, or "".
func (p *AccountPicker) Err() string { return p.err }

// Lines returns the panel body, one styled string per line.
func (p *AccountPicker) Lines() []string {
	lines := make([]string, 0, p.totalEntries()+4)
	lines = append(lines, p.theme.Plain.Render(pickerInstructions), "")

	cur := p.currentHighlight()
	for i, acct := range p.accounts {
		lines = append(lines, p.accountLine(acct, i == cur))
	}
	addSelected := cur == len(p.accounts)
	lines = append(lines, p.theme.SelectedPrefix(addSelected)+p.theme.ActionRow(addSelected, addAccountLabel))

	if p.err != "" {
		lines = append(lines, "", p.theme.Error.Render(p.err))
	}
	return lines
}

func (p *AccountPicker) accountLine(acct accounts.Summary, selected bool) string {
	label := acct.Label
	if acct.IsActive {
		label += activeAnnotation
	}
	return p.theme.SelectedPrefix(selected) +
		p.theme.Row(selected, label) + " " +
		p.theme.Detail.Render(accountDetail(acct))
}

// Render draws the picker as a titled, bordered panel.
func (p *AccountPicker) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return renderPanel(p.theme, pickerTitle, p.Lines(), width, height)
}

// DesiredHeight is the panel height needed to show every line at width.
func (p *AccountPicker) DesiredHeight(width int) int {
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	return len(wrapLines(p.Lines(), inner)) + 2
}

func accountDetail(acct accounts.Summary) string {
	switch acct.Kind {
	case accounts.KindChatGPT:
		if acct.Email != "" {
			return acct.Email
		}
		return "ChatGPT account"
	case accounts.KindAPIKey:
		if acct.MaskedAPIKey != "" {
			return acct.MaskedAPIKey
		}
		return "API key"
	default:
		return acct.Kind.String()
	}
}

func signInStateFor(k accounts.Kind) SignInState {
	if k == accounts.KindAPIKey {
		return SignInAPIKeyConfigured
	}
	return SignInChatGPTSuccess
}

// activeIndex returns the index of the active account, or fallback.
func activeIndex(list []accounts.Summary, fallback int) int {
	for i, a := range list {
		if a.IsActive {
			return i
		}
	}
	return fallback
}
