package onboarding

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"account-picker/pkg/config"
)

// KeyMap binds picker actions to keys. It doubles as the help footer's key source.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// NewKeyMap builds bindings from configured key names.
func NewKeyMap(k config.Keys) KeyMap {
	return KeyMap{
		Up:     binding(k.Up, "up"),
		Down:   binding(k.Down, "down"),
		Select: binding(k.Select, "select"),
		Quit:   binding(k.Quit, "quit"),
	}
}

// DefaultKeyMap returns the bindings for config.Defaults.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Defaults().Keys)
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

func binding(keys []string, desc string) key.Binding {
	names := make([]string, 0, len(keys))
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		names = append(names, k)
		labels = append(labels, keyLabel(k))
	}
	return key.NewBinding(
		key.WithKeys(names...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}

func keyLabel(k string) string {
	switch k {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "enter":
		return "enter"
	default:
		return k
	}
}
