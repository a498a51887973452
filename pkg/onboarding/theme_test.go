package onboarding

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"account-picker/pkg/config"
)

func TestThemeByName(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")

	assert.Equal(t, "none", ThemeByName("off").Name)
	assert.Equal(t, "catppuccin", ThemeByName("Mocha").Name)
	assert.Equal(t, "light", ThemeByName("light").Name)
	assert.Equal(t, "dark", ThemeByName(" dark ").Name)
}

func TestAutoTheme_RespectsNoColor(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "none", AutoTheme().Name)
}

func TestAutoTheme_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.Equal(t, "none", ThemeByName("auto").Name)
}

func TestTheme_RowText(t *testing.T) {
	for _, th := range []Theme{NoTheme(), DarkTheme(), LightTheme(), CatppuccinMochaTheme()} {
		assert.Equal(t, "> ", ansi.Strip(th.SelectedPrefix(true)), th.Name)
		assert.Equal(t, "  ", th.SelectedPrefix(false), th.Name)
		assert.Equal(t, "label", ansi.Strip(th.Row(true, "label")), th.Name)
		assert.Equal(t, "label", ansi.Strip(th.ActionRow(true, "label")), th.Name)
	}
}

func TestNewKeyMap(t *testing.T) {
	km := NewKeyMap(config.Keys{
		Up:     []string{"up", "k"},
		Down:   []string{"down", " ", "j"},
		Select: []string{"enter", "l"},
		Quit:   []string{"ctrl+c"},
	})

	assert.Equal(t, []string{"down", "j"}, km.Down.Keys())
	assert.Equal(t, "↑/k", km.Up.Help().Key)
	assert.Equal(t, "enter/l", km.Select.Help().Key)
	assert.Equal(t, "quit", km.Quit.Help().Desc)
	assert.Len(t, km.ShortHelp(), 4)
	assert.Len(t, km.FullHelp(), 2)
}
