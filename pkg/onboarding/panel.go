package onboarding

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// renderPanel draws lines inside a rounded border with title set into the top
// edge. The result is exactly width columns by height rows. Areas too small to
// hold a border render as "".
func renderPanel(t Theme, title string, lines []string, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}
	b := lipgloss.RoundedBorder()
	top := panelTop(t, b, title, width)

	bodyRows := height - 2
	if bodyRows == 0 {
		bottom := b.BottomLeft + strings.Repeat(b.Bottom, width-2) + b.BottomRight
		return top + "\n" + t.Border.Render(bottom)
	}

	padX := 1
	if width-2 < 3 {
		padX = 0
	}
	inner := width - 2 - 2*padX

	var body []string
	if inner > 0 {
		body = wrapLines(lines, inner)
	}
	if len(body) > bodyRows {
		body = body[:bodyRows]
	}

	box := lipgloss.NewStyle().
		Border(b, false, true, true, true).
		BorderForeground(t.Border.GetForeground()).
		Padding(0, padX).
		Width(width - 2).
		Height(bodyRows).
		MaxHeight(bodyRows + 1)
	return top + "\n" + box.Render(strings.Join(body, "\n"))
}

func panelTop(t Theme, b lipgloss.Border, title string, width int) string {
	inner := width - 2
	label := ""
	if title != "" && inner > 0 {
		label = truncate.String(b.Top+" "+title+" ", uint(inner))
	}
	fill := inner - lipgloss.Width(label)
	if fill < 0 {
		fill = 0
	}

	var sb strings.Builder
	sb.WriteString(t.Border.Render(b.TopLeft))
	if label != "" {
		// Style the border glyph and the title text separately.
		lead := b.Top
		if strings.HasPrefix(label, lead) {
			sb.WriteString(t.Border.Render(lead))
			sb.WriteString(t.Title.Render(strings.TrimPrefix(label, lead)))
		} else {
			sb.WriteString(t.Border.Render(label))
		}
	}
	sb.WriteString(t.Border.Render(strings.Repeat(b.Top, fill) + b.TopRight))
	return sb.String()
}

// wrapLines word-wraps each line to width, hard-breaking words that do not fit.
// Empty lines are kept.
func wrapLines(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" {
			out = append(out, "")
			continue
		}
		hw := wrap.NewWriter(width)
		hw.PreserveSpace = true
		_, _ = hw.Write([]byte(wordwrap.String(l, width)))
		for _, w := range strings.Split(hw.String(), "\n") {
			out = append(out, strings.TrimRight(w, " "))
		}
	}
	return out
}
