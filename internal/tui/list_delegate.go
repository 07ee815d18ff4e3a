package tui

import (
	"fmt"
	"io"
	"strings"

	"appresp/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type applicationItem struct {
	app model.Application
}

func (i applicationItem) FilterValue() string { return i.app.Name }
func (i applicationItem) Title() string       { return i.app.Name }

// applicationDelegate renders a row as three lines: name with status badge,
// purpose and date, then the question count with notes.
type applicationDelegate struct{}

func (d applicationDelegate) Height() int                             { return 3 }
func (d applicationDelegate) Spacing() int                            { return 1 }
func (d applicationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d applicationDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(applicationItem)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < 10 {
		return
	}
	a := it.app
	selected := index == m.Index()

	marker := "  "
	if selected {
		marker = lipgloss.NewStyle().Foreground(colorAccent).Render("▌ ")
	}

	badge := renderStatusBadge(a.Status)
	nameW := contentW - 2 - xansi.StringWidth(badge) - 1
	name := a.Name
	if xansi.StringWidth(name) > nameW {
		name = xansi.Truncate(name, nameW, "…")
	}
	nameStyle := styleTitle()
	if selected {
		nameStyle = styleSelected()
	}
	name = nameStyle.Render(name)
	gap := contentW - 2 - xansi.StringWidth(name) - xansi.StringWidth(badge)
	if gap < 1 {
		gap = 1
	}
	line1 := marker + name + strings.Repeat(" ", gap) + badge

	meta := a.Purpose
	if d := model.FormatDate(a.DateSubmitted); d != "" {
		meta += " · " + d
	}
	line2 := marker + styleMuted().Render(fitWidth(meta, contentW-2))

	foot := model.QuestionCountLabel(len(a.Questions))
	if n := strings.TrimSpace(a.NotesText()); n != "" {
		foot += " · " + n
	}
	line3 := marker + styleMuted().Italic(true).Render(fitWidth(foot, contentW-2))

	fmt.Fprint(w, line1+"\n"+line2+"\n"+line3)
}

func fitWidth(s string, w int) string {
	if w < 1 {
		return ""
	}
	if xansi.StringWidth(s) > w {
		return xansi.Truncate(s, w, "…")
	}
	return s
}
