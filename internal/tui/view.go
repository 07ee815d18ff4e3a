package tui

import (
	"fmt"
	"strings"

	"appresp/internal/model"
	"appresp/internal/state"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch {
	case m.sess.View() == state.ViewDetail:
		b.WriteString(m.viewDetail())
	case m.mode == modeTagPicker:
		b.WriteString(m.viewTagPicker())
	case len(m.list.Items()) == 0:
		b.WriteString(m.viewEmpty())
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m appModel) viewHeader() string {
	title := styleTitle().Render("Application Response Manager")
	count := styleMuted().Render(model.CountLabel(m.sess.Count()))
	lines := []string{title + "  " + count}

	if m.sess.View() == state.ViewDetail {
		lines = append(lines, styleMuted().Render("← Back to all applications (esc)"), "")
		return strings.Join(lines, "\n")
	}

	if m.mode == modeSearch {
		lines = append(lines, renderInputLine(m.width, "Search:", m.search.View()))
	} else {
		q := m.sess.Filter.Search
		if strings.TrimSpace(q) == "" {
			q = styleMuted().Render("Search responses... (/)")
		}
		lines = append(lines, "Search: "+q)
	}

	filters := "Sort: " + m.sess.Filter.Sort.Label()
	if n := len(m.sess.Filter.Tags); n > 0 {
		chips := make([]string, 0, n)
		for _, t := range m.sess.Filter.Tags {
			chips = append(chips, renderChip(t, false))
		}
		filters += fmt.Sprintf("   Active Filters (%d): ", n) + strings.Join(chips, " ")
	}
	lines = append(lines, filters)
	return strings.Join(lines, "\n")
}

func (m appModel) viewFooter() string {
	var help string
	switch {
	case m.mode == modeSearch:
		help = "type to search · enter keep · esc clear"
	case m.mode == modeTagPicker:
		help = "↑/↓ move · space toggle · c clear all · esc close"
	case m.mode == modeAddTag:
		help = "enter add · tab complete · esc cancel"
	case m.sess.View() == state.ViewDetail && m.readOnly:
		help = "j/k question · esc back · q quit · read-only"
	case m.sess.View() == state.ViewDetail:
		help = "j/k question · h/l tag · a add tag · x remove tag · esc back · q quit"
	default:
		help = "enter open · / search · t tags · c clear · s sort · r reload · q quit"
	}
	out := styleMuted().Render(help)
	if m.flash != "" {
		st := lipgloss.NewStyle().Foreground(colorAccent)
		if !m.flashOK {
			st = lipgloss.NewStyle().Foreground(colorFlashError).Bold(true)
		}
		out = st.Render(m.flash) + "\n" + out
	}
	return out
}

func (m appModel) viewEmpty() string {
	var title, body string
	if m.sess.HasActiveFilters() {
		title = "No matching applications"
		body = "Try adjusting your filters or search query to find what you're looking for.\nPress c to clear filters."
	} else {
		title = "No application logs yet"
		body = "Get started by adding your first application log to track and reuse your responses."
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(1, 2).
		Width(max(20, m.width-4))
	return box.Render(styleTitle().Render(title) + "\n" + styleMuted().Render(body))
}

func (m appModel) viewTagPicker() string {
	tags := m.pickerTags()
	head := styleTitle().Render("Filter by Tags")
	if len(m.sess.Filter.Tags) > 0 {
		head += "  " + styleMuted().Render("(c) Clear all")
	}
	lines := []string{head, ""}
	for i, t := range tags {
		mark := "[ ]"
		if m.sess.Filter.HasTag(t) {
			mark = "[x]"
		}
		cursor := "  "
		if i == m.pickerIndex {
			cursor = lipgloss.NewStyle().Foreground(colorAccent).Render("› ")
		}
		lines = append(lines, cursor+mark+" "+renderChip(t, i == m.pickerIndex))
	}
	return strings.Join(lines, "\n")
}

// viewDetail renders the selected application into the viewport and scrolls
// so the selected question stays in view.
func (m appModel) viewDetail() string {
	a, ok := m.sess.Selected()
	if !ok {
		return ""
	}
	content, offset := m.renderDetailContent(a)
	vp := m.detail
	vp.SetContent(content)
	if offset < vp.YOffset || offset >= vp.YOffset+vp.Height {
		vp.SetYOffset(offset)
	}
	return vp.View()
}

// renderDetailContent returns the detail body and the line where the
// selected question starts.
func (m appModel) renderDetailContent(a model.Application) (string, int) {
	w := m.width
	if w < 20 {
		w = 20
	}
	var lines []string

	badge := renderStatusBadge(a.Status)
	lines = append(lines, styleTitle().Render(a.Name)+"  "+badge)
	meta := a.Purpose
	if d := model.FormatDate(a.DateSubmitted); d != "" {
		meta += " · " + d
	}
	lines = append(lines, styleMuted().Render(meta))
	if n := strings.TrimSpace(a.NotesText()); n != "" {
		lines = append(lines, styleMuted().Italic(true).Render(n))
	}
	lines = append(lines, "", styleTitle().Render(fmt.Sprintf("Questions & Responses (%d)", len(a.Questions))), "")

	offset := 0
	for i, q := range a.Questions {
		selected := i == m.questionIndex
		if selected {
			offset = len(lines)
		}
		idx := lipgloss.NewStyle().Foreground(colorQuestionIdx).Bold(true).Render(fmt.Sprintf("%d.", i+1))
		text := q.QuestionText
		if selected {
			text = styleSelected().Render(text)
		}
		lines = append(lines, lipgloss.NewStyle().Width(w).Render(idx+" "+text))

		if !selected {
			lines = append(lines, "   "+previewChips(q.Tags), "")
			continue
		}

		lines = append(lines, "", styleMuted().Render("   Response"))
		if r := renderResponse(q.Response, w-4); r != "" {
			lines = append(lines, indent(r, "   "))
		}
		lines = append(lines, "", styleMuted().Render("   Tags"))
		chips := make([]string, 0, len(q.Tags))
		for j, t := range q.Tags {
			chips = append(chips, renderChip(t, j == m.chipIndex))
		}
		tagLine := "   " + strings.Join(chips, " ")
		if len(chips) == 0 {
			tagLine = "   " + styleMuted().Render("No tags")
		}
		lines = append(lines, tagLine)
		if m.mode == modeAddTag {
			lines = append(lines, "   "+renderInputLine(w-6, "Add Tag:", m.tagInput.View()))
		} else {
			lines = append(lines, "   "+styleMuted().Render("+ Add Tag (a)"))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), offset
}

// previewChips shows at most collapsedTagLimit chips and a "+N more" suffix.
func previewChips(tags []string) string {
	shown := tags
	if len(shown) > collapsedTagLimit {
		shown = shown[:collapsedTagLimit]
	}
	chips := make([]string, 0, len(shown)+1)
	for _, t := range shown {
		chips = append(chips, renderChip(t, false))
	}
	if extra := len(tags) - len(shown); extra > 0 {
		chips = append(chips, styleMuted().Render(fmt.Sprintf("+%d more", extra)))
	}
	return strings.Join(chips, " ")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
