package tui

import (
	"os"
	"strings"

	"appresp/internal/model"
	"appresp/internal/tagcolor"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must stay readable on light and dark terminals, so colors are
// lipgloss.AdaptiveColor pairs.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted       lipgloss.TerminalColor = ac("240", "243")
	colorAccent      lipgloss.TerminalColor = ac("27", "62")
	colorSelectedBg  lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg  lipgloss.TerminalColor = ac("235", "255")
	colorCardBorder  lipgloss.TerminalColor = ac("250", "243")
	colorInputBg     lipgloss.TerminalColor = ac("254", "234")
	colorFlashError  lipgloss.TerminalColor = ac("160", "203")
	colorTitle       lipgloss.TerminalColor = ac("235", "255")
	colorQuestionIdx lipgloss.TerminalColor = ac("27", "111")
)

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func paletteStyle(p tagcolor.Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ac(p.Fg, p.DarkFg)).
		Background(ac(p.Bg, p.DarkBg)).
		Padding(0, 1)
}

func renderChip(tag string, selected bool) string {
	st := paletteStyle(tagcolor.For(tag))
	if selected {
		st = st.Bold(true).Underline(true)
	}
	return st.Render(tag)
}

func renderStatusBadge(s model.Status) string {
	return paletteStyle(tagcolor.StatusPalette(s)).Render(s.Label())
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts termenv's
// detection, upgrading to truecolor when COLORTERM says so.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	ct := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if (ct == "truecolor" || ct == "24bit") && profile > termenv.TrueColor {
		profile = termenv.TrueColor
	}
	lipgloss.SetColorProfile(profile)
}
