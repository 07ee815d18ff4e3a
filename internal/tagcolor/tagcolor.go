// Package tagcolor maps tag and status names to color palettes shared by the
// terminal and web front-ends.
package tagcolor

import (
	"fmt"
	"strings"

	"appresp/internal/model"
)

type Palette struct {
	Name string

	// Light scheme.
	Bg     string
	Fg     string
	Border string

	// Dark scheme.
	DarkBg string
	DarkFg string
}

// Class is the CSS class the web UI uses for chips in this palette.
func (p Palette) Class() string { return "tag-" + p.Name }

// Neutral is used for any tag without an assigned palette.
var Neutral = Palette{Name: "neutral", Bg: "#f5f5f5", Fg: "#404040", Border: "#e5e5e5", DarkBg: "#262626", DarkFg: "#e5e5e5"}

var palettes = []Palette{
	Neutral,
	{Name: "purple", Bg: "#f3e8ff", Fg: "#7e22ce", Border: "#e9d5ff", DarkBg: "#581c87", DarkFg: "#e9d5ff"},
	{Name: "blue", Bg: "#dbeafe", Fg: "#1d4ed8", Border: "#bfdbfe", DarkBg: "#1e3a8a", DarkFg: "#bfdbfe"},
	{Name: "orange", Bg: "#ffedd5", Fg: "#c2410c", Border: "#fed7aa", DarkBg: "#7c2d12", DarkFg: "#fed7aa"},
	{Name: "teal", Bg: "#ccfbf1", Fg: "#0f766e", Border: "#99f6e4", DarkBg: "#134e4a", DarkFg: "#99f6e4"},
	{Name: "green", Bg: "#dcfce7", Fg: "#15803d", Border: "#bbf7d0", DarkBg: "#14532d", DarkFg: "#bbf7d0"},
	{Name: "yellow", Bg: "#fef9c3", Fg: "#a16207", Border: "#fef08a", DarkBg: "#713f12", DarkFg: "#fef08a"},
	{Name: "cyan", Bg: "#cffafe", Fg: "#0e7490", Border: "#a5f3fc", DarkBg: "#164e63", DarkFg: "#a5f3fc"},
	{Name: "lime", Bg: "#ecfccb", Fg: "#4d7c0f", Border: "#d9f99d", DarkBg: "#365314", DarkFg: "#d9f99d"},
	{Name: "indigo", Bg: "#e0e7ff", Fg: "#4338ca", Border: "#c7d2fe", DarkBg: "#312e81", DarkFg: "#c7d2fe"},
	{Name: "pink", Bg: "#fce7f3", Fg: "#be185d", Border: "#fbcfe8", DarkBg: "#831843", DarkFg: "#fbcfe8"},
	{Name: "amber", Bg: "#fef3c7", Fg: "#b45309", Border: "#fde68a", DarkBg: "#78350f", DarkFg: "#fde68a"},
	{Name: "rose", Bg: "#ffe4e6", Fg: "#be123c", Border: "#fecdd3", DarkBg: "#881337", DarkFg: "#fecdd3"},
	{Name: "violet", Bg: "#ede9fe", Fg: "#6d28d9", Border: "#ddd6fe", DarkBg: "#4c1d95", DarkFg: "#ddd6fe"},
	{Name: "emerald", Bg: "#d1fae5", Fg: "#047857", Border: "#a7f3d0", DarkBg: "#064e3b", DarkFg: "#a7f3d0"},
	{Name: "fuchsia", Bg: "#fae8ff", Fg: "#a21caf", Border: "#f5d0fe", DarkBg: "#701a75", DarkFg: "#f5d0fe"},
	{Name: "sky", Bg: "#e0f2fe", Fg: "#0369a1", Border: "#bae6fd", DarkBg: "#0c4a6e", DarkFg: "#bae6fd"},
	{Name: "red", Bg: "#fee2e2", Fg: "#b91c1c", Border: "#fecaca", DarkBg: "#7f1d1d", DarkFg: "#fecaca"},
}

var byTag = map[string]string{
	"Leadership":       "purple",
	"Teamwork":         "blue",
	"Problem Solving":  "orange",
	"Research":         "teal",
	"Python":           "green",
	"JavaScript":       "yellow",
	"React":            "cyan",
	"Node.js":          "lime",
	"Machine Learning": "indigo",
	"Web Development":  "pink",
	"Teaching":         "amber",
	"Service":          "rose",
	"Community Impact": "violet",
	"Healthcare":       "emerald",
	"Social Impact":    "fuchsia",
	"Perseverance":     "sky",
}

var byStatus = map[model.Status]string{
	model.StatusDraft:     "neutral",
	model.StatusSubmitted: "blue",
	model.StatusAccepted:  "green",
	model.StatusRejected:  "red",
}

func Palettes() []Palette {
	return append([]Palette(nil), palettes...)
}

func named(name string) Palette {
	for _, p := range palettes {
		if p.Name == name {
			return p
		}
	}
	return Neutral
}

// For returns the palette of tag. Lookup is exact; unknown tags are neutral.
func For(tag string) Palette {
	if name, ok := byTag[tag]; ok {
		return named(name)
	}
	return Neutral
}

func StatusPalette(s model.Status) Palette {
	if name, ok := byStatus[s]; ok {
		return named(name)
	}
	return Neutral
}

// CSS renders one rule per palette for light and dark color schemes.
func CSS() string {
	var b strings.Builder
	for _, p := range palettes {
		fmt.Fprintf(&b, ".%s{background:%s;color:%s;border-color:%s}\n", p.Class(), p.Bg, p.Fg, p.Border)
	}
	b.WriteString("@media (prefers-color-scheme: dark){\n")
	for _, p := range palettes {
		fmt.Fprintf(&b, ".%s{background:%s;color:%s;border-color:%s}\n", p.Class(), p.DarkBg, p.DarkFg, p.DarkBg)
	}
	b.WriteString("}\n")
	return b.String()
}
