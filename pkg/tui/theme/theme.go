// Package theme centralizes Lip Gloss styles for the study UIs. A theme is
// selected by name from a fixed palette set; the selection persists across
// launches.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultName is used when no theme has been persisted yet or the persisted
// name is unknown.
const DefaultName = "indigo"

// Palette is the raw color set a theme is built from.
type Palette struct {
	Accent  string
	Term    string
	Def     string
	Good    string
	Bad     string
	Starred string
}

var palettes = map[string]Palette{
	"indigo": {
		Accent:  "#7571F9",
		Term:    "#C4C0FF",
		Def:     "#E8E6FF",
		Good:    "#4BB74C",
		Bad:     "#E06C75",
		Starred: "#E5C07B",
	},
	"forest": {
		Accent:  "#3FA34D",
		Term:    "#A3D9A5",
		Def:     "#E2F3E4",
		Good:    "#3FA34D",
		Bad:     "#D1603D",
		Starred: "#E8C547",
	},
	"rose": {
		Accent:  "#E75480",
		Term:    "#F7B2C4",
		Def:     "#FDEBF0",
		Good:    "#5FA052",
		Bad:     "#C0392B",
		Starred: "#F4D35E",
	},
	"mono": {
		Accent:  "#BBBBBB",
		Term:    "#EEEEEE",
		Def:     "#CCCCCC",
		Good:    "#FFFFFF",
		Bad:     "#888888",
		Starred: "#FFFFFF",
	},
}

// Names returns the valid theme names in a stable order.
func Names() []string {
	return []string{"indigo", "forest", "rose", "mono"}
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Theme groups the styles used by the flip-session and list views.
type Theme struct {
	Name string

	Title      lipgloss.Style
	Term       lipgloss.Style
	Definition lipgloss.Style
	Accent     lipgloss.Style
	Faint      lipgloss.Style
	Correct    lipgloss.Style
	Wrong      lipgloss.Style
	Starred    lipgloss.Style
	Cursor     lipgloss.Style
	Help       lipgloss.Style
	Frame      lipgloss.Style
	Error      lipgloss.Style
}

// Load builds the styles for the named palette, falling back to the default
// palette for unknown names.
func Load(name string) Theme {
	p, ok := palettes[name]
	if !ok {
		name = DefaultName
		p = palettes[name]
	}

	return Theme{
		Name: name,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)),
		Term: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Term)),
		Definition: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Def)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),
		Faint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(dim(p.Def))),
		Correct: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Good)),
		Wrong: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Bad)),
		Starred: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Starred)),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(dim(p.Def))),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Accent)).
			Padding(1, 3),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Bad)),
	}
}

// dim blends a hex color halfway toward black for faint text.
func dim(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	black, _ := colorful.Hex("#000000")
	return c.BlendLab(black, 0.5).Hex()
}
