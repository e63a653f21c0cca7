package themes

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	ItemIcon      lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	RoundedBox    lipgloss.Style
	Highlighted   lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	Secondary     lipgloss.Color
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// Default is the default theme, Grand Exchange gold on dark.
var Default = Theme{
	// Colors
	Primary:    lipgloss.Color("#ffb845"),
	Secondary:  lipgloss.Color("#ffd27f"),
	Success:    lipgloss.Color("#22c55e"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#38bdf8"),
	Background: lipgloss.Color("#1a1a1a"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#4d4432"),
	Muted:      lipgloss.Color("#8a7d5f"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffb845")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#ffb845")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Highlighted: lipgloss.NewStyle().
		Background(lipgloss.Color("#404040")).
		Foreground(lipgloss.Color("#fafafa")),

	// Component styles
	Box: lipgloss.NewStyle().
		Padding(1, 2),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4d4432")).
		Padding(1, 2),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4d4432")).
		Padding(1, 2),

	// Status styles
	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22c55e")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#38bdf8")).
		Bold(true),

	// Item icon styles
	ItemIcon: lipgloss.NewStyle().
		Width(3).
		Align(lipgloss.Center),
}

// Rune is a cool blue theme after the armour set.
var Rune = Theme{
	// Colors
	Primary:    lipgloss.Color("#6ea8dc"),
	Secondary:  lipgloss.Color("#9cc3e8"),
	Success:    lipgloss.Color("#7bd88f"),
	Warning:    lipgloss.Color("#e5c07b"),
	Error:      lipgloss.Color("#e06c75"),
	Info:       lipgloss.Color("#56b6c2"),
	Background: lipgloss.Color("#16212b"),
	Foreground: lipgloss.Color("#d7e3ee"),
	Border:     lipgloss.Color("#2e4457"),
	Muted:      lipgloss.Color("#5c7186"),

	// Text styles
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#d7e3ee")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8ba3b8")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#d7e3ee")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#d7e3ee")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#6ea8dc")).
		Foreground(lipgloss.Color("#16212b")).
		Bold(true),
	Highlighted: lipgloss.NewStyle().
		Background(lipgloss.Color("#2e4457")).
		Foreground(lipgloss.Color("#d7e3ee")),

	// Component styles
	Box: lipgloss.NewStyle().
		Padding(1, 2),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#2e4457")).
		Padding(1, 2),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#2e4457")).
		Padding(1, 2),

	// Status styles
	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7bd88f")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e06c75")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#56b6c2")).
		Bold(true),

	// Item icon styles
	ItemIcon: lipgloss.NewStyle().
		Width(3).
		Align(lipgloss.Center),
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "rune":
		return Rune
	default:
		return Default
	}
}

// itemGlyphs maps item name fragments to display glyphs. First match
// wins, so more specific fragments come first.
var itemGlyphs = []struct {
	fragment string
	glyph    string
}{
	{"bones", "🦴"},
	{"dragon", "🐉"},
	{"rune", "🔮"},
	{"ore", "⛏️"},
	{"bar", "🔩"},
	{"log", "🪵"},
	{"herb", "🌿"},
	{"seed", "🌱"},
	{"shark", "🦈"},
	{"lobster", "🦞"},
	{"arrow", "🏹"},
	{"potion", "🧪"},
	{"gem", "💎"},
	{"coal", "🪨"},
}

// GetItemGlyph returns a display glyph for an item name. Items without
// a curated glyph get a placeholder derived from the name's first rune,
// so the same item always renders the same way.
func GetItemGlyph(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range itemGlyphs {
		if strings.Contains(lower, entry.fragment) {
			return entry.glyph
		}
	}
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
