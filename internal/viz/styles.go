package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme of the viewer.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#88ff88"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeOcean, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	title  lipgloss.Style
	tab    lipgloss.Style
	active lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	hint   lipgloss.Style
	panel  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		tab:    lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		active: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Underline(true).Padding(0, 1),
		label:  lipgloss.NewStyle().Foreground(t.Muted),
		value:  lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		hint:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		good:   lipgloss.NewStyle().Foreground(t.Success),
		bad:    lipgloss.NewStyle().Foreground(t.Error),
	}
}

// ProgressBar renders a bar filled to frac of width.
func ProgressBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline compresses values into a one-line block chart of at most width
// runes.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}
