package viz

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sirstab/internal/montecarlo"
)

type viewer struct {
	res    *montecarlo.Result
	panels []panel
	active int
	theme  Theme
	styles styles
	width  int
	height int
}

func newViewer(res *montecarlo.Result, theme string) viewer {
	t := GetTheme(theme)
	return viewer{
		res:    res,
		panels: buildPanels(res),
		theme:  t,
		styles: newStyles(t),
		width:  reportWidth,
		height: 24,
	}
}

func (v viewer) Init() tea.Cmd { return nil }

func (v viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		case "tab", "right", "l":
			v.active = (v.active + 1) % len(v.panels)
		case "shift+tab", "left", "h":
			v.active = (v.active + len(v.panels) - 1) % len(v.panels)
		case "t":
			v.theme = Themes[(themeIndex(v.theme.Name)+1)%len(Themes)]
			v.styles = newStyles(v.theme)
		default:
			if k := msg.String(); len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(v.panels) {
				v.active = int(k[0] - '1')
			}
		}
	}
	return v, nil
}

func (v viewer) View() string {
	s := v.styles

	tabs := make([]string, len(v.panels))
	for i, p := range v.panels {
		label := fmt.Sprintf("%d %s", i+1, p.title)
		if i == v.active {
			tabs[i] = s.active.Render(label)
		} else {
			tabs[i] = s.tab.Render(label)
		}
	}

	retained := v.res.Retained()
	stable := stableCount(v.res)
	stableStyle := s.good
	if stable < retained {
		stableStyle = s.bad
	}
	header := s.title.Render(fmt.Sprintf("sirstab  %s", v.res.Mode)) + "  " +
		s.label.Render("retained ") + s.value.Render(fmt.Sprintf("%d/%d", retained, v.res.Drawn)) + " " +
		s.label.Render(ProgressBar(fraction(retained, v.res.Drawn), 20)) + "  " +
		s.label.Render("stable ") + stableStyle.Render(fmt.Sprintf("%d/%d", stable, retained))

	// leave room for the border and the axis labels
	body := v.panels[v.active].render(max(v.width-14, 20), true)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")
	b.WriteString(s.panel.Render(body) + "\n")
	b.WriteString(s.hint.Render(fmt.Sprintf("tab/←→ switch · 1-%d jump · t theme (%s) · q quit", len(v.panels), v.theme.Name)))
	return b.String()
}

// Show opens the interactive results viewer and blocks until the user quits.
func Show(res *montecarlo.Result, theme string) error {
	if res == nil {
		return errors.New("viz: nil result")
	}
	_, err := tea.NewProgram(newViewer(res, theme), tea.WithAltScreen()).Run()
	return err
}
