package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/manager"
)

// picker lists the presets and opens the viewer for the chosen one.
type picker struct {
	presets []string
	cursor  int
	catalog manager.Catalog
	opts    Options
	styles  styles
	live    *Model
	err     error
}

func NewPicker(catalog manager.Catalog, opts Options) tea.Model {
	return picker{
		presets: config.ListPresets(),
		catalog: catalog,
		opts:    opts,
		styles:  newStyles(GetTheme(opts.Theme)),
	}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.presets) == 0 {
			return p, nil
		}
		live, err := NewModel(config.GetPreset(p.presets[p.cursor]), p.catalog, p.opts)
		if err != nil {
			p.err = err
			return p, nil
		}
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

func (p picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + p.styles.header.Render("PHYSLAB") + "\n")
	b.WriteString("    " + p.styles.label.Render("2d kinematics") + "\n\n")
	for i, name := range p.presets {
		desc := config.Presets[name].Description
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", p.styles.cursor.Render("▸"), p.styles.value.Render(fmt.Sprintf("%-12s", name)), p.styles.graph.UnsetPadding().Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", p.styles.label.UnsetWidth().Render(fmt.Sprintf("%-12s", name)), p.styles.label.UnsetWidth().Render(desc)))
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + p.styles.err.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + p.styles.help.UnsetMarginTop().Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// RunPicker opens the preset menu in the alternate screen.
func RunPicker(catalog manager.Catalog, opts Options) error {
	_, err := tea.NewProgram(NewPicker(catalog, opts), tea.WithAltScreen()).Run()
	return err
}
