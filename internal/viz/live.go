package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/manager"
	"github.com/san-kum/physlab/internal/physics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	trailCapacity   = 200
)

type TickMsg time.Time

type Options struct {
	FPS    int
	Clock  engine.Clock
	Logger *zap.Logger
	Theme  string
}

type trailPoint struct{ x, y float64 }

// Model is the live scene viewer. Each TickMsg runs one engine frame, so
// the terminal refresh is the engine's frame source.
type Model struct {
	scene    *config.Scene
	engine   *engine.Engine
	manager  *manager.Manager
	canvas   *Canvas
	interval time.Duration

	speedHistory []float64
	trail        []trailPoint
	theme        Theme
	styles       styles
	showHelp     bool
	err          error
}

// NewModel loads scene into a fresh engine and starts it.
func NewModel(scene *config.Scene, catalog manager.Catalog, opts Options) (Model, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Clock == nil {
		opts.Clock = engine.SystemClock()
	}
	e := engine.New(engine.WithClock(opts.Clock), engine.WithLogger(opts.Logger))

	canvas := NewCanvas(width, height)
	canvas.SetViewport(scene.Width, scene.Height)

	theme := GetTheme(opts.Theme)
	m := Model{
		scene:        scene,
		engine:       e,
		manager:      manager.New(e, catalog, manager.WithLogger(opts.Logger)),
		canvas:       canvas,
		interval:     time.Second / time.Duration(opts.FPS),
		speedHistory: make([]float64, 0, historyCapacity),
		trail:        make([]trailPoint, 0, trailCapacity),
		theme:        theme,
		styles:       newStyles(theme),
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) load() error {
	if err := m.manager.ApplyScene(m.scene); err != nil {
		return err
	}
	return m.manager.Run()
}

func (m Model) Engine() *engine.Engine { return m.engine }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.manager.Stop()
			return m, tea.Quit
		case " ":
			if m.engine.Running() {
				m.manager.Stop()
			} else {
				m.err = m.manager.Run()
			}
		case "r":
			m.reset()
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		before := m.engine.Frames()
		m.engine.Tick()
		if m.engine.Frames() > before {
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

// reset clears the engine and reloads the scene from scratch.
func (m *Model) reset() {
	m.manager.Reset()
	m.speedHistory = m.speedHistory[:0]
	m.trail = m.trail[:0]
	m.err = m.load()
}

func (m *Model) record() {
	states := m.engine.State()
	var top float64
	for _, st := range states {
		pm, ok := st.(physics.PointMassState)
		if !ok {
			continue
		}
		top = math.Max(top, math.Hypot(pm.VelocityX, pm.VelocityY))
		m.trail = append(m.trail, trailPoint{pm.X, pm.Y})
	}
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[len(m.trail)-trailCapacity:]
	}
	m.speedHistory = append(m.speedHistory, top)
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

func (m *Model) draw(states []physics.State) {
	m.canvas.Clear()
	for _, p := range m.trail {
		m.canvas.Plot(p.x, p.y)
	}
	for _, st := range states {
		switch s := st.(type) {
		case physics.SurfaceState:
			m.canvas.Line(s.StartX, s.StartY, s.EndX, s.EndY)
		case physics.PointMassState:
			m.canvas.Disc(s.X, s.Y, s.Size/2)
		}
	}
}

func (m Model) View() string {
	states := m.engine.State()
	m.draw(states)
	canvasView := m.styles.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.scene.Name)) + "\n")
	if m.engine.Running() {
		s.WriteString(m.styles.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(m.styles.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Max speed"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	t := m.engine.Time()
	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Scene", m.scene.Topic+" / "+m.scene.Subtopic)
	row("Time", fmt.Sprintf("%.2fs", t))
	row("Frames", fmt.Sprintf("%d", m.engine.Frames()))
	row("Objects", fmt.Sprintf("%d", len(states)))
	row("Forces", fmt.Sprintf("%d", len(m.engine.Forces())))
	if n := len(m.speedHistory); n > 0 {
		row("Speed", fmt.Sprintf("%.2f", m.speedHistory[n-1]))
	}
	if m.scene.Duration > 0 {
		row("Progress", ProgressBar(t/m.scene.Duration, 20))
	}
	if m.err != nil {
		s.WriteString("\n" + m.styles.err.Render(m.err.Error()) + "\n")
	}

	s.WriteString(m.styles.help.Render("─────────────────────\nSP:Run/Stop R:Reset Q:Quit\nT:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Run/Stop the engine      ║
║  R        - Reset and reload scene   ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run opens the viewer for scene in the alternate screen.
func Run(scene *config.Scene, catalog manager.Catalog, opts Options) error {
	m, err := NewModel(scene, catalog, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
