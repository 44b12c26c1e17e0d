package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
)

const (
	canvasCols      = 72
	canvasRows      = 21
	historyCapacity = 300
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

// LiveConfig wires a live view.
type LiveConfig struct {
	Title string
	// Build returns a freshly populated world. It is called at start and on reset.
	Build   func() (dynamo.System, error)
	Drivers *control.Switch
	// Manual receives arrow key nudges while the sensor source is active.
	Manual *control.ManualSensor
	Style  Style
	Theme  string
	Logger *log.Logger
}

// Model is the Bubble Tea model of the live view.
type Model struct {
	cfg    LiveConfig
	sim    *dynamo.Simulator
	width  float64
	height float64

	canvas  *Canvas
	style   Style
	theme   Theme
	styles  styles
	running bool

	collisions       int
	energyHistory    []float64
	collisionHistory []float64
	showHelp         bool
}

func NewModel(cfg LiveConfig) (Model, error) {
	m := Model{
		cfg:     cfg,
		canvas:  NewCanvas(canvasCols, canvasRows),
		style:   cfg.Style,
		theme:   GetTheme(cfg.Theme),
		running: true,
	}
	m.styles = newStyles(m.theme)
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Run starts the live view on the terminal and blocks until it quits.
func Run(cfg LiveConfig) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) reset() error {
	sys, err := m.cfg.Build()
	if err != nil {
		return err
	}
	m.cfg.Drivers.Reset()
	m.sim = dynamo.New(sys, m.cfg.Drivers)
	m.sim.SetLogger(m.cfg.Logger)
	m.width, m.height = sys.Bounds()
	m.collisions = 0
	m.energyHistory = m.energyHistory[:0]
	m.collisionHistory = m.collisionHistory[:0]
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input between ticks and steps the world on TickMsg.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil && m.cfg.Logger != nil {
				m.cfg.Logger.Printf("reset: %v", err)
			}
		case "g":
			src := m.cfg.Drivers.Toggle()
			if m.cfg.Logger != nil {
				m.cfg.Logger.Printf("gravity source: %v", src)
			}
		case "o":
			m.style = m.style.Toggle()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "up", "k":
			m.nudge(0, -1)
		case "down", "j":
			m.nudge(0, 1)
		case "left", "h":
			m.nudge(-1, 0)
		case "right", "l":
			m.nudge(1, 0)
		case "0":
			if m.cfg.Manual != nil {
				m.cfg.Manual.Level()
			}
		case ".":
			if !m.running {
				m.step()
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) nudge(dx, dy float64) {
	if m.cfg.Manual != nil {
		m.cfg.Manual.Nudge(dx, dy)
	}
}

func (m *Model) step() {
	m.collisions = m.sim.Tick()
	m.energyHistory = appendCapped(m.energyHistory, dynamo.TotalKineticEnergy(m.sim.Bodies()))
	m.collisionHistory = appendCapped(m.collisionHistory, float64(m.collisions))
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// View renders the arena next to the stats panel.
func (m Model) View() string {
	DrawScene(m.canvas, m.width, m.height, m.sim.Bodies(), m.style)
	canvasView := m.styles.canvas.Render(m.canvas.String())

	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.cfg.Title)) + "\n")
	if m.running {
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.spark.Render(Sparkline(m.collisionHistory, 28)) + "\n\n")

	sys := m.sim.System()
	acc := sys.Acceleration()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.sim.Ticks()))
	row("Balls", fmt.Sprintf("%d", sys.Len()))
	row("Collisions", fmt.Sprintf("%d", m.collisions))
	row("Gravity", fmt.Sprintf("(%+.2f, %+.2f)", acc.X, acc.Y))
	row("Source", m.source())
	row("Numeric", sys.Backend())
	row("Render", m.style.String())
	row("Theme", m.theme.Name)

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nG:Gravity O:Outline T:Theme\n←↑↓→:Tilt 0:Level ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))

	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) source() string {
	src := m.cfg.Drivers.Source()
	if src == control.Scripted {
		if c, ok := m.cfg.Drivers.Scripted().(*control.Cycle); ok {
			return fmt.Sprintf("%v (%v)", src, c.Phase())
		}
	}
	return src.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Single step while paused ║
║  R        - Reset with the same seed ║
║  G        - Flip gravity source      ║
║  O        - Filled/outlined balls    ║
║  Arrows   - Tilt (sensor source)     ║
║  0        - Level the tilt           ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
