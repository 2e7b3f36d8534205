package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/sim"
)

const (
	width  = 60
	height = 24

	// FrameInterval is the display refresh period.
	FrameInterval = 16 * time.Millisecond
	// Substeps per frame, each of SubstepDt.
	Substeps  = 10
	SubstepDt = 0.0016

	TrailCapacity   = 1000
	historyCapacity = 300
)

type TickMsg time.Time

// Model owns a simulation and draws it once per frame.
type Model struct {
	sim           *sim.Simulation
	canvas        *Canvas
	reach         float64
	trail         [][dynamo.Links + 1]dynamo.Point
	showTrail     bool
	running       bool
	energyHistory []float64
	theme         Theme
	err           error
}

// NewModel wraps s. The simulation keeps its current state and method.
func NewModel(s *sim.Simulation) Model {
	reach := 0.0
	for _, l := range s.Params().Length {
		reach += l
	}
	return Model{
		sim:           s,
		canvas:        NewCanvas(width, height),
		reach:         reach * 1.05,
		trail:         make([][dynamo.Links + 1]dynamo.Point, 0, TrailCapacity),
		showTrail:     true,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		theme:         ThemeCyberpunk,
	}
}

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "2", "3":
			method := dynamo.Method(msg.String()[0] - '0')
			if err := m.sim.SetIntegrateMethod(method); err != nil {
				m.err = err
			}
		case "i":
			m.sim.Initialize()
			m.trail = m.trail[:0]
			m.energyHistory = m.energyHistory[:0]
			m.err = nil
		case "l":
			m.showTrail = !m.showTrail
		case " ":
			m.running = !m.running
		case "t":
			m.theme = nextTheme(m.theme.Name)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance runs one frame worth of substeps. A failed step freezes the
// pendulum at the last good state.
func (m *Model) advance() {
	for i := 0; i < Substeps; i++ {
		if err := m.sim.Move(SubstepDt); err != nil {
			m.err = err
			break
		}
	}

	m.trail = append(m.trail, m.sim.Vertices())
	if len(m.trail) > TrailCapacity {
		m.trail = m.trail[1:]
	}

	m.energyHistory = append(m.energyHistory, m.sim.TotalEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	vp := m.canvas.Viewport(m.reach)

	if m.showTrail {
		for _, pts := range m.trail {
			for _, p := range pts[1:] {
				m.canvas.Set(vp.Project(p))
			}
		}
	}

	pts := m.sim.Vertices()
	for i := 0; i < dynamo.Links; i++ {
		x0, y0 := vp.Project(pts[i])
		x1, y1 := vp.Project(pts[i+1])
		m.canvas.DrawLine(x0, y0, x1, y1)
		m.canvas.DrawBob(x1, y1)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(
		lipgloss.NewStyle().Foreground(m.theme.Links).Render(m.canvas.String()),
	)

	var s strings.Builder
	s.WriteString(headerStyle.Render("TRIPLE PENDULUM") + "\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusFailed.Render("HALTED") + "\n")
		s.WriteString(Subtle.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString("Current Method: " + NeonGlow.Render(m.sim.ActiveMethodLabel()) + "\n")
	s.WriteString(fmt.Sprintf("energy: %.4f (T: %.4f, U: %.4f)\n\n",
		m.sim.TotalEnergy(), m.sim.KineticEnergy(), m.sim.PotentialEnergy()))

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	x := m.sim.State()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Steps())) + "\n")
	for i := 0; i < dynamo.Links; i++ {
		s.WriteString(labelStyle.Render(fmt.Sprintf("θ%d ω%d", i+1, i+1)) +
			valueStyle.Render(fmt.Sprintf("%6.3f %7.3f", x.Theta[i], x.Omega[i])) + "\n")
	}

	locus := "on"
	if !m.showTrail {
		locus = "off"
	}
	s.WriteString(labelStyle.Render("Locus") + valueStyle.Render(fmt.Sprintf("%s (%d)", locus, len(m.trail))) + "\n")

	s.WriteString(helpStyle.Render(Separator(40) + "\n1/2/3:Method I:Init L:Locus\nSP:Pause T:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Trail returns the recorded vertex sets, oldest first.
func (m Model) Trail() [][dynamo.Links + 1]dynamo.Point { return m.trail }

func (m Model) Running() bool   { return m.running }
func (m Model) ShowTrail() bool { return m.showTrail }
func (m Model) Err() error      { return m.err }

// Run starts a full-screen program for s and blocks until the user quits.
func Run(s *sim.Simulation) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
