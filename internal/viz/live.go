package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dancesim/internal/dance"
	"github.com/san-kum/dancesim/internal/sim"
)

const historyCapacity = 120

type TickMsg time.Time

// Model steps a dance one round per tick.
type Model struct {
	sim        *sim.Simulator[string]
	start      dance.State[string]
	state      dance.State[string]
	rounds     int
	round      int
	interval   time.Duration
	running    bool
	seen       map[string]int
	lineups    []dance.State[string]
	cycleStart int
	cycleLen   int
	dispHist   []float64
	err        error
	title      string
}

// NewModel prepares a live view over s starting from start. rounds is the
// target round count whose final line-up is reported once a cycle is seen.
func NewModel(s *sim.Simulator[string], start dance.State[string], rounds int, interval time.Duration, title string) Model {
	m := Model{
		sim:      s,
		start:    start.Clone(),
		rounds:   rounds,
		interval: interval,
		running:  true,
		title:    title,
	}
	m.reset()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and dances rounds.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reset() {
	m.state = m.start.Clone()
	m.round = 0
	m.seen = map[string]int{m.state.String(): 0}
	m.lineups = []dance.State[string]{m.state}
	m.cycleStart, m.cycleLen = 0, 0
	m.dispHist = []float64{0}
	m.err = nil
}

func (m *Model) step() {
	next, err := m.sim.Step(m.state)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.state = next
	m.round++

	if m.cycleLen == 0 {
		key := next.String()
		if j, ok := m.seen[key]; ok {
			m.cycleStart, m.cycleLen = j, m.round-j
		} else {
			m.seen[key] = m.round
			m.lineups = append(m.lineups, next)
		}
	}

	m.dispHist = append(m.dispHist, float64(next.Displacement(m.start)))
	if len(m.dispHist) > historyCapacity {
		m.dispHist = m.dispHist[1:]
	}
}

// Target returns the line-up after the target round count, once known.
func (m Model) Target() (dance.State[string], bool) {
	if m.cycleLen == 0 {
		if m.round >= m.rounds && m.rounds < len(m.lineups) {
			return m.lineups[m.rounds], true
		}
		return nil, false
	}
	idx := m.rounds
	if idx >= m.cycleStart {
		idx = m.cycleStart + (m.rounds-m.cycleStart)%m.cycleLen
	}
	return m.lineups[idx], true
}

// View renders the line-up and the stats panel.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := statusRunning.Render("DANCING")
	if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	if m.cycleLen > 0 {
		status += "  " + statusCycle.Render(fmt.Sprintf("CYCLE %d+%d", m.cycleStart, m.cycleLen))
	}
	s.WriteString(status + "\n\n")
	s.WriteString(renderLineup(m.state, m.start) + "\n\n")

	s.WriteString(labelStyle.Render("Round") + valueStyle.Render(fmt.Sprintf("%d", m.round)) + "\n")
	s.WriteString(labelStyle.Render("Moves") + valueStyle.Render(fmt.Sprintf("%d", len(m.sim.Moves()))) + "\n")
	s.WriteString(labelStyle.Render("Away") + valueStyle.Render(fmt.Sprintf("%d/%d", m.state.Displacement(m.start), len(m.state))) + "\n")
	if target, ok := m.Target(); ok {
		s.WriteString(labelStyle.Render(fmt.Sprintf("After %d", m.rounds)) + valueStyle.Render(target.String()) + "\n")
	}
	if m.cycleLen > 0 {
		pos := (m.round - m.cycleStart) % m.cycleLen
		s.WriteString(labelStyle.Render("Cycle") + valueStyle.Render(progressBar(float64(pos)/float64(m.cycleLen), 20)) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	if len(m.dispHist) > 1 {
		chart := asciigraph.Plot(m.dispHist,
			asciigraph.Height(6),
			asciigraph.Width(40),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(float64(len(m.state))),
			asciigraph.Caption("tokens away from home"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause N:Step R:Reset Q:Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(s.String()))
}
