package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/cirlab/cirsim/internal/dynamo"
)

const (
	historyCapacity = 600
	stepsPerFrame   = 4
	liveGraphWidth  = 70
	liveGraphHeight = 8
	// At most this many state components get their own live chart; the rest
	// still show as numeric readouts.
	maxLiveCharts = 3
)

type TickMsg time.Time

// Live is a bubbletea model stepping a system in real time with pause and
// reset controls.
type Live struct {
	sys        dynamo.System
	integ      dynamo.Integrator
	plantName  string
	stateNames []string

	state   dynamo.State
	initial dynamo.State
	t, dt   float64
	fps     int

	history [][]float64
	running bool
}

func NewLive(sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, dt float64, fps int, plantName string, stateNames []string) Live {
	if fps <= 0 {
		fps = 30
	}
	return Live{
		sys:        sys,
		integ:      integ,
		plantName:  plantName,
		stateNames: stateNames,
		state:      x0.Clone(),
		initial:    x0.Clone(),
		dt:         dt,
		fps:        fps,
		history:    make([][]float64, 0, historyCapacity),
		running:    true,
	}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Live) Init() tea.Cmd {
	return m.tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.history = m.history[:0]
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerFrame; i++ {
				m.state = m.integ.Step(m.sys, m.state, m.t, m.dt)
				m.t += m.dt
			}
			if !m.state.IsValid() {
				m.running = false
			} else {
				snapshot := make([]float64, len(m.state))
				copy(snapshot, m.state)
				m.history = append(m.history, snapshot)
				if len(m.history) > historyCapacity {
					m.history = m.history[1:]
				}
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Live) View() string {
	var b strings.Builder

	status := "running"
	if !m.running {
		status = "paused"
	}
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s  t=%.2f  [%s]", m.plantName, m.t, status)))
	b.WriteByte('\n')

	for idx, v := range m.state {
		name := fmt.Sprintf("x%d", idx)
		if idx < len(m.stateNames) {
			name = m.stateNames[idx]
		}
		b.WriteString(LabelStyle.Render(truncate(name, 14)))
		b.WriteString(ValueStyle.Render(fmt.Sprintf(" %12.4f", v)))
		b.WriteByte('\n')
	}

	charts := len(m.state)
	if charts > maxLiveCharts {
		charts = maxLiveCharts
	}
	if len(m.history) > 1 {
		for idx := 0; idx < charts; idx++ {
			data := make([]float64, len(m.history))
			for i, snapshot := range m.history {
				data[i] = snapshot[idx]
			}
			graph := asciigraph.Plot(data,
				asciigraph.Height(liveGraphHeight),
				asciigraph.Width(liveGraphWidth),
			)
			b.WriteString(GraphStyle.Render(graph))
			b.WriteByte('\n')
		}
	}

	b.WriteString(HelpStyle.Render("space pause/resume · r reset · q quit"))
	b.WriteByte('\n')
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
