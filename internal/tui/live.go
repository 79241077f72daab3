// Package tui provides a live terminal view of a running
// perturb/measure/renormalize cycle.
package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgarrel/nuflav/internal/lyapunov"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/viz"
)

const historyLen = 256

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	cur *particles.Container
	ref *particles.Container
	cfg lyapunov.Config
	rng *rand.Rand

	cycle    int
	distance float64
	report   *lyapunov.Report
	history  []float64

	paused bool
	width  int
}

// New returns a live view driving perturbation cycles against the given
// ensembles. The reference ensemble is never mutated.
func New(cur, ref *particles.Container, cfg lyapunov.Config, seed int64) tea.Model {
	return model{
		cur:     cur,
		ref:     ref,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		history: make([]float64, 0, historyLen),
		width:   80,
	}
}

// Run starts the live view and blocks until the user quits.
func Run(cur, ref *particles.Container, cfg lyapunov.Config, seed int64) error {
	_, err := tea.NewProgram(New(cur, ref, cfg, seed)).Run()
	return err
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if !m.paused {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step runs one perturbation cycle: kick the current ensemble, measure its
// distance from the reference, and pull the deviation back to the target
// amplitude.
func (m *model) step() {
	lyapunov.Perturb(m.cur, m.cfg.Amplitude, m.rng)

	d, rep := lyapunov.Distance(m.cur, m.ref, m.cfg.Match)
	m.distance = d
	m.report = rep
	m.cycle++

	if rrep, err := lyapunov.Renormalize(m.cur, m.ref, d, m.cfg); err == nil {
		rep.Unmatched += rrep.Unmatched
		rep.TraceViolations += rrep.TraceViolations
	}

	m.history = append(m.history, d)
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(viz.Header.Render("nuflav lyapunov watch"))
	b.WriteString("\n\n")
	b.WriteString(viz.Metric("cycle", fmt.Sprintf("%d", m.cycle)))
	b.WriteString("  ")
	b.WriteString(viz.Metric("distance", fmt.Sprintf("%.6e", m.distance)))
	b.WriteString("  ")
	b.WriteString(viz.Metric("particles", fmt.Sprintf("%d", m.cur.TotalParticles())))
	b.WriteString("\n\n")

	width := m.width - 4
	if width < 16 {
		width = 16
	}
	b.WriteString(viz.Sparkline(m.history, width))
	b.WriteString("\n\n")

	if m.report != nil && !m.report.OK() {
		b.WriteString(viz.Warn.Render(fmt.Sprintf(
			"diagnostics: %d unmatched, %d trace violations",
			m.report.Unmatched, m.report.TraceViolations)))
	} else {
		b.WriteString(viz.Good.Render("ensemble consistent"))
	}
	b.WriteString("\n\n")
	b.WriteString(viz.Subtle.Render("space pause · q quit"))
	b.WriteString("\n")

	return b.String()
}
