// Command crossref-tui is an interactive explorer for a contract
// cross-reference graph: a statistics dashboard, a term browser with
// on-demand impact reports, and a live force-directed layout view driven
// one simulation step per animation frame.
package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/draftwire/crossref/pkg/graph"
	"github.com/draftwire/crossref/pkg/impact"
	"github.com/draftwire/crossref/pkg/layout"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(1, 2).
			MarginRight(2)

	impactBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F2C94C")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316"))
	mediumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
)

const demoAgreement = `
nodes:
  - {id: def-ebitda, name: EBITDA, type: definition, category: definitions, impactSeverity: critical, isModified: true}
  - {id: def-indebtedness, name: Indebtedness, type: definition, category: definitions, impactSeverity: high}
  - {id: def-leverage, name: Leverage Ratio, type: definition, category: definitions, impactSeverity: critical}
  - {id: cov-max-leverage, name: Maximum Leverage Covenant, type: covenant, category: covenants, impactSeverity: critical}
  - {id: cov-coverage, name: Interest Coverage Covenant, type: covenant, category: covenants, impactSeverity: high}
  - {id: prc-grid, name: Applicable Margin Grid, type: pricing, category: pricing, impactSeverity: high}
  - {id: evt-breach, name: Covenant Breach Default, type: event, category: defaults, impactSeverity: critical}
  - {id: rep-financials, name: Financial Statements Rep, type: representation, category: reps, impactSeverity: medium}
links:
  - {sourceId: def-ebitda, targetId: def-leverage, type: defines, strength: 1.0}
  - {sourceId: def-indebtedness, targetId: def-leverage, type: defines, strength: 0.9}
  - {sourceId: def-ebitda, targetId: cov-coverage, type: depends_on, strength: 0.9}
  - {sourceId: def-leverage, targetId: cov-max-leverage, type: depends_on, strength: 1.0}
  - {sourceId: def-leverage, targetId: prc-grid, type: depends_on, strength: 0.9}
  - {sourceId: cov-max-leverage, targetId: evt-breach, type: triggers, strength: 1.0}
  - {sourceId: cov-coverage, targetId: evt-breach, type: triggers, strength: 1.0}
  - {sourceId: def-ebitda, targetId: rep-financials, type: references, strength: 0.5}
`

type view int

const (
	dashboardView view = iota
	termsView
	layoutView
)

type keyMap struct {
	Tab     key.Binding
	Enter   key.Binding
	Physics key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "analyze impact"),
	),
	Physics: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle physics"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reseed layout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Physics, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Enter}, {k.Physics, k.Reset, k.Quit}}
}

type frameMsg time.Time

type model struct {
	graph    *graph.Model
	stats    graph.Statistics
	sim      *layout.Simulator
	state    *layout.State
	analyzer *impact.Analyzer

	view     view
	termList table.Model
	analysis *impact.Analysis
	physics  bool
	help     help.Model
}

func newModel() (*model, error) {
	g, err := graph.LoadYAML([]byte(demoAgreement))
	if err != nil {
		return nil, fmt.Errorf("load demo agreement: %w", err)
	}

	cfg := layout.DefaultConfig(120, 32)
	cfg.Margin = 4
	cfg.MinDistance = 8
	cfg.Repulsion = 120
	sim, err := layout.NewSimulator(cfg)
	if err != nil {
		return nil, err
	}

	analyzer, err := impact.NewAnalyzer(impact.DefaultOptions())
	if err != nil {
		return nil, err
	}

	columns := []table.Column{
		{Title: "Term", Width: 30},
		{Title: "Type", Width: 14},
		{Title: "Severity", Width: 10},
		{Title: "Links", Width: 6},
	}
	var rows []table.Row
	for _, n := range g.Nodes() {
		rows = append(rows, table.Row{
			n.Name,
			n.Type.String(),
			n.ImpactSeverity.String(),
			fmt.Sprintf("%d", n.IncomingCount+n.OutgoingCount),
		})
	}
	termList := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return &model{
		graph:    g,
		stats:    graph.ComputeStatistics(g),
		sim:      sim,
		state:    sim.NewState(g),
		analyzer: analyzer,
		termList: termList,
		physics:  true,
		help:     help.New(),
	}, nil
}

func (m *model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		// One force-accumulation pass per animation frame.
		if m.physics {
			m.sim.Step(m.state)
		}
		return m, frameTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Tab):
			m.view = (m.view + 1) % 3
			return m, nil
		case key.Matches(msg, keys.Physics):
			m.physics = !m.physics
			return m, nil
		case key.Matches(msg, keys.Reset):
			m.state = m.sim.Reseed(m.state, m.graph)
			return m, nil
		case key.Matches(msg, keys.Enter):
			if m.view == termsView {
				m.analysis = m.analyzer.Analyze(m.graph, m.selectedNodeID())
			}
			return m, nil
		}
	}

	if m.view == termsView {
		var cmd tea.Cmd
		m.termList, cmd = m.termList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) selectedNodeID() string {
	row := m.termList.Cursor()
	nodes := m.graph.Nodes()
	if row < 0 || row >= len(nodes) {
		return ""
	}
	return nodes[row].ID
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("crossref — contract dependency explorer"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.view {
	case dashboardView:
		b.WriteString(m.renderDashboard())
	case termsView:
		b.WriteString(m.renderTerms())
	case layoutView:
		b.WriteString(m.renderLayout())
	}

	b.WriteString(helpStyle.Render(m.help.View(keys)))
	b.WriteString("\n")
	return b.String()
}

func (m *model) renderTabs() string {
	names := []string{"Dashboard", "Terms", "Layout"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if view(i) == m.view {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return contentStyle.Render(strings.Join(tabs, " "))
}

func (m *model) renderDashboard() string {
	var s strings.Builder
	fmt.Fprintf(&s, "Terms:            %d\n", m.stats.NodeCount)
	fmt.Fprintf(&s, "Cross-references: %d\n", m.stats.LinkCount)
	fmt.Fprintf(&s, "Modified:         %d\n", m.stats.ModifiedNodes)
	fmt.Fprintf(&s, "High impact:      %d\n", m.stats.HighImpactNodes)
	fmt.Fprintf(&s, "Avg connections:  %.1f\n", m.stats.AvgConnections)
	fmt.Fprintf(&s, "Most connected:   %s", m.stats.MostConnectedName)
	return contentStyle.Render(statsBoxStyle.Render(s.String()))
}

func (m *model) renderTerms() string {
	out := contentStyle.Render(m.termList.View())
	if m.analysis == nil {
		return out + "\n" + contentStyle.Render("press enter to analyze the selected term")
	}

	var s strings.Builder
	fmt.Fprintf(&s, "Impact score: %.0f/100\n", m.analysis.TotalImpactScore)
	s.WriteString(m.analysis.Summary + "\n\n")
	for _, d := range m.analysis.DirectImpacts {
		fmt.Fprintf(&s, "%s %s\n", severityBadge(d.Severity), d.NodeName)
	}
	for _, c := range m.analysis.CascadingImpacts {
		fmt.Fprintf(&s, "%s depth %d: %s\n",
			severityBadge(c.Severity), c.Depth, strings.Join(c.PathFromSource, " → "))
	}
	return out + "\n" + contentStyle.Render(impactBoxStyle.Render(s.String()))
}

// renderLayout projects the simulation onto a character grid.
func (m *model) renderLayout() string {
	const cols, lines = 120, 32
	grid := make([][]rune, lines)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	for _, p := range m.state.Nodes() {
		x := int(p.Position.X)
		y := int(p.Position.Y)
		if x < 0 || x >= cols || y < 0 || y >= lines {
			continue
		}
		grid[y][x] = '●'
		label := p.Node.Name
		for j, r := range label {
			if x+2+j >= cols {
				break
			}
			grid[y][x+2+j] = r
		}
	}

	rows := make([]string, lines)
	for i := range grid {
		rows[i] = string(grid[i])
	}
	status := fmt.Sprintf("physics: %v   step: %d", m.physics, m.state.Iteration)
	return contentStyle.Render(strings.Join(rows, "\n") + "\n" + status)
}

func severityBadge(s graph.Severity) string {
	label := fmt.Sprintf("[%s]", s)
	switch s {
	case graph.SeverityCritical:
		return criticalStyle.Render(label)
	case graph.SeverityHigh:
		return highStyle.Render(label)
	case graph.SeverityMedium:
		return mediumStyle.Render(label)
	default:
		return lowStyle.Render(label)
	}
}

func main() {
	m, err := newModel()
	if err != nil {
		log.Fatalf("setup failed: %v", err)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("tui failed: %v", err)
	}
}
