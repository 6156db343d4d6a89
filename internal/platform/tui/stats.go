package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

// Stats board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the puzzle sidebar
	sidebarWidth       = 22  // Width of the puzzle sidebar
	maxResults         = 100 // Max results to load
)

// StatsKeyMap defines the key bindings for the stats board.
type StatsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPuzzle key.Binding
	PrevPuzzle key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPuzzle, k.PrevPuzzle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPuzzle, k.PrevPuzzle},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPuzzle: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next puzzle"),
		),
		PrevPuzzle: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev puzzle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the stats board: a puzzle list,
// a summary line and the recent results of the selected puzzle.
type StatsModel struct {
	puzzles     []registry.PuzzleInfo
	cursor      int
	store       *storage.Store
	summary     *storage.PuzzleStats
	results     []storage.ResultEntry
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewStatsModel creates a new stats board.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		puzzles:     registry.List(),
		store:       store,
		keys:        DefaultStatsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.puzzles) > 0 {
		m.load(m.puzzles[0].ID)
	}
	return m
}

// createTable creates a new table sized to the terminal.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Outcome", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Message", Width: 20},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if rest := tableWidth - 13 - 10 - 8 - 8; rest > columns[3].Width {
		columns[3].Width = min(rest, 32)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Room for header, summary and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the summary and recent results for a puzzle.
func (m *StatsModel) load(puzzleID string) {
	m.summary = nil
	m.results = nil
	if m.store != nil {
		if stats, err := m.store.Stats(puzzleID); err == nil {
			m.summary = stats
		}
		if results, err := m.store.RecentResults(puzzleID, maxResults); err == nil {
			m.results = results
		}
	}
	m.updateTableRows()
}

// outcomeLabel names how a session ended.
func outcomeLabel(r storage.ResultEntry) string {
	switch {
	case r.Success:
		return "solved"
	case r.Forfeited:
		return "forfeited"
	default:
		return "failed"
	}
}

// updateTableRows fills the table from the loaded results.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			outcomeLabel(r),
			fmt.Sprintf("%.1fs", r.Duration),
			r.Message,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// summaryLine renders the aggregate stats of the selected puzzle.
func (m StatsModel) summaryLine() string {
	s := m.summary
	if s == nil || s.Played == 0 {
		return "Not played yet"
	}
	best := "-"
	if s.Won > 0 {
		best = fmt.Sprintf("%.1fs", s.BestTime)
	}
	return fmt.Sprintf("Played %d  |  Solved %d  |  Forfeited %d  |  Best %s",
		s.Played, s.Won, s.Forfeited, best)
}

// Init initializes the stats board.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats board.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPuzzle):
			if len(m.puzzles) > 0 {
				m.cursor = (m.cursor + 1) % len(m.puzzles)
				m.load(m.puzzles[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPuzzle):
			if len(m.puzzles) > 0 {
				m.cursor = (m.cursor + len(m.puzzles) - 1) % len(m.puzzles)
				m.load(m.puzzles[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats board.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RESULTS"
	if len(m.puzzles) > 0 {
		title = fmt.Sprintf("RESULTS - %s", m.puzzles[m.cursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.summaryLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the puzzle list beside the results table.
func (m StatsModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Puzzles\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.puzzles {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := p.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	side := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the selected puzzle name above the table.
func (m StatsModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.puzzles) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.puzzles[m.cursor].Title), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(panelStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m StatsModel) renderTableContent() string {
	if len(m.results) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No results recorded yet.\nSolve a task to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats board.
// Returns true if user wants to go back to menu, false if quitting.
func RunStats(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewStatsModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
