package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
	"github.com/vovakirdan/tui-coilfall/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show view list sidebar
	sidebarWidth       = 20  // Width of view list sidebar
	maxRows            = 100 // Max records to load per view
)

// scoreboardView identifies one of the record views.
type scoreboardView int

const (
	viewBest scoreboardView = iota
	viewRecent
	viewScores
)

var viewTitles = [...]string{"Best per Level", "Recent Solves", "High Scores"}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
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

// ScoreboardModel is the Bubble Tea model for the records screen.
type ScoreboardModel struct {
	view        scoreboardView
	store       *storage.Store
	pars        map[string]int // Level ID -> par, for the best view
	rowCount    int
	summary     string // Aggregate line below the scores table
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	theme       CoilfallTheme
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show view list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		view:        viewBest,
		store:       store,
		pars:        coilfallgame.LevelPars(),
		keys:        keys,
		help:        h,
		theme:       GetCoilfallTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.rebuildTable()
	return m
}

// tableHeight returns the row area height for the current terminal size.
func (m *ScoreboardModel) tableHeight() int {
	h := m.height - 8 // Leave room for header, help, and margins
	if h < 3 {
		h = 3
	}
	return h
}

// rebuildTable recreates the table for the current view and loads its rows.
func (m *ScoreboardModel) rebuildTable() {
	var columns []table.Column
	var rows []table.Row

	switch m.view {
	case viewBest:
		columns = []table.Column{
			{Title: "Level", Width: 20},
			{Title: "Moves", Width: 7},
			{Title: "Par", Width: 5},
			{Title: "Undos", Width: 7},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 12},
		}
		rows = m.bestRows()

	case viewRecent:
		columns = []table.Column{
			{Title: "Level", Width: 20},
			{Title: "Moves", Width: 7},
			{Title: "Undos", Width: 7},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 12},
		}
		rows = m.recentRows()

	case viewScores:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 18},
		}
		rows = m.scoreRows()
	}

	m.rowCount = len(rows)
	m.summary = ""
	if m.view == viewScores && m.rowCount > 0 && m.store != nil {
		if stats, err := m.store.GetGameStats("coilfall"); err == nil && stats.GamesCount > 0 {
			m.summary = fmt.Sprintf("%d runs recorded, average score %.0f", stats.GamesCount, stats.AvgScore)
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.TableBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = m.theme.TableSelected
	t.SetStyles(s)

	m.table = t
}

// bestRows loads the best solve per level.
func (m *ScoreboardModel) bestRows() []table.Row {
	if m.store == nil {
		return nil
	}
	solves, err := m.store.BestSolves()
	if err != nil {
		return nil
	}

	rows := make([]table.Row, len(solves))
	for i, s := range solves {
		par := "-"
		if p, ok := m.pars[s.LevelID]; ok && p > 0 {
			par = fmt.Sprintf("%d", p)
		}
		rows[i] = table.Row{
			s.LevelID,
			fmt.Sprintf("%d", s.Moves),
			par,
			fmt.Sprintf("%d", s.Undos),
			formatSolveDuration(s.Duration),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// recentRows loads the most recent solves.
func (m *ScoreboardModel) recentRows() []table.Row {
	if m.store == nil {
		return nil
	}
	solves, err := m.store.RecentSolves(maxRows)
	if err != nil {
		return nil
	}

	rows := make([]table.Row, len(solves))
	for i, s := range solves {
		rows[i] = table.Row{
			s.LevelID,
			fmt.Sprintf("%d", s.Moves),
			fmt.Sprintf("%d", s.Undos),
			formatSolveDuration(s.Duration),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// scoreRows loads the campaign run scores.
func (m *ScoreboardModel) scoreRows() []table.Row {
	if m.store == nil {
		return nil
	}
	scores, err := m.store.TopScores("coilfall", maxRows)
	if err != nil {
		return nil
	}

	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// formatSolveDuration renders a duration as m:ss.
func formatSolveDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right):
			m.view = (m.view + 1) % scoreboardView(len(viewTitles))
			m.rebuildTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.view--
			if m.view < 0 {
				m.view = scoreboardView(len(viewTitles)) - 1
			}
			m.rebuildTable()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.rebuildTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	title := fmt.Sprintf("COILFALL RECORDS - %s", viewTitles[m.view])
	b.WriteString(m.theme.BoardTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: view tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	if m.summary != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.HelpBar.Render(centerText(m.summary, m.width)))
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(m.theme.HelpBar.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with sidebar for view selection.
func (m ScoreboardModel) renderWideLayout() string {
	// Sidebar (view list)
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.TableBorder).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range viewTitles {
		cursor := "  "
		style := lipgloss.NewStyle()
		if scoreboardView(i) == m.view {
			cursor = "> "
			style = m.theme.BoardTitle
		}

		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.TableBorder).
		Padding(0, 1)

	tableContent := m.renderTableContent()
	tableRendered := tableStyle.Render(tableContent)

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the scoreboard with view tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	// View tabs (horizontal)
	tabs := make([]string, len(viewTitles))
	for i, name := range viewTitles {
		if scoreboardView(i) == m.view {
			tabs[i] = m.theme.TabActive.Render(name)
		} else {
			tabs[i] = m.theme.TabNormal.Render(" " + name + " ")
		}
	}

	// Wrap tabs if needed
	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 {
		// Just show current view with arrows
		tabLine = fmt.Sprintf("< %s >", viewTitles[m.view])
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.TableBorder).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.rowCount == 0 {
		switch m.view {
		case viewScores:
			return m.theme.EmptyNotice.Render("No runs recorded yet.\nFinish a campaign run to set a score!")
		default:
			return m.theme.EmptyNotice.Render("No solves recorded yet.\nComplete a level to get on the board!")
		}
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
