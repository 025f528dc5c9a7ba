package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-robbo/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the level set sidebar
	sidebarWidth       = 22  // Width of level set sidebar
	maxScores          = 100 // Max scores to load
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	GetStats() ([]storage.Stats, error)
	TopScores(levelSet string, limit int) ([]storage.ScoreEntry, error)
	LevelStats(levelSet string) ([]storage.LevelStat, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextSet key.Binding
	PrevSet key.Binding
	Toggle  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSet, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSet, k.PrevSet},
		{k.Toggle, k.Back, k.Quit},
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
		NextSet: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next set"),
		),
		PrevSet: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev set"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "scores/levels"),
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

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	sets        []storage.Stats
	setCursor   int
	store       ScoreSource
	scores      []storage.ScoreEntry
	levelStats  []storage.LevelStat
	showLevels  bool // per-level table instead of top scores
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store ScoreSource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if store != nil {
		m.sets, m.loadErr = store.GetStats()
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.showLevels {
		return []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Tries", Width: 6},
			{Title: "Done", Width: 6},
			{Title: "Deaths", Width: 7},
			{Title: "Best", Width: 8},
		}
	}
	dateWidth := 14
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 48; extra > 0 {
		dateWidth = min(20, dateWidth+extra)
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Cleared", Width: 8},
		{Title: "Deaths", Width: 7},
		{Title: "Date", Width: dateWidth},
	}
}

// createTable creates a new table with the columns of the current view.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
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

func (m *ScoreboardModel) currentSet() (string, bool) {
	if len(m.sets) == 0 {
		return "", false
	}
	return m.sets[m.setCursor].LevelSet, true
}

// load fetches rows for the selected set and view.
func (m *ScoreboardModel) load() {
	m.scores, m.levelStats = nil, nil
	name, ok := m.currentSet()
	if ok && m.store != nil {
		var err error
		if m.showLevels {
			m.levelStats, err = m.store.LevelStats(name)
		} else {
			m.scores, err = m.store.TopScores(name, maxScores)
		}
		if err != nil {
			m.loadErr = err
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rows.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.showLevels {
		rows = make([]table.Row, len(m.levelStats))
		for i, s := range m.levelStats {
			best := "-"
			if s.BestFrames > 0 {
				best = fmt.Sprintf("%d", s.BestFrames)
			}
			rows[i] = table.Row{
				fmt.Sprintf("%d", s.LevelNumber),
				fmt.Sprintf("%d", s.Attempts),
				fmt.Sprintf("%d", s.Completions),
				fmt.Sprintf("%d", s.Deaths),
				best,
			}
		}
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.LevelReached),
				fmt.Sprintf("%d", s.LevelsCleared),
				fmt.Sprintf("%d", s.Deaths),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
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

		case key.Matches(msg, m.keys.NextSet):
			if len(m.sets) > 0 {
				m.setCursor = (m.setCursor + 1) % len(m.sets)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSet):
			if len(m.sets) > 0 {
				m.setCursor = (m.setCursor - 1 + len(m.sets)) % len(m.sets)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.showLevels = !m.showLevels
			m.table = m.createTable()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.showLevels {
		title = "LEVEL STATS"
	}
	if name, ok := m.currentSet(); ok {
		title = fmt.Sprintf("%s - %s", title, name)
	}
	b.WriteString(theme.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	if m.loadErr != nil {
		b.WriteString(theme.Highlight.Render("error: " + m.loadErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(theme.Controls.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the sidebar of level sets next to the table.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := theme.Border.
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Level sets\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.sets {
		cursor := "  "
		style := theme.Item
		if i == m.setCursor {
			cursor = "> "
			style = theme.ItemActive
		}
		sidebar.WriteString(style.Render(cursor + truncate(s.LevelSet, sidebarWidth-6)))
		sidebar.WriteString("\n")
		sidebar.WriteString(theme.Description.Render(fmt.Sprintf("    best %d", s.HighScore)))
		sidebar.WriteString("\n")
	}

	tableStyle := theme.Border.Padding(0, 1)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows the current set with arrows above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder
	if name, ok := m.currentSet(); ok {
		b.WriteString(centerText(fmt.Sprintf("< %s >", truncate(name, m.width-8)), m.width))
		b.WriteString("\n\n")
	}
	tableStyle := theme.Border.Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 && len(m.levelStats) == 0 {
		emptyStyle := theme.Description.Italic(true).Padding(2, 4)
		return emptyStyle.Render("No games recorded yet.\nClear a level to set a high score!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
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
// Returns true if user wants to go back, false if quitting.
func RunScoreboard(store ScoreSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

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
