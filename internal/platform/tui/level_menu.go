package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-robbo/internal/core"
	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels"
)

// LevelSelection is what the level picker returns.
type LevelSelection struct {
	Level int // level number, 0 = start from the beginning
}

// LevelMenuModel lets the player choose the first level of a set.
type LevelMenuModel struct {
	setName      string
	numbers      []int
	titles       []string
	cursor       int // 0 is "start from the beginning", i > 0 is titles[i-1]
	width        int
	height       int
	scrollOffset int
	keyMapper    *KeyMapper
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewLevelMenuModel creates a picker for the levels of set.
func NewLevelMenuModel(set *levels.Set, width, height int) LevelMenuModel {
	m := LevelMenuModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	if set != nil {
		m.setName = set.Name
		m.titles = set.Titles()
		for _, def := range set.Levels {
			m.numbers = append(m.numbers, def.Number)
		}
	}
	return m
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.titles) {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		m.choosing = false
		if m.cursor > 0 {
			m.selection = LevelSelection{Level: m.numbers[m.cursor-1]}
		}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return max(3, m.height-10)
}

// updateScroll keeps the cursor inside the visible window.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	idx := max(0, m.cursor-1)
	if idx < m.scrollOffset {
		m.scrollOffset = idx
	} else if idx >= m.scrollOffset+visible {
		m.scrollOffset = idx - visible + 1
	}
}

// View renders the picker.
func (m LevelMenuModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("R O B B O"), m.width))
	b.WriteString("\n\n")

	subtitle := "Select a level:"
	if m.setName != "" {
		subtitle = fmt.Sprintf("%s - select a level:", m.setName)
	}
	b.WriteString(centerText(theme.Description.Render(subtitle), m.width))
	b.WriteString("\n\n")

	item := func(active bool, text string) {
		cursor, style := "  ", theme.Item
		if active {
			cursor, style = "> ", theme.ItemActive
		}
		b.WriteString(centerText(style.Render(cursor+text), m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset == 0 {
		item(m.cursor == 0, "Start from the beginning")
	}
	end := min(len(m.titles), m.scrollOffset+m.visibleItems())
	for i := m.scrollOffset; i < end; i++ {
		item(m.cursor == i+1, m.titles[i])
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.titles) {
		b.WriteString(centerText(theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.Controls.Render(help.New().View(menuHelp{m.keyMapper})), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selection, or nil while still choosing or after leaving.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing || m.quitting || m.back {
		return nil
	}
	sel := m.selection
	return &sel
}

// IsQuitting returns true if the user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if the user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the picker and returns the selection, nil when the user left.
func RunLevelSelector(set *levels.Set, cfg core.RuntimeConfig) (*LevelSelection, error) {
	p := tea.NewProgram(NewLevelMenuModel(set, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(LevelMenuModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
