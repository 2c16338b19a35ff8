package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-coilfall/internal/core"
	coilfallgame "github.com/vovakirdan/tui-coilfall/internal/games/coilfall"
)

// LevelSelection holds the user's selection from the level picker.
type LevelSelection struct {
	Level int // 0 = start from beginning, 1-N = specific level
}

// LevelMenuModel is the campaign level picker.
type LevelMenuModel struct {
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	levelNames   []string
	selection    LevelSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
	theme        CoilfallTheme
}

// NewLevelMenuModel creates a new level selection model.
func NewLevelMenuModel(width, height int) LevelMenuModel {
	levelNames := coilfallgame.LevelNames()
	if len(levelNames) == 0 {
		levelNames = []string{"No levels found"}
	}

	return LevelMenuModel{
		cursor:     0,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		levelNames: levelNames,
		choosing:   true,
		theme:      GetCoilfallTheme(),
	}
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
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levelNames) {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = LevelSelection{Level: m.cursor}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelMenuModel) updateScroll() {
	visibleItems := m.height - 10 // Account for header and footer
	if visibleItems < 3 {
		visibleItems = 3
	}

	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visibleItems {
		m.scrollOffset = m.cursor - visibleItems + 1
	}
}

// View renders the level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	title := m.theme.MenuTitle.Render("C O I L F A L L")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	// Subtitle
	subtitle := m.theme.MenuDescription.Render("Select a level:")
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	// Calculate visible range
	visibleItems := m.height - 10
	if visibleItems < 3 {
		visibleItems = 3
	}

	// "Start from Beginning" option
	if m.scrollOffset == 0 {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if m.cursor == 0 {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(cursor + "Start from Beginning")
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Level list
	startIdx := m.scrollOffset
	endIdx := startIdx + visibleItems
	if endIdx > len(m.levelNames) {
		endIdx = len(m.levelNames)
	}

	for i := startIdx; i < endIdx; i++ {
		actualIdx := i + 1 // Account for "Start from Beginning" option
		cursor := "  "
		style := m.theme.MenuItemNormal
		if actualIdx == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		levelNum := fmt.Sprintf("%2d. ", i+1)
		line := style.Render(cursor + levelNum + m.levelNames[i])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Scroll indicators
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if endIdx < len(m.levelNames) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m LevelMenuModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level selection and returns the selection.
// A nil selection means the user backed out.
func RunLevelSelector(cfg core.RuntimeConfig) (*LevelSelection, core.RuntimeConfig, error) {
	model := NewLevelMenuModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
