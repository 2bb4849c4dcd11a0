package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// MenuItemKind tells what selecting a menu item does.
type MenuItemKind int

const (
	MenuItemPlay MenuItemKind = iota
	MenuItemScores
	MenuItemPreview
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Kind        MenuItemKind
	Preset      config.DifficultyPreset // Set for MenuItemPlay
	Title       string
	Description string
}

// DefaultMenuItems returns the difficulty picker followed by the scoreboard
// and layout preview entries.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Kind: MenuItemPlay, Preset: config.DifficultyEasy, Title: "Easy", Description: "3 hits, no fireballs, gentle ramp"},
		{Kind: MenuItemPlay, Preset: config.DifficultyNormal, Title: "Normal", Description: "2 hits, chunks start at level 3"},
		{Kind: MenuItemPlay, Preset: config.DifficultyHard, Title: "Hard", Description: "1 hit, the chaser never drops back"},
		{Kind: MenuItemPlay, Preset: config.DifficultyFixed, Title: "Fixed", Description: "no difficulty progression"},
		{Kind: MenuItemScores, Title: "Scores", Description: "best runs per difficulty"},
		{Kind: MenuItemPreview, Title: "Preview", Description: "browse generated chunks"},
	}
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	highScore int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:     DefaultMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if hs, err := store.HighScore(); err == nil {
			m.highScore = hs
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.selected = m.find(MenuItemScores)

	case MenuActionPreview:
		m.selected = m.find(MenuItemPreview)
	}

	return m, nil
}

func (m MenuModel) find(kind MenuItemKind) *MenuItem {
	for i := range m.items {
		if m.items[i].Kind == kind {
			item := m.items[i]
			return &item
		}
	}
	return nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("L A N E   R U N N E R"), m.width))
	b.WriteString("\n\n")

	subtitle := "Pick a difficulty"
	if m.highScore > 0 {
		subtitle = fmt.Sprintf("Pick a difficulty  |  Best: %d", m.highScore)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if item.Kind != MenuItemPlay && i > 0 && m.items[i-1].Kind == MenuItemPlay {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("  %-8s %s", item.Title, dimStyle.Render(item.Description))
		if i == m.cursor {
			line = cursorStyle.Render("> "+fmt.Sprintf("%-8s", item.Title)) + " " + item.Description
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  V: Preview  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured by its
// visible width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
