package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenPreview
)

// SessionModel manages the full flow: menu -> game, scores or preview -> menu.
// It is the top-level model for both local menu runs and SSH sessions.
type SessionModel struct {
	base     config.RunnerConfig
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string

	screen  sessionScreen
	menu    MenuModel
	game    Model
	scores  ScoreboardModel
	preview PreviewModel

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(base config.RunnerConfig, store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	if username != "" {
		logger = logger.With("user", username)
	}

	return SessionModel{
		base:     base,
		store:    store,
		logger:   logger,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenPreview:
		return m.updatePreview(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Kind {
	case MenuItemPlay:
		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		m.game = NewRunnerModel(m.base, selected.Preset, m.store, cfg, m.logger)
		m.screen = screenGame
		return m, m.game.Init()

	case MenuItemScores:
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case MenuItemPreview:
		m.preview = NewPreviewModel(m.base, time.Now().UnixNano(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenPreview
		return m, m.preview.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.preview.Update(msg)
	if pv, ok := newModel.(PreviewModel); ok {
		m.preview = pv
	}

	if m.preview.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.preview.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenPreview:
		return m.preview.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(base config.RunnerConfig, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(base, store, cfg, "", logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
