package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/export"
)

// Preview paging.
const (
	previewPage      = 8   // Chunks generated per page
	previewMaxChunks = 512 // Upper bound on chunks held in the viewport
)

// PreviewKeyMap defines the key bindings for the layout preview.
type PreviewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	More     key.Binding
	NextSeed key.Binding
	PrevSeed key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.More, k.NextSeed, k.PrevSeed, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.More},
		{k.NextSeed, k.PrevSeed, k.Back, k.Quit},
	}
}

// DefaultPreviewKeyMap returns default key bindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("down/j", "scroll down"),
		),
		More: key.NewBinding(
			key.WithKeys("m", "+"),
			key.WithHelp("m", "more chunks"),
		),
		NextSeed: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next seed"),
		),
		PrevSeed: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "prev seed"),
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

// PreviewModel browses the chunks a run would generate for a seed.
type PreviewModel struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	seed       int64
	chunks     int
	viewport   viewport.Model
	help       help.Model
	keys       PreviewKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewPreviewModel creates a preview of the run with the given seed.
func NewPreviewModel(cfg config.RunnerConfig, seed int64, width, height int) PreviewModel {
	m := PreviewModel{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		seed:       seed,
		chunks:     previewPage,
		help:       help.New(),
		keys:       DefaultPreviewKeyMap(),
		width:      width,
		height:     height,
	}
	m.viewport = viewport.New(width, m.viewportHeight())
	m.refresh()
	return m
}

func (m PreviewModel) viewportHeight() int {
	return max(m.height-4, 1) // Title, blank line and help
}

// Content returns the text shown in the viewport.
func (m PreviewModel) Content() string {
	chunks := export.BuildRange(m.cfg.Layout, m.cfg.Catalog, m.seed, 0, m.chunks, m.difficulty.ChunkLevel)
	return export.Text(chunks)
}

func (m *PreviewModel) refresh() {
	m.viewport.SetContent(m.Content())
}

// Seed returns the previewed run seed.
func (m PreviewModel) Seed() int64 {
	return m.seed
}

// Init initializes the preview model.
func (m PreviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.More):
			if m.chunks < previewMaxChunks {
				m.chunks = min(m.chunks+previewPage, previewMaxChunks)
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.NextSeed):
			m.seed++
			m.chunks = previewPage
			m.refresh()
			m.viewport.GotoTop()
			return m, nil

		case key.Matches(msg, m.keys.PrevSeed):
			m.seed--
			m.chunks = previewPage
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = m.viewportHeight()
		m.help.Width = msg.Width
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the preview.
func (m PreviewModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	title := fmt.Sprintf("LAYOUT PREVIEW - seed %d - %d chunks (%3.f%%)",
		m.seed, m.chunks, m.viewport.ScrollPercent()*100)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m PreviewModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m PreviewModel) IsQuitting() bool {
	return m.quitting
}
