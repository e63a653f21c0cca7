// Package tui implements the interactive flip browser.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
	"github.com/mont266/gepulse/internal/tui/components"
	"github.com/mont266/gepulse/internal/tui/themes"
)

// State represents the current state of the TUI.
type State int

// Application states.
const (
	StateLoading State = iota
	StateBrowse
	StateShare
	StateHelp
)

// statsWidth is the width of the stats panel in the wide layout.
const statsWidth = 34

// Model holds the main TUI state.
type Model struct {
	theme       themes.Theme
	storage     service.Storage
	publisher   service.FeedPublisher
	lastError   error
	statusText  string
	flips       []model.Investment
	config      Config
	keymap      KeyMap
	flipList    components.FlipListModel
	statsPanel  components.FlipStatsModel
	shareDialog components.ShareFlipModel
	statusSeq   int
	width       int
	height      int
	state       State
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		state:     StateLoading,
		config:    cfg,
		keymap:    DefaultKeyMap(),
		theme:     cfg.Theme,
		storage:   cfg.Storage,
		publisher: cfg.Publisher,
		width:     cfg.Width,
		height:    cfg.Height,
	}

	m.flipList = components.NewFlipList(nil, cfg.Theme)
	m.statsPanel = components.NewFlipStatsModel(cfg.Theme)
	m.handleResize()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.loadFlips()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleGlobalKeys(msg); cmd != nil {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case flipsLoadedMsg:
		cmds = append(cmds, m.handleFlipsLoaded(msg))

	case components.ShareRequestMsg:
		if m.state == StateBrowse {
			return m, m.loadItemForShare(msg.Investment)
		}

	case components.FlipSelectedMsg:
		if m.state != StateBrowse {
			return m, nil
		}
		if !msg.Investment.IsSold() {
			return m, m.setStatus("Only sold flips can be shared")
		}
		return m, m.loadItemForShare(msg.Investment)

	case itemLoadedMsg:
		m.shareDialog = components.NewShareFlipModel(msg.investment, msg.item, m.publisher, m.theme)
		m.shareDialog.Resize(m.width, m.height)
		m.state = StateShare
		return m, m.shareDialog.Init()

	case components.ShareCompletedMsg:
		return m.handleShareCompleted(msg)

	case components.ShareCancelledMsg:
		if m.state == StateShare {
			m.state = StateBrowse
		}
		return m, nil

	case shareRecordedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			cmds = append(cmds, m.setStatus("Shared, but the share log write failed"))
		}

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.statusText = ""
		}

	case errorMsg:
		m.lastError = msg.err
		cmds = append(cmds, m.setStatus(msg.context))
	}

	// Delegate to the active component. Results landing after the
	// dialog closed fall through to the list, which ignores them.
	switch m.state {
	case StateBrowse:
		var cmd tea.Cmd
		m.flipList, cmd = m.flipList.Update(msg)
		cmds = append(cmds, cmd)

	case StateShare:
		var cmd tea.Cmd
		m.shareDialog, cmd = m.shareDialog.Update(msg)
		cmds = append(cmds, cmd)

	case StateLoading, StateHelp:
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateLoading:
		return m.renderLoading()
	case StateShare:
		// The dialog paints its own dimmed backdrop over the window.
		return m.shareDialog.View()
	case StateHelp:
		return m.renderHelp()
	case StateBrowse:
	}

	return m.renderBrowse()
}

// handleGlobalKeys handles keys that work outside of text entry.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return tea.Quit
	}

	switch m.state {
	case StateShare:
		// The dialog owns the keyboard.
		return nil

	case StateHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.state = StateBrowse
		}
		return nil

	case StateLoading:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return tea.Quit
		}
		return nil

	case StateBrowse:
		if m.flipList.Searching() {
			// Keys belong to the filter input.
			return nil
		}

		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.state = StateHelp
		case key.Matches(msg, m.keymap.Refresh):
			return m.loadFlips()
		case key.Matches(msg, m.keymap.ClearScreen):
			return tea.ClearScreen
		}
	}

	return nil
}

// handleFlipsLoaded applies a load result.
func (m *Model) handleFlipsLoaded(msg flipsLoadedMsg) tea.Cmd {
	if m.state == StateLoading {
		m.state = StateBrowse
	}

	if msg.err != nil {
		m.lastError = msg.err
		return m.setStatus("Could not load flips")
	}

	m.flips = msg.flips
	m.flipList.SetFlips(msg.flips)
	m.statsPanel.SetSummary(model.SummarizeFlips(msg.flips))

	return nil
}

// handleShareCompleted closes the dialog and records the share.
func (m Model) handleShareCompleted(msg components.ShareCompletedMsg) (tea.Model, tea.Cmd) {
	// Read the title before the dialog is torn down.
	title := m.shareDialog.TitleValue()
	m.state = StateBrowse

	status := "Flip shared!"
	if msg.Post != nil && msg.Post.URL != "" {
		status = "Flip shared! Post URL copied to clipboard"
	}

	return m, tea.Batch(
		m.setStatus(status),
		m.recordShare(msg.Investment, title, msg.Post),
	)
}

// setStatus shows a transient message in the status bar.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusText = text
	m.statusSeq++
	return expireStatus(m.statusSeq)
}

// wideLayout reports whether the stats panel gets its own column.
func (m Model) wideLayout() bool {
	return m.config.ShowStats && m.width >= 100
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	// Status bar takes the bottom line.
	usableHeight := m.height - 1

	if m.wideLayout() {
		listWidth := m.width - statsWidth - 3
		m.flipList.Resize(listWidth, usableHeight)
		m.statsPanel.SetCompact(false)
		m.statsPanel.Resize(statsWidth, usableHeight)
	} else {
		listHeight := usableHeight
		if m.config.ShowStats {
			listHeight -= 3
		}
		m.flipList.Resize(m.width, listHeight)
		m.statsPanel.SetCompact(true)
		m.statsPanel.Resize(m.width, 3)
	}

	m.shareDialog.Resize(m.width, m.height)
}
