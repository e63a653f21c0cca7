package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mont266/gepulse/internal/format"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/tui/themes"
)

// FlipListModel manages the flip history table.
type FlipListModel struct {
	theme       themes.Theme
	search      string
	flips       []model.Investment
	filtered    []model.Investment
	searchInput textinput.Model
	table       table.Model
	mode        ListMode
	width       int
	height      int
}

// ListMode represents the current mode of the list.
type ListMode int

// List modes.
const (
	ModeNormal ListMode = iota
	ModeSearch
)

// NewFlipList creates a new flip list.
func NewFlipList(flips []model.Investment, theme themes.Theme) FlipListModel {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Item", Width: 22},
		{Title: "Qty", Width: 8},
		{Title: "Buy", Width: 10},
		{Title: "Sell", Width: 10},
		{Title: "Profit", Width: 12},
		{Title: "ROI", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	// Apply theme
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	// Setup search input
	searchInput := textinput.New()
	searchInput.Placeholder = "Filter by item name..."
	searchInput.CharLimit = 50

	m := FlipListModel{
		flips:       flips,
		searchInput: searchInput,
		table:       t,
		mode:        ModeNormal,
		theme:       theme,
		width:       80,
		height:      24,
	}
	m.applyFilters()
	m.updateColumnWidths()

	return m
}

// Update handles messages.
func (m FlipListModel) Update(msg tea.Msg) (FlipListModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case ModeNormal:
			cmds = append(cmds, m.handleNormalMode(msg))
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		case ModeSearch:
			cmds = append(cmds, m.handleSearchMode(msg))
		}

	case FocusFlipMsg:
		m.table.SetCursor(msg.Index)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(1, m.height-6))
		m.updateColumnWidths()
	}

	return m, tea.Batch(cmds...)
}

// handleNormalMode handles key presses in normal mode. Navigation is
// the table's own keymap.
func (m *FlipListModel) handleNormalMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		m.mode = ModeSearch
		m.searchInput.Focus()
		return textinput.Blink

	case "s":
		return m.shareSelected()

	case "enter":
		if flip, ok := m.SelectedFlip(); ok {
			index := m.table.Cursor()
			return func() tea.Msg {
				return FlipSelectedMsg{Investment: flip, Index: index}
			}
		}
	}

	return nil
}

// handleSearchMode handles key presses in search mode.
func (m *FlipListModel) handleSearchMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.search = m.searchInput.Value()
		m.applyFilters()
		m.mode = ModeNormal
		m.searchInput.Blur()

	case "esc":
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.search = ""
		m.applyFilters()

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return cmd
	}

	return nil
}

// shareSelected emits a share request for the selected sold flip.
func (m *FlipListModel) shareSelected() tea.Cmd {
	flip, ok := m.SelectedFlip()
	if !ok || !flip.IsSold() {
		return nil
	}

	return func() tea.Msg {
		return ShareRequestMsg{Investment: flip}
	}
}

// View renders the flip list.
func (m FlipListModel) View() string {
	if m.height < 10 {
		return "Terminal too small"
	}

	if m.mode == ModeSearch {
		return m.renderSearchView()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.table.View(),
		m.renderFooter(),
	)
}

// renderSearchView renders the search interface.
func (m FlipListModel) renderSearchView() string {
	searchBox := m.theme.BorderedBox.
		Width(60).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Title.Render("Filter Flips"),
			m.searchInput.View(),
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press Enter to filter, Esc to clear"),
		))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		searchBox,
	)
}

// renderHeader renders the list title and session totals.
func (m FlipListModel) renderHeader() string {
	title := m.theme.Title.Render("Flip Log")

	summary := model.SummarizeFlips(m.filtered)
	status := fmt.Sprintf("%d flips", summary.TotalFlips)
	if summary.TotalFlips > 0 {
		status += fmt.Sprintf(" | %s gp | %.0f%% in profit",
			format.FormatGPSigned(summary.TotalProfit),
			summary.WinRate,
		)
	}

	if m.search != "" {
		status += fmt.Sprintf(" | Filter: %q", m.search)
	}

	subtitle := m.theme.Subtitle.Render(status)

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

// renderFooter renders the list footer.
func (m FlipListModel) renderFooter() string {
	hints := []string{
		"[↑↓] Navigate",
		"[s] Share",
		"[/] Filter",
	}

	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(strings.Join(hints, "  "))
}

// buildTableRows builds rows for the table.
func (m FlipListModel) buildTableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.filtered))

	for _, flip := range m.filtered {
		date := "open"
		sell := "-"
		profit := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("-")
		roi := "-"

		if flip.IsSold() {
			if flip.SoldAt != nil {
				date = flip.SoldAt.Format("2006-01-02")
			}
			if flip.SellPrice != nil {
				sell = format.FormatGP(*flip.SellPrice)
			}

			p := flip.Profit()
			profitStyle := m.theme.StatusSuccess
			if p < 0 {
				profitStyle = m.theme.StatusError
			}
			profit = profitStyle.Render(format.FormatGPSigned(p))
			roi = format.FormatROI(flip.ROI())
		}

		rows = append(rows, table.Row{
			date,
			truncate(flip.ItemName, 25),
			format.FormatCommas(flip.Quantity),
			format.FormatGP(flip.PurchasePrice),
			sell,
			profit,
			roi,
		})
	}

	return rows
}

// applyFilters rebuilds the visible rows from the current search.
func (m *FlipListModel) applyFilters() {
	m.filtered = m.flips

	if m.search != "" {
		searchLower := strings.ToLower(m.search)
		var filtered []model.Investment
		for _, flip := range m.flips {
			if strings.Contains(strings.ToLower(flip.ItemName), searchLower) {
				filtered = append(filtered, flip)
			}
		}
		m.filtered = filtered
	}

	m.table.SetRows(m.buildTableRows())
	if m.table.Cursor() >= len(m.filtered) {
		m.table.SetCursor(max(0, len(m.filtered)-1))
	}
}

// SetFlips replaces the listed flips.
func (m *FlipListModel) SetFlips(flips []model.Investment) {
	m.flips = flips
	m.applyFilters()
}

// Searching reports whether the filter input owns the keyboard.
func (m FlipListModel) Searching() bool {
	return m.mode == ModeSearch
}

// SelectedFlip returns the flip under the cursor.
func (m FlipListModel) SelectedFlip() (model.Investment, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.filtered) {
		return model.Investment{}, false
	}
	return m.filtered[idx], true
}

// Resize updates the component size.
func (m *FlipListModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Header is 3 lines, footer 1, table chrome 2.
	m.table.SetHeight(max(1, height-6))
	m.updateColumnWidths()
}

// updateColumnWidths adjusts column widths to the available space.
func (m *FlipListModel) updateColumnWidths() {
	availableWidth := m.width - 4
	if availableWidth < 70 {
		availableWidth = 70
	}

	columns := []table.Column{
		{Title: "Date", Width: max(10, int(float64(availableWidth)*0.12))},
		{Title: "Item", Width: max(16, int(float64(availableWidth)*0.28))},
		{Title: "Qty", Width: max(7, int(float64(availableWidth)*0.10))},
		{Title: "Buy", Width: max(9, int(float64(availableWidth)*0.12))},
		{Title: "Sell", Width: max(9, int(float64(availableWidth)*0.12))},
		{Title: "Profit", Width: max(10, int(float64(availableWidth)*0.15))},
		{Title: "ROI", Width: max(8, int(float64(availableWidth)*0.11))},
	}

	m.table.SetColumns(columns)
}

// Helper to truncate strings.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
