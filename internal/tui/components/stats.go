// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mont266/gepulse/internal/format"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/tui/themes"
)

// FlipStatsModel displays aggregate statistics for the loaded flips.
type FlipStatsModel struct {
	theme       themes.Theme
	summary     model.FlipSummary
	progressBar progress.Model
	width       int
	height      int
	compact     bool
}

// NewFlipStatsModel creates a new stats panel.
func NewFlipStatsModel(theme themes.Theme) FlipStatsModel {
	// The win rate bar fills red to green.
	prog := progress.New(progress.WithGradient(string(theme.Error), string(theme.Success)))
	prog.ShowPercentage = false
	prog.Width = 30

	return FlipStatsModel{
		progressBar: prog,
		theme:       theme,
	}
}

// Update handles messages.
func (m FlipStatsModel) Update(msg tea.Msg) (FlipStatsModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.progressBar.Width = min(m.width-8, 40)
	}

	return m, nil
}

// View renders the stats panel.
func (m FlipStatsModel) View() string {
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

// renderFull renders the full stats view.
func (m FlipStatsModel) renderFull() string {
	sections := []string{
		m.renderTotals(),
		m.renderWinRate(),
	}

	if m.summary.BestItemName != "" {
		sections = append(sections, m.renderBestFlip())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCompact renders a one-line stats view.
func (m FlipStatsModel) renderCompact() string {
	stats := fmt.Sprintf(
		"%d flips | %s gp | %.0f%% in profit",
		m.summary.TotalFlips,
		format.FormatGPSigned(m.summary.TotalProfit),
		m.summary.WinRate,
	)

	return m.theme.Box.Render(stats)
}

// renderTotals renders the profit figures.
func (m FlipStatsModel) renderTotals() string {
	title := m.theme.Subtitle.Render("Totals")

	profit := format.FormatGPSigned(m.summary.TotalProfit) + " gp"
	profitStyle := m.theme.StatusSuccess
	if m.summary.TotalProfit < 0 {
		profitStyle = m.theme.StatusError
	}

	lines := []string{
		fmt.Sprintf("Flips:   %d", m.summary.TotalFlips),
		fmt.Sprintf("Profit:  %s", profitStyle.Render(profit)),
		fmt.Sprintf("Tax:     %s gp", format.FormatCommas(m.summary.TotalTax)),
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.theme.Normal.Render(lines[0]),
		m.theme.Normal.Render(lines[1]),
		m.theme.Normal.Render(lines[2]),
	)
}

// renderWinRate renders the win rate bar.
func (m FlipStatsModel) renderWinRate() string {
	title := m.theme.Subtitle.Render("Win Rate")

	bar := m.progressBar.ViewAs(m.summary.WinRate / 100)
	label := fmt.Sprintf("%.0f%% of flips in profit", m.summary.WinRate)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		bar,
		m.theme.Normal.Render(label),
	)
}

// renderBestFlip renders the single best result.
func (m FlipStatsModel) renderBestFlip() string {
	title := m.theme.Subtitle.Render("Best Flip")

	glyph := themes.GetItemGlyph(m.summary.BestItemName)
	line := fmt.Sprintf("%s %s  %s gp",
		glyph,
		m.summary.BestItemName,
		format.FormatGPSigned(m.summary.BestProfit),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.theme.Normal.Render(line),
	)
}

// SetSummary replaces the displayed aggregates.
func (m *FlipStatsModel) SetSummary(summary model.FlipSummary) {
	m.summary = summary
}

// Summary returns the displayed aggregates.
func (m FlipStatsModel) Summary() model.FlipSummary {
	return m.summary
}

// SetCompact sets compact mode.
func (m *FlipStatsModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize updates the component size.
func (m *FlipStatsModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.progressBar.Width = min(width-8, 40)
}
