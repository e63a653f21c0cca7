package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	title := m.theme.Title.Render("GE Pulse")
	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading your flips...")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		hint,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderBrowse renders the flip list with the stats panel.
func (m Model) renderBrowse() string {
	var content string

	if m.wideLayout() {
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.flipList.View(),
			m.theme.Normal.Render(" │ "),
			m.statsPanel.View(),
		)
	} else {
		content = m.flipList.View()
		if m.config.ShowStats {
			content = lipgloss.JoinVertical(
				lipgloss.Left,
				content,
				m.statsPanel.View(),
			)
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderStatusBar(),
	)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := m.stateName()
	center := m.statusText
	right := "? Help"

	spacing := m.width - 4 - len(left) - lipgloss.Width(center) - len(right)
	if spacing < 2 {
		spacing = 2
	}
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := fmt.Sprintf("%s%s%s%s%s",
		m.theme.StatusInfo.Render(left),
		strings.Repeat(" ", leftPad),
		m.theme.Normal.Render(center),
		strings.Repeat(" ", rightPad),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right),
	)

	return m.theme.Normal.
		Width(m.width).
		MaxWidth(m.width).
		Render(status)
}

// stateName names the current state for the status bar.
func (m Model) stateName() string {
	switch m.state {
	case StateLoading:
		return "Loading"
	case StateShare:
		return "Share"
	case StateHelp:
		return "Help"
	case StateBrowse:
	}
	return "Browse"
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render("GE Pulse - Help")

	sections := []struct {
		title string
		items []string
	}{
		{
			"Navigation",
			[]string{
				"↑/k, ↓/j    Move up/down",
				"g/G         Go to start/end",
				"PgUp/PgDn   Page up/down",
			},
		},
		{
			"Flips",
			[]string{
				"s           Share selected flip",
				"Enter       Share selected flip",
				"/           Filter by item name",
				"r           Refresh from storage",
			},
		},
		{
			"Share dialog",
			[]string{
				"Tab         Next field",
				"Ctrl+S      Share",
				"Esc         Close without sharing",
			},
		},
		{
			"Application",
			[]string{
				"q/Esc       Quit",
				"Ctrl+C      Force quit",
				"Ctrl+L      Clear screen",
			},
		},
	}

	var content []string
	for _, section := range sections {
		content = append(content, m.theme.Subtitle.Render(section.title))

		for _, item := range section.items {
			parts := strings.SplitN(item, "  ", 2)
			if len(parts) == 2 {
				line := fmt.Sprintf("  %-12s %s",
					lipgloss.NewStyle().Foreground(m.theme.Primary).Render(parts[0]),
					m.theme.Normal.Render(strings.TrimSpace(parts[1])),
				)
				content = append(content, line)
			}
		}
		content = append(content, "")
	}

	helpText := lipgloss.JoinVertical(lipgloss.Left, content...)
	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Width(52).
			MaxHeight(m.height-2).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					title,
					"",
					helpText,
					footer,
				),
			),
	)
}
