// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mont266/gepulse/internal/format"
)

// Palette. Primary is Grand Exchange gold; profits render green and
// losses red to match the in-game ledger.
var (
	PrimaryColor = lipgloss.Color("#FFB845")
	SuccessColor = lipgloss.Color("#2ECC71")
	WarningColor = lipgloss.Color("#F1C40F")
	ErrorColor   = lipgloss.Color("#E74C3C")
	InfoColor    = lipgloss.Color("#5DADE2")
	SubtleColor  = lipgloss.Color("#666666")
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages and profits.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages and losses.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	CoinIcon    = "🪙"
	ShareIcon   = "📣"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the coin icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CoinIcon + " " + title)
}

// FormatProfit renders a signed gp amount, green for gains and red
// for losses.
func FormatProfit(v int64) string {
	rendered := format.FormatGPSigned(v) + " gp"
	if v < 0 {
		return ErrorStyle.Render(rendered)
	}
	return SuccessStyle.Render(rendered)
}
