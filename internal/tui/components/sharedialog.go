package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/format"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
	"github.com/mont266/gepulse/internal/tui/themes"
)

// shareFailedFallback is shown when the feed gives us nothing usable.
const shareFailedFallback = "Failed to share flip. Please try again."

// panelInnerWidth is the width of the dialog's form fields.
const panelInnerWidth = 46

// ShareFlipModel manages the share-to-feed dialog for a completed
// flip. The dialog never closes itself: cancelling or completing emits
// a message and the parent unmounts it.
type ShareFlipModel struct {
	theme      themes.Theme
	publisher  service.FeedPublisher
	errMsg     string
	titleInput textinput.Model
	message    textarea.Model
	spinner    spinner.Model
	investment model.Investment
	item       model.Item
	flipData   model.FlipData
	focus      shareFocus
	width      int
	height     int
	submitting bool
	shared     bool
	closed     bool
}

// shareFocus identifies the active dialog control.
type shareFocus int

const (
	focusTitle shareFocus = iota
	focusMessage
	focusShare
	focusCancel
)

func (f shareFocus) next() shareFocus {
	if f == focusCancel {
		return focusTitle
	}
	return f + 1
}

func (f shareFocus) prev() shareFocus {
	if f == focusTitle {
		return focusCancel
	}
	return f - 1
}

// NewShareFlipModel creates the share dialog for a completed flip.
func NewShareFlipModel(investment model.Investment, item model.Item, publisher service.FeedPublisher, theme themes.Theme) ShareFlipModel {
	ti := textinput.New()
	ti.Placeholder = "Title (optional)"
	ti.CharLimit = 80
	ti.Width = panelInnerWidth
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Say something about this flip..."
	ta.CharLimit = 500
	ta.ShowLineNumbers = false
	ta.SetWidth(panelInnerWidth)
	ta.SetHeight(4)
	ta.SetValue(defaultShareMessage(item.Name))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := ShareFlipModel{
		theme:      theme,
		publisher:  publisher,
		titleInput: ti,
		message:    ta,
		spinner:    s,
		investment: investment,
		item:       item,
		focus:      focusTitle,
	}
	m.flipData = model.NewFlipData(investment, item)

	return m
}

// defaultShareMessage seeds the message field when the dialog opens.
func defaultShareMessage(itemName string) string {
	return fmt.Sprintf("Just flipped %s on the Grand Exchange!", itemName)
}

// Init returns initial commands.
func (m ShareFlipModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m ShareFlipModel) Update(msg tea.Msg) (ShareFlipModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ShareResultMsg:
		cmds = append(cmds, m.handleShareResult(msg))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	default:
		// Cursor blinks and other component messages go to the
		// focused field.
		cmds = append(cmds, m.updateFocused(msg))
	}

	return m, tea.Batch(cmds...)
}

// handleShareResult applies the publisher's response.
func (m *ShareFlipModel) handleShareResult(msg ShareResultMsg) tea.Cmd {
	if m.closed {
		return nil
	}

	m.submitting = false
	if msg.Err != nil {
		m.errMsg = common.UserMessageFor(msg.Err, shareFailedFallback)
		return nil
	}

	m.shared = true
	investment := m.investment
	post := msg.Post
	return func() tea.Msg {
		return ShareCompletedMsg{Investment: investment, Post: post}
	}
}

// handleKey handles key presses.
func (m *ShareFlipModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Only the close key works while a share is in flight.
	if m.submitting && msg.String() != "esc" {
		return nil
	}

	switch msg.String() {
	case "esc":
		return m.cancel()

	case "tab":
		return m.setFocus(m.focus.next())

	case "shift+tab":
		return m.setFocus(m.focus.prev())

	case "ctrl+s":
		return m.submit()

	case "enter":
		switch m.focus {
		case focusTitle:
			return m.setFocus(focusMessage)
		case focusMessage:
			return m.updateFocused(msg)
		case focusShare:
			return m.submit()
		case focusCancel:
			return m.cancel()
		}
	}

	return m.updateFocused(msg)
}

// handleMouse closes the dialog on backdrop clicks. Clicks inside the
// panel stay contained.
func (m *ShareFlipModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if m.width <= 0 || m.height <= 0 {
		return nil
	}

	left, top, right, bottom := m.panelRect()
	if msg.X < left || msg.X > right || msg.Y < top || msg.Y > bottom {
		return m.cancel()
	}

	return nil
}

// updateFocused routes a message to the focused field.
func (m *ShareFlipModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
	case focusShare, focusCancel:
	}
	return cmd
}

// setFocus moves focus between the dialog controls.
func (m *ShareFlipModel) setFocus(f shareFocus) tea.Cmd {
	m.focus = f
	m.titleInput.Blur()
	m.message.Blur()

	switch f {
	case focusTitle:
		return m.titleInput.Focus()
	case focusMessage:
		return m.message.Focus()
	case focusShare, focusCancel:
	}
	return nil
}

// submit starts the share. Prior errors clear here so a retry reads
// clean until the new result lands.
func (m *ShareFlipModel) submit() tea.Cmd {
	if !m.CanSubmit() {
		return nil
	}

	m.errMsg = ""
	m.submitting = true
	payload := model.NewSharePayload(m.titleInput.Value(), m.message.Value(), m.flipData)

	return tea.Batch(m.spinner.Tick, m.shareCmd(payload))
}

// shareCmd invokes the publisher off the update loop. Timeouts belong
// to the publisher, not the dialog.
func (m ShareFlipModel) shareCmd(payload model.SharePayload) tea.Cmd {
	publisher := m.publisher
	return func() tea.Msg {
		post, err := publisher.ShareFlip(context.Background(), payload)
		return ShareResultMsg{Post: post, Err: err}
	}
}

// cancel emits the cancelled message exactly once.
func (m *ShareFlipModel) cancel() tea.Cmd {
	if m.closed {
		return nil
	}
	m.closed = true
	return func() tea.Msg { return ShareCancelledMsg{} }
}

// CanSubmit reports whether the share control is active: inert while a
// share is in flight, and while both trimmed fields are empty.
func (m ShareFlipModel) CanSubmit() bool {
	if m.submitting {
		return false
	}
	return strings.TrimSpace(m.titleInput.Value()) != "" || strings.TrimSpace(m.message.Value()) != ""
}

// View renders the dialog panel centered over a dimmed backdrop.
func (m ShareFlipModel) View() string {
	panel := m.renderPanel()
	if m.width <= 0 || m.height <= 0 {
		return panel
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		panel,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(m.theme.Border),
	)
}

// renderPanel renders the bordered dialog panel.
func (m ShareFlipModel) renderPanel() string {
	sections := []string{m.renderHeader()}

	if m.errMsg != "" {
		sections = append(sections, m.theme.StatusError.Render("✗ "+m.errMsg))
	}

	sections = append(sections,
		m.renderPreview(),
		m.renderForm(),
		m.renderButtons(),
		m.renderHelp(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return m.theme.RoundedBox.Render(content)
}

// renderHeader renders the dialog title and the close hint.
func (m ShareFlipModel) renderHeader() string {
	title := m.theme.Title.UnsetMargins().Render("Share Flip")
	closeHint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("esc to close")

	gap := panelInnerWidth - lipgloss.Width(title) - lipgloss.Width(closeHint)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", gap), closeHint)
}

// renderPreview renders the flip summary card.
func (m ShareFlipModel) renderPreview() string {
	glyph := m.theme.ItemIcon.Render(themes.GetItemGlyph(m.item.Name))
	name := m.theme.Bold.Render(fmt.Sprintf("%d × %s", m.flipData.Quantity, m.item.Name))
	header := lipgloss.JoinHorizontal(lipgloss.Top, glyph, " ", name)

	profit := format.FormatGPSigned(m.flipData.Profit) + " gp"
	profitStyle := m.theme.StatusSuccess
	if m.flipData.Profit < 0 {
		profitStyle = m.theme.StatusError
	}
	stats := fmt.Sprintf("%s   ROI %s", profitStyle.Render(profit), format.FormatROI(m.flipData.ROI))

	card := lipgloss.JoinVertical(lipgloss.Left, header, stats)
	return m.theme.BorderedBox.Padding(0, 1).Render(card)
}

// renderForm renders the title and message fields.
func (m ShareFlipModel) renderForm() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.fieldLabel("Title", m.focus == focusTitle),
		m.titleInput.View(),
		"",
		m.fieldLabel("Message", m.focus == focusMessage),
		m.message.View(),
	)
}

func (m ShareFlipModel) fieldLabel(label string, focused bool) string {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(label)
	}
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label)
}

// renderButtons renders the share and cancel controls.
func (m ShareFlipModel) renderButtons() string {
	var share string
	if m.submitting {
		share = lipgloss.NewStyle().Padding(0, 2).Foreground(m.theme.Primary).Render(m.spinner.View() + " Sharing...")
	} else {
		share = m.renderButton("Share", m.focus == focusShare, !m.CanSubmit())
	}

	cancel := m.renderButton("Cancel", m.focus == focusCancel, false)

	return lipgloss.NewStyle().MarginTop(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, share, "  ", cancel),
	)
}

func (m ShareFlipModel) renderButton(label string, focused, disabled bool) string {
	switch {
	case disabled:
		return lipgloss.NewStyle().Padding(0, 2).Foreground(m.theme.Muted).Render(label)
	case focused:
		return m.theme.Selected.Padding(0, 2).Render(label)
	default:
		return m.theme.Highlighted.Padding(0, 2).Render(label)
	}
}

// renderHelp renders keyboard shortcuts.
func (m ShareFlipModel) renderHelp() string {
	hints := []string{
		"[Tab] Next field",
		"[Ctrl+S] Share",
		"[Esc] Close",
	}
	return lipgloss.NewStyle().Foreground(m.theme.Muted).MarginTop(1).Render(strings.Join(hints, "  "))
}

// panelRect reports where the centered panel sits in the window.
func (m ShareFlipModel) panelRect() (left, top, right, bottom int) {
	panel := m.renderPanel()
	pw := lipgloss.Width(panel)
	ph := lipgloss.Height(panel)

	left = (m.width - pw) / 2
	top = (m.height - ph) / 2
	return left, top, left + pw - 1, top + ph - 1
}

// SetFlip points the dialog at a different flip and resets the form.
func (m *ShareFlipModel) SetFlip(investment model.Investment, item model.Item) {
	m.investment = investment
	m.item = item
	m.flipData = model.NewFlipData(investment, item)
	m.titleInput.SetValue("")
	m.message.SetValue(defaultShareMessage(item.Name))
	m.errMsg = ""
	m.submitting = false
	m.shared = false
	m.closed = false
}

// Resize updates the component size.
func (m *ShareFlipModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// IsSubmitting reports whether a share is in flight.
func (m ShareFlipModel) IsSubmitting() bool {
	return m.submitting
}

// Shared reports whether the flip was published.
func (m ShareFlipModel) Shared() bool {
	return m.shared
}

// ErrorMessage returns the error banner text, empty when none.
func (m ShareFlipModel) ErrorMessage() string {
	return m.errMsg
}

// TitleValue returns the current title field text.
func (m ShareFlipModel) TitleValue() string {
	return m.titleInput.Value()
}

// MessageValue returns the current message field text.
func (m ShareFlipModel) MessageValue() string {
	return m.message.Value()
}

// FlipData returns the derived numbers the dialog publishes.
func (m ShareFlipModel) FlipData() model.FlipData {
	return m.flipData
}
