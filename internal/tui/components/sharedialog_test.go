package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mont266/gepulse/internal/common"
	"github.com/mont266/gepulse/internal/feed"
	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/tui/themes"
)

func testShareFixture() (model.Investment, model.Item) {
	soldAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	sell := int64(1500)
	inv := model.Investment{
		ID:            7,
		ItemID:        560,
		ItemName:      "Death rune",
		Quantity:      10,
		PurchasePrice: 1000,
		SellPrice:     &sell,
		TaxPaid:       500,
		Status:        model.StatusSold,
		PurchasedAt:   soldAt.Add(-24 * time.Hour),
		SoldAt:        &soldAt,
	}
	item := model.Item{ID: 560, Name: "Death rune"}
	return inv, item
}

func newTestDialog() (ShareFlipModel, *feed.MockPublisher) {
	inv, item := testShareFixture()
	publisher := feed.NewMockPublisher()
	return NewShareFlipModel(inv, item, publisher, themes.Default), publisher
}

// collectMsgs runs a command tree and flattens the messages it produces.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collectMsgs(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func findShareResult(msgs []tea.Msg) (ShareResultMsg, bool) {
	for _, msg := range msgs {
		if result, ok := msg.(ShareResultMsg); ok {
			return result, true
		}
	}
	return ShareResultMsg{}, false
}

func TestNewShareFlipModel(t *testing.T) {
	m, _ := newTestDialog()

	assert.Empty(t, m.TitleValue(), "title starts empty")
	assert.Equal(t, "Just flipped Death rune on the Grand Exchange!", m.MessageValue())
	assert.Equal(t, focusTitle, m.focus)
	assert.False(t, m.submitting)
	assert.False(t, m.shared)
	assert.False(t, m.closed)
	assert.Empty(t, m.errMsg)
	assert.NotNil(t, m.Init())

	data := m.FlipData()
	assert.Equal(t, int64(560), data.ItemID)
	assert.Equal(t, "Death rune", data.ItemName)
	assert.Equal(t, int64(4500), data.Profit)
	assert.InDelta(t, 45.0, data.ROI, 0.001)
}

func TestShareFlipModel_CanSubmit(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		message    string
		submitting bool
		want       bool
	}{
		{
			name:    "message only",
			message: "Just flipped Death rune on the Grand Exchange!",
			want:    true,
		},
		{
			name:  "title only",
			title: "Big win",
			want:  true,
		},
		{
			name: "both empty",
			want: false,
		},
		{
			name:    "whitespace only",
			title:   "   ",
			message: "\n\t ",
			want:    false,
		},
		{
			name:       "submitting blocks resubmit",
			message:    "still here",
			submitting: true,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestDialog()
			m.titleInput.SetValue(tt.title)
			m.message.SetValue(tt.message)
			m.submitting = tt.submitting

			assert.Equal(t, tt.want, m.CanSubmit())
		})
	}
}

func TestShareFlipModel_Submit(t *testing.T) {
	m, publisher := newTestDialog()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Empty(t, m.errMsg)

	result, ok := findShareResult(collectMsgs(cmd))
	require.True(t, ok, "submit should invoke the publisher")
	assert.NoError(t, result.Err)
	require.NotNil(t, result.Post)
	assert.Equal(t, "post-1", result.Post.ID)

	assert.Equal(t, 1, publisher.ShareCallCount)
	require.NotNil(t, publisher.LastPayload)
	assert.Nil(t, publisher.LastPayload.Title, "blank title is sent as null")
	require.NotNil(t, publisher.LastPayload.Content)
	assert.Equal(t, "Just flipped Death rune on the Grand Exchange!", *publisher.LastPayload.Content)
	assert.Equal(t, int64(4500), publisher.LastPayload.FlipData.Profit)
}

func TestShareFlipModel_Submit_TrimsFields(t *testing.T) {
	m, publisher := newTestDialog()
	m.titleInput.SetValue("  Big win  ")
	m.message.SetValue("  worth the wait  ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	_, ok := findShareResult(collectMsgs(cmd))
	require.True(t, ok)

	require.NotNil(t, publisher.LastPayload)
	require.NotNil(t, publisher.LastPayload.Title)
	assert.Equal(t, "Big win", *publisher.LastPayload.Title)
	require.NotNil(t, publisher.LastPayload.Content)
	assert.Equal(t, "worth the wait", *publisher.LastPayload.Content)
}

func TestShareFlipModel_Submit_RequiresInput(t *testing.T) {
	m, publisher := newTestDialog()
	m.titleInput.SetValue("")
	m.message.SetValue("   ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.Equal(t, 0, publisher.ShareCallCount)
}

func TestShareFlipModel_ShareSuccess(t *testing.T) {
	m, _ := newTestDialog()
	m.submitting = true

	post := &model.FeedPost{ID: "post-9", URL: "https://gepulse.app/flips/post-9"}
	m, cmd := m.Update(ShareResultMsg{Post: post})

	assert.False(t, m.submitting)
	assert.True(t, m.shared)
	assert.False(t, m.closed, "the parent closes the dialog, not the dialog itself")

	require.NotNil(t, cmd)
	completed, ok := cmd().(ShareCompletedMsg)
	require.True(t, ok, "success should notify the parent")
	assert.Equal(t, int64(7), completed.Investment.ID)
	assert.Equal(t, post, completed.Post)
}

func TestShareFlipModel_ShareFailure(t *testing.T) {
	m, _ := newTestDialog()
	m.titleInput.SetValue("Big win")
	m.submitting = true

	m, cmd := m.Update(ShareResultMsg{Err: common.NewUserError("Network error", errors.New("dial tcp: connection refused"))})

	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.False(t, m.shared)
	assert.Equal(t, "Network error", m.errMsg, "feed-provided message shows verbatim")

	// The user's text survives a failed share.
	assert.Equal(t, "Big win", m.TitleValue())
	assert.Equal(t, "Just flipped Death rune on the Grand Exchange!", m.MessageValue())

	assert.Contains(t, m.View(), "Network error")
}

func TestShareFlipModel_ShareFailure_GenericMessage(t *testing.T) {
	m, _ := newTestDialog()
	m.submitting = true

	m, _ = m.Update(ShareResultMsg{Err: errors.New("unexpected EOF")})

	assert.Equal(t, shareFailedFallback, m.errMsg, "raw errors never reach the banner")
}

func TestShareFlipModel_ResubmitClearsError(t *testing.T) {
	m, _ := newTestDialog()
	m.submitting = true
	m, _ = m.Update(ShareResultMsg{Err: errors.New("unexpected EOF")})
	require.NotEmpty(t, m.errMsg)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	require.NotNil(t, cmd)
	assert.Empty(t, m.errMsg, "retry starts with a clean banner")
	assert.True(t, m.submitting)
}

func TestShareFlipModel_KeysBlockedWhileSubmitting(t *testing.T) {
	m, publisher := newTestDialog()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.submitting)
	require.Equal(t, 1, publisher.ShareCallCount)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.Empty(t, m.TitleValue(), "typing is ignored mid-share")

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd, "no second share while one is in flight")
	assert.Equal(t, 1, publisher.ShareCallCount)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Equal(t, focusTitle, m.focus)
}

func TestShareFlipModel_EscapeCancels(t *testing.T) {
	m, _ := newTestDialog()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, ShareCancelledMsg{}, cmd())
	assert.True(t, m.closed)

	// A second escape is a no-op: cancelled fires exactly once.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
}

func TestShareFlipModel_EscapeWhileSubmitting(t *testing.T) {
	m, _ := newTestDialog()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.submitting)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, ShareCancelledMsg{}, cmd())
	assert.True(t, m.closed)
}

func TestShareFlipModel_LateResultAfterCancel(t *testing.T) {
	m, _ := newTestDialog()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.closed)

	m, cmd := m.Update(ShareResultMsg{Err: errors.New("unexpected EOF")})

	assert.Nil(t, cmd)
	assert.Empty(t, m.errMsg, "results landing after close are dropped")
	assert.False(t, m.shared)
}

func TestShareFlipModel_MouseBackdropCancels(t *testing.T) {
	m, _ := newTestDialog()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := m.Update(tea.MouseMsg{
		X:      0,
		Y:      0,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	require.NotNil(t, cmd)
	assert.IsType(t, ShareCancelledMsg{}, cmd())
	assert.True(t, m.closed)
}

func TestShareFlipModel_MouseInsidePanelContained(t *testing.T) {
	m, _ := newTestDialog()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := m.Update(tea.MouseMsg{
		X:      50,
		Y:      20,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	assert.Nil(t, cmd)
	assert.False(t, m.closed, "clicks inside the panel never close it")
}

func TestShareFlipModel_MouseIgnoredBeforeSizing(t *testing.T) {
	m, _ := newTestDialog()

	m, cmd := m.Update(tea.MouseMsg{
		X:      0,
		Y:      0,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	assert.Nil(t, cmd)
	assert.False(t, m.closed)
}

func TestShareFlipModel_EnterOnButtons(t *testing.T) {
	m, publisher := newTestDialog()
	m.focus = focusShare

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	_, ok := findShareResult(collectMsgs(cmd))
	assert.True(t, ok)
	assert.Equal(t, 1, publisher.ShareCallCount)

	m2, _ := newTestDialog()
	m2.focus = focusCancel
	m2, cmd = m2.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, ShareCancelledMsg{}, cmd())
	assert.True(t, m2.closed)
}

func TestShareFlipModel_TabCyclesFocus(t *testing.T) {
	m, _ := newTestDialog()
	require.Equal(t, focusTitle, m.focus)

	order := []shareFocus{focusMessage, focusShare, focusCancel, focusTitle}
	for _, want := range order {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, want, m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusCancel, m.focus)
}

func TestShareFlipModel_View(t *testing.T) {
	m, _ := newTestDialog()
	view := m.View()

	assert.Contains(t, view, "Share Flip")
	assert.Contains(t, view, "esc to close")
	assert.Contains(t, view, "Death rune")
	assert.Contains(t, view, "+4.5k gp")
	assert.Contains(t, view, "45.00%")
	assert.Contains(t, view, "Title")
	assert.Contains(t, view, "Message")
	assert.Contains(t, view, "Cancel")
	assert.Contains(t, view, "[Ctrl+S] Share")
}

func TestShareFlipModel_View_Submitting(t *testing.T) {
	m, _ := newTestDialog()
	m.submitting = true

	assert.Contains(t, m.View(), "Sharing...")
}

func TestShareFlipModel_View_CoversWindowWhenSized(t *testing.T) {
	m, _ := newTestDialog()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()

	assert.Equal(t, 100, lipgloss.Width(view))
	assert.Equal(t, 40, lipgloss.Height(view))
	assert.True(t, strings.Contains(view, "░"), "backdrop is dimmed")
}

func TestShareFlipModel_SetFlip(t *testing.T) {
	m, _ := newTestDialog()
	m.titleInput.SetValue("stale title")
	m.submitting = true
	m, _ = m.Update(ShareResultMsg{Err: errors.New("unexpected EOF")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	soldAt := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
	sell := int64(220)
	inv := model.Investment{
		ID:            8,
		ItemID:        536,
		ItemName:      "Dragon bones",
		Quantity:      100,
		PurchasePrice: 200,
		SellPrice:     &sell,
		Status:        model.StatusSold,
		SoldAt:        &soldAt,
	}
	item := model.Item{ID: 536, Name: "Dragon bones"}
	m.SetFlip(inv, item)

	assert.Empty(t, m.TitleValue())
	assert.Equal(t, "Just flipped Dragon bones on the Grand Exchange!", m.MessageValue())
	assert.Empty(t, m.errMsg)
	assert.False(t, m.submitting)
	assert.False(t, m.shared)
	assert.False(t, m.closed)
	assert.Equal(t, int64(2000), m.FlipData().Profit)
}

func TestShareFlipModel_WindowSize(t *testing.T) {
	m, _ := newTestDialog()

	m, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
}
