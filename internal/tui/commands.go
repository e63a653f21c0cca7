package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mont266/gepulse/internal/model"
	"github.com/mont266/gepulse/internal/service"
)

// loadFlips loads the flip history from storage.
func (m Model) loadFlips() tea.Cmd {
	storage := m.storage
	return func() tea.Msg {
		if storage == nil {
			return flipsLoadedMsg{err: fmt.Errorf("storage not configured")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		flips, err := storage.GetInvestments(ctx, service.InvestmentFilter{})
		if err != nil {
			return flipsLoadedMsg{err: err}
		}

		return flipsLoadedMsg{flips: flips}
	}
}

// loadItemForShare resolves the catalog entry for the flip being
// shared. A missing entry falls back to the identifiers stored on the
// investment so the dialog still opens.
func (m Model) loadItemForShare(inv model.Investment) tea.Cmd {
	storage := m.storage
	return func() tea.Msg {
		fallback := model.Item{ID: inv.ItemID, Name: inv.ItemName}
		if storage == nil {
			return itemLoadedMsg{investment: inv, item: fallback}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		item, err := storage.GetItemByID(ctx, inv.ItemID)
		if err != nil || item == nil {
			return itemLoadedMsg{investment: inv, item: fallback}
		}

		return itemLoadedMsg{investment: inv, item: *item}
	}
}

// recordShare copies the post URL and writes the local share log.
func (m Model) recordShare(inv model.Investment, title string, post *model.FeedPost) tea.Cmd {
	storage := m.storage
	return func() tea.Msg {
		if post == nil {
			return shareRecordedMsg{err: fmt.Errorf("share completed without a post")}
		}

		// Best effort; headless terminals have no clipboard.
		_ = clipboard.WriteAll(post.URL)

		if storage == nil {
			return shareRecordedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		record, err := storage.RecordShare(ctx, &model.ShareRecord{
			InvestmentID: inv.ID,
			PostID:       post.ID,
			PostURL:      post.URL,
			Title:        title,
			SharedAt:     time.Now().UTC(),
		})
		if err != nil {
			return shareRecordedMsg{err: err}
		}

		return shareRecordedMsg{record: record}
	}
}

// expireStatus clears the status line after a short delay.
func expireStatus(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
