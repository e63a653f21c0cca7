package tui

import (
	"github.com/mont266/gepulse/internal/model"
)

// Data loading messages.
type flipsLoadedMsg struct {
	err   error
	flips []model.Investment
}

// itemLoadedMsg carries the catalog entry for the flip about to be
// shared. When the catalog has no entry the item is built from the
// identifiers stored on the investment.
type itemLoadedMsg struct {
	investment model.Investment
	item       model.Item
}

// shareRecordedMsg reports the local share log write that follows a
// successful publish.
type shareRecordedMsg struct {
	err    error
	record *model.ShareRecord
}

// statusExpiredMsg clears a transient status line message. The
// sequence number keeps an old timer from wiping a newer message.
type statusExpiredMsg struct {
	seq int
}

// errorMsg reports a failed background operation.
type errorMsg struct {
	err     error
	context string
}
