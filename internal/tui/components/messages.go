package components

import "github.com/mont266/gepulse/internal/model"

// FlipSelectedMsg is sent when a flip is selected in the list.
type FlipSelectedMsg struct {
	Investment model.Investment
	Index      int
}

// ShareRequestMsg asks the parent to open the share dialog for a flip.
type ShareRequestMsg struct {
	Investment model.Investment
}

// ShareResultMsg carries the publisher's response back to the dialog.
type ShareResultMsg struct {
	Err  error
	Post *model.FeedPost
}

// ShareCompletedMsg tells the parent a flip was shared successfully.
// The parent owns closing the dialog and recording the share.
type ShareCompletedMsg struct {
	Investment model.Investment
	Post       *model.FeedPost
}

// ShareCancelledMsg tells the parent the share dialog was dismissed.
type ShareCancelledMsg struct{}

// FocusFlipMsg scrolls the flip list to a specific row.
type FocusFlipMsg struct {
	Index int
}
