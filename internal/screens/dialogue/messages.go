package dialogue

import (
	dlg "github.com/abhisek/socra/internal/dialogue"
)

// startedMsg is sent when the dialogue has been opened and the first
// question is ready.
type startedMsg struct {
	Dialogue *dlg.Dialogue
	Err      error
}

// exchangeMsg is sent when a learner response has been processed.
type exchangeMsg struct {
	Turn *dlg.Turn
	Err  error
}

// completedMsg is sent when the dialogue has been finalized.
type completedMsg struct {
	Summary *dlg.Summary
	Err     error
}
