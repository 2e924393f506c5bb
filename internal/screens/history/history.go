package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/socra/internal/router"
	"github.com/abhisek/socra/internal/screen"
	"github.com/abhisek/socra/internal/store"
	"github.com/abhisek/socra/internal/ui/layout"
	"github.com/abhisek/socra/internal/ui/theme"
)

const historyLimit = 50

type loadedMsg struct {
	Events []store.Event
	Err    error
}

// HistoryScreen lists the learner's recent dialogue events.
type HistoryScreen struct {
	events    *store.EventRepo
	learnerID string

	rows   []store.Event
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(events *store.EventRepo, learnerID string) *HistoryScreen {
	return &HistoryScreen{events: events, learnerID: learnerID}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		rows, err := s.events.Recent(context.Background(), s.learnerID, historyLimit)
		return loadedMsg{Events: rows, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.rows = msg.Events
		s.loaded = true
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Error: " + s.errMsg)
	}
	if !s.loaded {
		return theme.Hint.Render("\n\n  Loading...")
	}
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Nothing here yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	shown := 0
	for _, e := range s.rows {
		if shown >= height-2 {
			break
		}
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render(e.Timestamp.Local().Format("Jan 02 15:04")))
		b.WriteString("  ")
		b.WriteString(describeEvent(e))
		b.WriteString("\n")
		shown++
	}
	return b.String()
}

// describeEvent renders one event row in a human-readable form.
func describeEvent(e store.Event) string {
	var data store.DialogueEventData
	_ = json.Unmarshal(e.Data, &data)

	switch e.Type {
	case store.EventDialogueStarted:
		return theme.Body.Render(fmt.Sprintf("started %q (%s)", data.Concept, data.Persona))
	case store.EventDialogueCompleted:
		line := fmt.Sprintf("completed %q: %s after %d exchanges, mastery %+.2f",
			data.Concept, data.Understanding, data.ExchangeCount, data.Adjustment)
		if data.Discovery {
			line += " ★"
		}
		return lipgloss.NewStyle().Foreground(theme.Success).Render(line)
	case store.EventDialogueAbandoned:
		return theme.Hint.Render(fmt.Sprintf("left %q after %d exchanges", data.Concept, data.ExchangeCount))
	default:
		return theme.Hint.Render(e.Type)
	}
}
