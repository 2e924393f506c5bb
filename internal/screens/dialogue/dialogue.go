package dialogue

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/socra/internal/adapt"
	dlg "github.com/abhisek/socra/internal/dialogue"
	"github.com/abhisek/socra/internal/llm"
	"github.com/abhisek/socra/internal/router"
	"github.com/abhisek/socra/internal/screen"
	"github.com/abhisek/socra/internal/screens/summary"
	"github.com/abhisek/socra/internal/store"
	"github.com/abhisek/socra/internal/ui/components"
	"github.com/abhisek/socra/internal/ui/layout"
)

// Config holds the dialogue screen's collaborators and parameters.
type Config struct {
	Orch      *dlg.Orchestrator
	Provider  llm.Provider // nil when running offline
	Events    *store.EventRepo
	LearnerID string
	Concept   string
	Persona   dlg.Persona
}

// transcriptEntry is one rendered line pair of the conversation.
type transcriptEntry struct {
	Tutor   string
	Learner string
}

// Screen runs one tutoring dialogue as a chat.
type Screen struct {
	cfg Config

	d          *dlg.Dialogue
	transcript []transcriptEntry
	input      components.TextInput
	waiting    bool
	finishing  bool
	confirming bool
	notice     string
	errMsg     string

	// questionShownAt anchors the response latency measurement.
	questionShownAt time.Time
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the dialogue screen.
func New(cfg Config) *Screen {
	return &Screen{
		cfg:   cfg,
		input: components.NewTextInput("Your answer...", false, 0),
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.start(), s.input.Init())
}

func (s *Screen) Title() string {
	return "Dialogue"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave dialogue"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)
	case exchangeMsg:
		return s.handleExchange(msg)
	case completedMsg:
		return s.handleCompleted(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.waiting && !s.confirming && s.d != nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.d = msg.Dialogue
	s.questionShownAt = time.Now()
	return s, nil
}

func (s *Screen) handleExchange(msg exchangeMsg) (screen.Screen, tea.Cmd) {
	s.waiting = false
	if msg.Err != nil {
		var unavailable *dlg.ErrGenerationUnavailable
		if errors.As(msg.Err, &unavailable) {
			// Nothing was recorded; the learner can resend the same answer.
			s.notice = "The tutor is unreachable right now. Press Enter to retry."
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	turn := msg.Turn
	s.input = components.NewTextInput("Your answer...", false, 0)
	s.notice = interventionNotice(turn.Intervention)

	if turn.Completed {
		s.finishing = true
		return s, s.complete()
	}

	s.questionShownAt = time.Now()
	return s, s.input.Init()
}

func (s *Screen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: summary.New(msg.Summary, s.cfg.Provider),
		}
	}
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s, s.abandon()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.d != nil && s.d.Active() {
			s.confirming = true
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return s.submit()
	}

	if !s.waiting && s.d != nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit sends the typed response through the orchestrator.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	if s.d == nil || s.waiting || s.finishing {
		return s, nil
	}
	response := strings.TrimSpace(s.input.Value())
	if response == "" {
		return s, nil
	}

	latencyMs := int(time.Since(s.questionShownAt).Milliseconds())
	s.transcript = append(s.transcript, transcriptEntry{
		Tutor:   s.d.CurrentQuestion,
		Learner: response,
	})
	s.waiting = true
	s.notice = ""

	d := s.d
	orch := s.cfg.Orch
	return s, func() tea.Msg {
		turn, err := orch.ProcessExchange(context.Background(), d, response, latencyMs)
		return exchangeMsg{Turn: turn, Err: err}
	}
}

// start opens the dialogue asynchronously and logs the start event.
func (s *Screen) start() tea.Cmd {
	cfg := s.cfg
	s.waiting = true
	return func() tea.Msg {
		ctx := context.Background()
		d, err := cfg.Orch.Start(ctx, dlg.StartInput{
			LearnerID: cfg.LearnerID,
			SkillID:   skillID(cfg.Concept),
			Concept:   cfg.Concept,
			Persona:   cfg.Persona,
		})
		if err != nil {
			return startedMsg{Err: err}
		}
		if cfg.Events != nil {
			_ = cfg.Events.AppendDialogue(ctx, store.EventDialogueStarted, cfg.LearnerID, d.ID, store.DialogueEventData{
				SkillID: d.SkillID,
				Concept: d.Concept,
				Persona: string(d.Persona),
			})
		}
		return startedMsg{Dialogue: d}
	}
}

// complete finalizes the dialogue and logs the completion event.
func (s *Screen) complete() tea.Cmd {
	d := s.d
	cfg := s.cfg
	return func() tea.Msg {
		ctx := context.Background()
		sum, err := cfg.Orch.Complete(ctx, d)
		if err != nil {
			return completedMsg{Err: err}
		}
		if cfg.Events != nil {
			_ = cfg.Events.AppendDialogue(ctx, store.EventDialogueCompleted, cfg.LearnerID, d.ID, store.DialogueEventData{
				SkillID:       d.SkillID,
				Concept:       d.Concept,
				Persona:       string(d.Persona),
				ExchangeCount: sum.Exchanges,
				Understanding: string(sum.Understanding),
				Discovery:     sum.DiscoveryAchieved,
				Adjustment:    sum.MasteryAdjustment,
			})
		}
		return completedMsg{Summary: sum}
	}
}

// abandon ends the dialogue without a profile update.
func (s *Screen) abandon() tea.Cmd {
	d := s.d
	cfg := s.cfg
	return func() tea.Msg {
		if d != nil && d.Active() {
			_ = cfg.Orch.Abandon(d)
			if cfg.Events != nil {
				_ = cfg.Events.AppendDialogue(context.Background(), store.EventDialogueAbandoned, cfg.LearnerID, d.ID, store.DialogueEventData{
					SkillID:       d.SkillID,
					Concept:       d.Concept,
					ExchangeCount: d.Session.ExchangeCount,
				})
			}
		}
		return router.PopScreenMsg{}
	}
}

// interventionNotice maps an intervention to the status line shown above
// the input.
func interventionNotice(iv adapt.Intervention) string {
	switch iv.Type {
	case adapt.InterventionTakeBreak:
		return "Let's pause here. A break will do more than another question."
	case adapt.InterventionSimplify:
		return "We'll take smaller steps."
	case adapt.InterventionSwitchTopic:
		return "Let's come at this from a different angle."
	case adapt.InterventionCelebrate:
		return "Nice work! That was a real insight."
	case adapt.InterventionEncourage:
		return "You're closer than you think. Stay with it."
	default:
		return ""
	}
}

// skillID derives a stable skill identifier from the concept text.
func skillID(concept string) string {
	s := strings.ToLower(strings.TrimSpace(concept))
	s = strings.Join(strings.Fields(s), "-")
	return s
}
