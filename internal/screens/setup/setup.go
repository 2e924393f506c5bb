package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/socra/internal/dialogue"
	"github.com/abhisek/socra/internal/llm"
	"github.com/abhisek/socra/internal/router"
	"github.com/abhisek/socra/internal/screen"
	dialoguescreen "github.com/abhisek/socra/internal/screens/dialogue"
	"github.com/abhisek/socra/internal/store"
	"github.com/abhisek/socra/internal/ui/components"
	"github.com/abhisek/socra/internal/ui/layout"
	"github.com/abhisek/socra/internal/ui/theme"
)

type phase int

const (
	phaseConcept phase = iota
	phasePersona
)

// personaChoice pairs a persona with its menu description.
type personaChoice struct {
	persona dialogue.Persona
	label   string
	blurb   string
}

var personaChoices = []personaChoice{
	{dialogue.PersonaSocratic, "Socratic", "the tutor questions, you answer"},
	{dialogue.PersonaInverse, "Teach the AI", "you explain, an AI student learns from you"},
	{dialogue.PersonaFreeform, "Explore", "you drive, the tutor follows your lead"},
}

// SetupScreen collects the concept and persona for a new dialogue.
type SetupScreen struct {
	orch      *dialogue.Orchestrator
	provider  llm.Provider
	events    *store.EventRepo
	learnerID string

	phase   phase
	input   components.TextInput
	menu    components.Menu
	concept string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen.
func New(orch *dialogue.Orchestrator, provider llm.Provider, events *store.EventRepo, learnerID string) *SetupScreen {
	s := &SetupScreen{
		orch:      orch,
		provider:  provider,
		events:    events,
		learnerID: learnerID,
		input:     components.NewTextInput("What do you want to work on?", false, 60),
	}

	items := make([]components.MenuItem, len(personaChoices))
	for i, pc := range personaChoices {
		pc := pc
		items[i] = components.MenuItem{
			Label: pc.label + " — " + pc.blurb,
			Action: func() tea.Cmd {
				return s.startDialogue(pc.persona)
			},
		}
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SetupScreen) Title() string {
	return "New Dialogue"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseConcept {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose mode"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		if s.phase == phasePersona {
			s.phase = phaseConcept
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && s.phase == phaseConcept {
		if kmsg.String() == "enter" {
			concept := strings.TrimSpace(s.input.Value())
			if concept == "" {
				return s, nil
			}
			s.concept = concept
			s.phase = phasePersona
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if s.phase == phasePersona {
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	if s.phase == phaseConcept {
		b.WriteString(theme.Body.Render("What concept should we dig into?"))
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(`e.g. "recursion", "why the sky is blue", "supply and demand"`))
	} else {
		b.WriteString(theme.Body.Render("Concept: ") + theme.Selected.Render(s.concept))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("How do you want to work?"))
		b.WriteString("\n\n")
		b.WriteString(s.menu.View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// startDialogue pushes the dialogue screen for the chosen persona.
func (s *SetupScreen) startDialogue(p dialogue.Persona) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: dialoguescreen.New(dialoguescreen.Config{
				Orch:      s.orch,
				Provider:  s.provider,
				Events:    s.events,
				LearnerID: s.learnerID,
				Concept:   s.concept,
				Persona:   p,
			}),
		}
	}
}
