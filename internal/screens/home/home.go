package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/socra/internal/dialogue"
	"github.com/abhisek/socra/internal/llm"
	"github.com/abhisek/socra/internal/mastery"
	"github.com/abhisek/socra/internal/router"
	"github.com/abhisek/socra/internal/screen"
	"github.com/abhisek/socra/internal/screens/history"
	profilescreen "github.com/abhisek/socra/internal/screens/profile"
	"github.com/abhisek/socra/internal/screens/setup"
	"github.com/abhisek/socra/internal/store"
	"github.com/abhisek/socra/internal/ui/components"
	"github.com/abhisek/socra/internal/ui/theme"
)

// Deps bundles the collaborators the home screen hands down to the screens
// it opens.
type Deps struct {
	LearnerID  string
	Orch       *dialogue.Orchestrator
	Provider   llm.Provider // nil when running offline
	Profiles   *store.ProfileRepo
	MasterySvc *mastery.Service
	Events     *store.EventRepo
}

// HomeScreen is the main entry screen.
type HomeScreen struct {
	deps      Deps
	menu      components.Menu
	dialogues int
	mastered  int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen and loads the headline stats.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	ctx := context.Background()
	if p, err := deps.Profiles.Load(ctx, deps.LearnerID); err == nil && p != nil {
		h.dialogues = p.DialogueCount
	}
	if recs, err := deps.MasterySvc.All(ctx, deps.LearnerID); err == nil {
		for _, r := range recs {
			if r.Level() == mastery.LevelMastered {
				h.mastered++
			}
		}
	}

	items := []components.MenuItem{
		{Label: "NEW DIALOGUE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(deps.Orch, deps.Provider, deps.Events, deps.LearnerID)}
			}
		}},
		{Label: "LEARNER PROFILE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: profilescreen.New(deps.Profiles, deps.MasterySvc, deps.LearnerID)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Events, deps.LearnerID)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// Dialogues reports the learner's completed dialogue count for the header.
func (h *HomeScreen) Dialogues() int { return h.dialogues }

// Mastered reports the learner's mastered skill count for the header.
func (h *HomeScreen) Mastered() int { return h.mastered }

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("S O C R A")
	subtitle := theme.Subtitle.Width(width).Render("a dialogue partner that learns how you learn")
	sections = append(sections, title, subtitle)

	stats := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(pluralize(h.dialogues, "dialogue") + " held · " + pluralize(h.mastered, "skill") + " mastered")
	sections = append(sections, stats)

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
