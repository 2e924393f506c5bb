package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/socra/internal/mastery"
	learner "github.com/abhisek/socra/internal/profile"
	"github.com/abhisek/socra/internal/router"
	"github.com/abhisek/socra/internal/screen"
	"github.com/abhisek/socra/internal/store"
	"github.com/abhisek/socra/internal/ui/components"
	"github.com/abhisek/socra/internal/ui/layout"
	"github.com/abhisek/socra/internal/ui/theme"
)

type loadedMsg struct {
	Profile *learner.LearnerProfile
	Mastery []mastery.Record
	Err     error
}

// ProfileScreen shows what the system has learned about the learner.
type ProfileScreen struct {
	profiles   *store.ProfileRepo
	masterySvc *mastery.Service
	learnerID  string

	profile *learner.LearnerProfile
	records []mastery.Record
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the profile screen.
func New(profiles *store.ProfileRepo, masterySvc *mastery.Service, learnerID string) *ProfileScreen {
	return &ProfileScreen{profiles: profiles, masterySvc: masterySvc, learnerID: learnerID}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		p, err := s.profiles.Load(ctx, s.learnerID)
		if err != nil {
			return loadedMsg{Err: err}
		}
		recs, err := s.masterySvc.All(ctx, s.learnerID)
		if err != nil {
			return loadedMsg{Profile: p}
		}
		return loadedMsg{Profile: p, Mastery: recs}
	}
}

func (s *ProfileScreen) Title() string {
	return "Learner Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.profile = msg.Profile
		s.records = msg.Mastery
		s.loaded = true
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
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
	if s.profile == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  No dialogues yet. The profile builds itself as you talk.")
	}

	p := s.profile
	barWidth := min(width-10, 50)
	var b strings.Builder

	section := func(name string) {
		b.WriteString("\n")
		b.WriteString(theme.Body.Bold(true).Render("  " + name))
		b.WriteString("\n")
	}
	bar := func(label string, v float64) {
		pb := components.NewProgressBar(fmt.Sprintf("%-22s", label), v, true, barWidth)
		b.WriteString("    " + pb.View() + "\n")
	}

	b.WriteString(theme.Hint.Render(fmt.Sprintf("  Built from %d dialogues", p.DialogueCount)))
	b.WriteString("\n")

	section("Understanding")
	bar("explanation quality", p.Understanding.ExplanationQuality)
	bar("elaboration depth", p.Understanding.ElaborationDepth)
	bar("abstraction level", p.Understanding.AbstractionLevel)
	b.WriteString(theme.Hint.Render(fmt.Sprintf("    expertise: %s", p.Understanding.Expertise)) + "\n")

	section("Confidence")
	bar("calibration", p.ConfidenceAx.CalibrationAccuracy)
	bar("hedging", p.ConfidenceAx.HedgingRate)
	bar("certainty", p.ConfidenceAx.CertaintyRate)
	b.WriteString(theme.Hint.Render(fmt.Sprintf("    trajectory: %s", p.ConfidenceAx.Trajectory)) + "\n")

	section("Metacognition")
	bar("self-correction", p.Metacognition.SelfCorrectionRate)
	bar("boundary awareness", p.Metacognition.BoundaryAwareness)
	bar("reflection", p.Metacognition.ReflectionFrequency)

	section("Engagement")
	bar("curiosity", p.Engagement.CuriosityScore)
	bar("persistence", p.Engagement.PersistenceAfterError)
	b.WriteString(theme.Hint.Render(fmt.Sprintf("    style: %s reasoning, prefers %s",
		p.Reasoning.Style, p.Reasoning.Processing)) + "\n")

	if len(s.records) > 0 {
		section("Skills")
		for _, r := range s.records {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				theme.Body.Render(fmt.Sprintf("%-24s", r.SkillID)),
				renderLevel(r)))
		}
	}

	return b.String()
}

func renderLevel(r mastery.Record) string {
	style := theme.Hint
	if r.Level() == mastery.LevelMastered {
		style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	}
	return style.Render(fmt.Sprintf("%.2f %s", r.Score, r.Level()))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
