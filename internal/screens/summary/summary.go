package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dlg "github.com/abhisek/socra/internal/dialogue"
	"github.com/abhisek/socra/internal/llm"
	"github.com/abhisek/socra/internal/router"
	"github.com/abhisek/socra/internal/screen"
	"github.com/abhisek/socra/internal/ui/layout"
	"github.com/abhisek/socra/internal/ui/theme"
)

// narrativeMsg is sent when the generated recap is ready (or failed).
type narrativeMsg struct {
	Narrative string
}

// SummaryScreen shows the digest of a finished dialogue.
type SummaryScreen struct {
	summary  *dlg.Summary
	provider llm.Provider
	loading  bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the summary screen. With a provider set it also requests the
// generated recap.
func New(s *dlg.Summary, provider llm.Provider) *SummaryScreen {
	return &SummaryScreen{
		summary:  s,
		provider: provider,
		loading:  provider != nil && s.Narrative == "",
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if !s.loading {
		return nil
	}
	sum := s.summary
	provider := s.provider
	return func() tea.Msg {
		// Best effort; the summary stands on its own without a recap.
		_ = dlg.GenerateNarrative(context.Background(), provider, sum)
		return narrativeMsg{Narrative: sum.Narrative}
	}
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case narrativeMsg:
		s.loading = false
		s.summary.Narrative = msg.Narrative
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "enter" || msg.String() == "esc" {
			// Pop summary and the dialogue screen beneath it.
			return s, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				func() tea.Msg { return router.PopScreenMsg{} },
			)
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Dialogue complete"))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			lipgloss.NewStyle().Foreground(theme.TextDim).Width(16).Render(label),
			theme.Body.Render(value)))
	}

	line("Concept", sum.Concept)
	line("Mode", string(sum.Persona))
	line("Exchanges", fmt.Sprintf("%d in %s", sum.Exchanges, sum.Duration.Round(time.Second)))
	line("Understanding", string(sum.Understanding))
	line("Mastery", fmt.Sprintf("%+.2f", sum.MasteryAdjustment))
	if sum.DiscoveryAchieved {
		line("Discovery", lipgloss.NewStyle().Foreground(theme.Success).Render("yes, you got there yourself"))
	}
	b.WriteString("\n")

	if len(sum.Insights) > 0 {
		b.WriteString(theme.Body.Bold(true).Render("  Insights"))
		b.WriteString("\n")
		for _, ins := range sum.Insights {
			b.WriteString(theme.Body.Render("   · " + ins))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(sum.Misconceptions) > 0 {
		b.WriteString(theme.Body.Bold(true).Render("  Worth revisiting"))
		b.WriteString("\n")
		for _, m := range sum.Misconceptions {
			b.WriteString(theme.Body.Render("   · " + m))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Hint.Render("  " + sum.Detail))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(theme.Hint.Render("  Writing your recap..."))
	case sum.Narrative != "":
		wrapped := lipgloss.NewStyle().Width(min(width-6, 76)).Foreground(theme.Text).Render(sum.Narrative)
		b.WriteString(indent(wrapped, "  "))
	}

	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
