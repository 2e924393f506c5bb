package dialogue

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	dlg "github.com/abhisek/socra/internal/dialogue"
	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	}
	if s.d == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Opening the dialogue...")
	}
	if s.confirming {
		return s.renderLeaveConfirm(width)
	}

	var b strings.Builder

	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(s.renderTranscript(width, height))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(theme.Hint.Render("  " + s.notice))
		b.WriteString("\n\n")
	}

	if s.waiting || s.finishing {
		b.WriteString(theme.Hint.Render("  Thinking..."))
	} else {
		b.WriteString("  " + s.input.View())
	}

	return b.String()
}

// renderStatusLine shows the concept, exchange count and engagement read.
func (s *Screen) renderStatusLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.d.Concept))

	engagement := string(s.d.Session.Engagement)
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("exchange %d  ·  engagement %s", s.d.Session.ExchangeCount+1, engagement))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

// renderTranscript shows the most recent exchanges plus the pending question,
// trimmed to fit the available height.
func (s *Screen) renderTranscript(width, height int) string {
	tutorName := "Tutor"
	if s.d.Persona == dlg.PersonaInverse {
		tutorName = "Student"
	}

	wrap := lipgloss.NewStyle().Width(max(width-8, 20))

	var lines []string
	for _, e := range s.transcript {
		lines = append(lines,
			theme.TutorLine.Render(tutorName+": ")+wrap.Render(e.Tutor),
			theme.LearnerLine.Render("You: ")+wrap.Render(e.Learner),
			"")
	}
	if s.d.Active() && s.d.CurrentQuestion != "" && !s.waiting {
		q := theme.TutorLine.Bold(true).Render(tutorName+": ") + wrap.Render(s.d.CurrentQuestion)
		if s.d.CurrentQuestionType == extract.QuestionMetacognitive {
			q += "\n" + theme.Hint.Render("  (take a second to think about your thinking)")
		}
		lines = append(lines, q)
	}

	// Keep the tail that fits.
	budget := height - 8
	if budget < 4 {
		budget = 4
	}
	joined := strings.Split(strings.Join(lines, "\n"), "\n")
	if len(joined) > budget {
		joined = joined[len(joined)-budget:]
	}

	indented := make([]string, len(joined))
	for i, l := range joined {
		indented[i] = "  " + l
	}
	return strings.Join(indented, "\n")
}

func (s *Screen) renderLeaveConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this dialogue?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("An abandoned dialogue does not update your profile."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
