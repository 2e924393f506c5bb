package dialogue

import (
	"fmt"
	"strings"

	"github.com/abhisek/socra/internal/adapt"
	"github.com/abhisek/socra/internal/extract"
)

// personaFraming is the opening system-prompt paragraph per persona.
var personaFraming = map[Persona]string{
	PersonaSocratic: `You are a Socratic tutor. You never lecture and never give away answers. You guide the learner toward their own understanding with one question at a time.`,
	PersonaInverse:  `You are an AI student being taught by the learner. You are curious and eager but you only understand as much as the learner has clearly explained. Ask for clarification when the teaching is muddled, and show your growing understanding when it is clear.`,
	PersonaFreeform: `You are a thinking partner for a learner exploring a topic on their own terms. Follow their lead, deepen the threads they open, and resist steering the conversation yourself.`,
}

// buildSystemPrompt renders the generation system prompt from the persona
// framing and the current adaptive configuration.
func buildSystemPrompt(d *Dialogue) string {
	var b strings.Builder
	cfg := d.Config

	b.WriteString(personaFraming[d.Persona])
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Target concept: %s\n\n", d.Concept))

	b.WriteString("Directives for this turn:\n")
	b.WriteString(fmt.Sprintf("- Question abstraction: %s, at most %d reasoning steps.\n",
		cfg.Complexity.Abstraction, cfg.Complexity.MaxReasoningSteps))
	if cfg.Complexity.IncludeHints {
		b.WriteString("- Offer a small hint if the learner stalls.\n")
	}
	if cfg.Complexity.IncludeExamples {
		b.WriteString("- Ground abstract points in a concrete example.\n")
	}

	b.WriteString(fmt.Sprintf("- Scaffolding level %d of 4.", cfg.Scaffold.Level))
	if cfg.Scaffold.WorkedExamples {
		b.WriteString(" Worked examples are allowed.")
	}
	if cfg.Scaffold.ProactiveHints {
		b.WriteString(" Offer hints before being asked.")
	}
	if cfg.Scaffold.BreakdownComplex {
		b.WriteString(" Break complex questions into smaller parts.")
	}
	b.WriteString("\n")

	switch cfg.Calibrate.Stance {
	case adapt.StanceChallenging:
		b.WriteString("- The learner tends toward overconfidence: present counterexamples, ask them to verify their claims, and do not celebrate yet.\n")
	case adapt.StanceSupportive:
		b.WriteString("- The learner tends toward underconfidence: celebrate insights and point out where their reasoning was correct.\n")
	default:
		b.WriteString("- Keep a neutral calibration stance.\n")
	}

	if cfg.Metacog.Focus != adapt.FocusNone {
		b.WriteString(fmt.Sprintf("- Weave in metacognitive prompts (focus: %s, about %.0f%% of turns). Examples:\n",
			cfg.Metacog.Focus, cfg.Metacog.Frequency*100))
		for _, p := range cfg.Metacog.Prompts {
			b.WriteString(fmt.Sprintf("  - %s\n", p))
		}
	}

	if cfg.Engage.SimplifyQuestions {
		b.WriteString("- Simplify: shorter, easier questions this turn.\n")
	}
	if cfg.Engage.OfferBreak {
		b.WriteString("- Offer the learner a break.\n")
	}
	if cfg.Engage.Encouragement == adapt.EncourageHigh {
		b.WriteString("- Be generous with encouragement.\n")
	}
	if cfg.Engage.CrossDomainConnections {
		b.WriteString("- Cross-domain connections are welcome.\n")
	}

	if len(d.KnownMisconceptions) > 0 {
		b.WriteString("\nKnown misconceptions to watch for:\n")
		for _, m := range d.KnownMisconceptions {
			b.WriteString(fmt.Sprintf("- %s\n", m))
		}
	}

	return b.String()
}

// buildTurnPrompt renders the per-turn generation prompt: recent exchanges
// plus the selected question to deliver.
func buildTurnPrompt(d *Dialogue, questionType extract.QuestionType, question string) string {
	var b strings.Builder

	if n := len(d.Exchanges); n > 0 {
		b.WriteString("Recent exchanges:\n")
		start := n - 3
		if start < 0 {
			start = 0
		}
		for _, ex := range d.Exchanges[start:] {
			b.WriteString(fmt.Sprintf("Tutor: %s\n", ex.Question))
			b.WriteString(fmt.Sprintf("Learner: %s\n", ex.Response))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Deliver a %s question to the learner. Base it on this template, adapted to the conversation:\n%s\n",
		questionType, question))
	b.WriteString("Respond with the learner-facing text only.")

	return b.String()
}
