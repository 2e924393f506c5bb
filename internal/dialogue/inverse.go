package dialogue

import (
	"fmt"
	"math"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// inverseStrategy is the learner-teaches mode: the learner explains the
// concept to a simulated AI student whose understanding grows with the
// quality of the teaching.
type inverseStrategy struct{}

func (inverseStrategy) OpeningType(_ profile.LearnerProfile) extract.QuestionType {
	// The AI student opens by asking to be taught.
	return extract.QuestionMetacognitive
}

func (inverseStrategy) Vocabulary() RoleVocabulary {
	return RoleVocabulary{
		Teaching: []string{
			"let me explain", "so the idea is", "think of it like",
			"the key thing is", "here's how it works",
		},
		Asking: []string{"do you understand", "does that help", "any questions", "make sense?"},
	}
}

// NextQuestionType is the AI student's decision table: good teaching earns
// harder questions, muddled teaching earns requests for clarification, and
// persistent misconceptions get gently challenged.
func (inverseStrategy) NextQuestionType(d *Dialogue, role Role, r extract.Result) extract.QuestionType {
	switch {
	case len(r.Misconceptions) > 0:
		return extract.QuestionChallenging
	case role == RoleAsking:
		// The teacher checked in; the student reflects back what it heard.
		return extract.QuestionReflection
	case role == RoleTeaching && r.ExplanationQuality > 0.5:
		return extract.QuestionProbing
	case r.ExplanationQuality <= 0.3:
		return extract.QuestionClarifying
	default:
		return extract.QuestionScaffolding
	}
}

func (inverseStrategy) SummaryDetail(d *Dialogue) string {
	return fmt.Sprintf("AI student reached %.0f%% simulated understanding", d.SimulatedUnderstanding*100)
}

// maxUnderstandingStep caps the AI student's per-exchange growth.
const maxUnderstandingStep = 0.15

// simulatedGrowth computes the AI student's understanding gain from one
// teaching turn: driven by explanation quality, boosted by examples or
// analogies, capped per exchange.
func simulatedGrowth(r extract.Result) float64 {
	step := 0.10 * r.ExplanationQuality
	if r.Abstraction.Preference == extract.PreferConcrete || len(r.Insights) > 0 {
		step += 0.05
	}
	return math.Min(maxUnderstandingStep, step)
}
