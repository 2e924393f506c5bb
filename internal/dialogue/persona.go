package dialogue

import (
	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// strategy supplies the per-persona behavior: role vocabulary, opening
// question type, the response-type decision table, and the summary shape.
// Extraction and profile updating are shared by all personas.
type strategy interface {
	// OpeningType picks the question type for the dialogue's first turn.
	OpeningType(p profile.LearnerProfile) extract.QuestionType

	// Vocabulary returns the role-classifier cues for this persona.
	Vocabulary() RoleVocabulary

	// NextQuestionType maps (role, extraction, dialogue) to the next turn's
	// question type when the dialogue continues.
	NextQuestionType(d *Dialogue, role Role, r extract.Result) extract.QuestionType

	// SummaryDetail renders the persona-specific part of the summary.
	SummaryDetail(d *Dialogue) string
}

// strategyFor dispatches on the closed persona set.
func strategyFor(p Persona) strategy {
	switch p {
	case PersonaInverse:
		return inverseStrategy{}
	case PersonaFreeform:
		return freeformStrategy{}
	default:
		return socraticStrategy{}
	}
}

// defaultQuestionType is the shared fallback table keyed by the latest
// understanding reading.
func defaultQuestionType(r extract.Result) extract.QuestionType {
	if len(r.Misconceptions) > 0 {
		return extract.QuestionChallenging
	}
	switch r.Understanding {
	case extract.UnderstandingNone, extract.UnderstandingSurface:
		return extract.QuestionClarifying
	case extract.UnderstandingPartial:
		return extract.QuestionScaffolding
	case extract.UnderstandingDeep:
		return extract.QuestionProbing
	case extract.UnderstandingTransfer:
		return extract.QuestionMetacognitive
	default:
		return extract.QuestionClarifying
	}
}
