package dialogue

import (
	"fmt"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// freeformStrategy is the learner-explores mode: the learner drives the
// conversation and the tutor follows their lead.
type freeformStrategy struct{}

func (freeformStrategy) OpeningType(p profile.LearnerProfile) extract.QuestionType {
	if p.Engagement.CuriosityScore > 0.7 {
		return extract.QuestionChallenging
	}
	return extract.QuestionProbing
}

func (freeformStrategy) Vocabulary() RoleVocabulary {
	return RoleVocabulary{
		Teaching: []string{"i think it's because", "my theory is", "what i've noticed"},
		Asking:   []string{"i'm wondering", "what if", "could it be", "is it true that"},
	}
}

// NextQuestionType follows the learner's lead: questions get probed deeper,
// theories get reflected back, and a stalled exploration gets re-anchored.
func (freeformStrategy) NextQuestionType(d *Dialogue, role Role, r extract.Result) extract.QuestionType {
	switch {
	case role == RoleAsking:
		return extract.QuestionProbing
	case role == RoleTeaching:
		return extract.QuestionReflection
	case r.Engagement.Level == extract.EngagementLow:
		return extract.QuestionClarifying
	case r.Engagement.CuriosityCount > 0:
		return extract.QuestionChallenging
	case r.RecommendedNext != "":
		return r.RecommendedNext
	default:
		return defaultQuestionType(r)
	}
}

func (freeformStrategy) SummaryDetail(d *Dialogue) string {
	asked := 0
	for _, ex := range d.Exchanges {
		if ex.Role == RoleAsking {
			asked++
		}
	}
	return fmt.Sprintf("learner drove the exploration with %d questions of their own", asked)
}
