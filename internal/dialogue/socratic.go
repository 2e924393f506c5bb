package dialogue

import (
	"fmt"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// socraticStrategy is the tutor-leads mode: the tutor questions, the learner
// answers, and the tutor never lectures.
type socraticStrategy struct{}

func (socraticStrategy) OpeningType(p profile.LearnerProfile) extract.QuestionType {
	// Strong explainers can start under pressure; everyone else starts by
	// clarifying what they already know.
	if p.Understanding.ExplanationQuality > 0.7 {
		return extract.QuestionProbing
	}
	return extract.QuestionClarifying
}

func (socraticStrategy) Vocabulary() RoleVocabulary {
	return RoleVocabulary{
		Teaching: []string{"let me explain", "the way it works is", "basically,"},
		Asking:   []string{"can you tell me", "what does", "how do", "why is"},
	}
}

// NextQuestionType follows the selection chain: the extraction's own
// recommendation, then reflection after a discovery, then the pre-planned
// path, then the understanding-level default.
func (socraticStrategy) NextQuestionType(d *Dialogue, _ Role, r extract.Result) extract.QuestionType {
	if r.RecommendedNext != "" {
		return r.RecommendedNext
	}
	if d.DiscoveryMade {
		return extract.QuestionReflection
	}
	if qt, ok := nextPlanned(d); ok {
		return qt
	}
	return defaultQuestionType(r)
}

func (socraticStrategy) SummaryDetail(d *Dialogue) string {
	questions := len(d.Exchanges)
	discoveries := 0
	for _, r := range d.Extractions {
		if r.IsDiscoveryMoment {
			discoveries++
		}
	}
	return fmt.Sprintf("%d questions asked, %d discovery moments", questions, discoveries)
}

// nextPlanned consumes the next entry of the pre-planned dialogue path,
// indexed by exchange count.
func nextPlanned(d *Dialogue) (extract.QuestionType, bool) {
	idx := d.Session.ExchangeCount
	if idx < len(d.PlannedPath) {
		return d.PlannedPath[idx], true
	}
	return "", false
}
