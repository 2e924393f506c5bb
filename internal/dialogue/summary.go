package dialogue

import (
	"time"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// Summary is the digest of a dialogue: what happened, what was learned, and
// how the dialogue moved the learner's mastery.
type Summary struct {
	DialogueID string        `json:"dialogue_id"`
	LearnerID  string        `json:"learner_id"`
	SkillID    string        `json:"skill_id"`
	Concept    string        `json:"concept"`
	Persona    Persona       `json:"persona"`
	Status     Status        `json:"status"`
	Exchanges  int           `json:"exchanges"`
	Duration   time.Duration `json:"duration"`

	Insights          []string                   `json:"insights,omitempty"`
	Misconceptions    []string                   `json:"misconceptions,omitempty"`
	DiscoveryAchieved bool                       `json:"discovery_achieved"`
	Understanding     extract.UnderstandingLevel `json:"understanding"`
	Effectiveness     float64                    `json:"effectiveness"`
	MasteryAdjustment float64                    `json:"mastery_adjustment"`

	// Detail is the persona-specific one-liner about how the dialogue went.
	Detail string `json:"detail"`

	// Narrative is the optional generated recap, filled in separately.
	Narrative string `json:"narrative,omitempty"`
}

func buildSummary(d *Dialogue, signals profile.DialogueSignals, adjustment float64) *Summary {
	strat := strategyFor(d.Persona)
	return &Summary{
		DialogueID:        d.ID,
		LearnerID:         d.LearnerID,
		SkillID:           d.SkillID,
		Concept:           d.Concept,
		Persona:           d.Persona,
		Status:            d.Status,
		Exchanges:         signals.ExchangeCount,
		Duration:          d.Session.Elapsed,
		Insights:          signals.Insights,
		Misconceptions:    signals.Misconceptions,
		DiscoveryAchieved: d.DiscoveryMade,
		Understanding:     signals.FinalUnderstanding,
		Effectiveness:     profile.Effectiveness(signals),
		MasteryAdjustment: adjustment,
		Detail:            strat.SummaryDetail(d),
	}
}
