package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/socra/internal/extract"
)

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, nil)
	assert.Zero(t, s.ExchangeCount)
	assert.Zero(t, s.Effectiveness)
}

func TestAggregate_TwoExchanges(t *testing.T) {
	r1 := extract.Result{
		WordCount:          50,
		LatencyMs:          10000,
		ExplanationQuality: 0.4,
		Hedging:            extract.RateSignal{Rate: 0.2},
		Certainty:          extract.RateSignal{Rate: 0.6},
		Reasoning:          extract.ReasoningSignal{Style: extract.ReasoningInductive, ChainLength: 2},
		Abstraction:        extract.AbstractionSignal{Level: 0.5, Preference: extract.PreferBalanced},
		Engagement:         extract.EngagementSignal{Level: extract.EngagementMedium, CuriosityCount: 1},
		QuestionQuality:    extract.QualitySurface,
		Understanding:      extract.UnderstandingPartial,
	}
	r2 := extract.Result{
		WordCount:          100,
		LatencyMs:          20000,
		ExplanationQuality: 0.8,
		Hedging:            extract.RateSignal{Rate: 0.4},
		Certainty:          extract.RateSignal{Rate: 0.1},
		SelfCorrections:    []string{"wait, that's not right"},
		Reasoning:          extract.ReasoningSignal{Style: extract.ReasoningInductive, ChainLength: 1},
		Abstraction:        extract.AbstractionSignal{Level: 0.7, Preference: extract.PreferAbstract},
		Engagement:         extract.EngagementSignal{Level: extract.EngagementHigh},
		QuestionQuality:    extract.QualityDeep,
		Insights:           []string{"aha, they cancel out"},
		IsDiscoveryMoment:  true,
		Understanding:      extract.UnderstandingDeep,
	}

	s := Aggregate([]extract.Result{r1, r2}, []bool{true, true})

	assert.Equal(t, 2, s.ExchangeCount)
	assert.InDelta(t, 0.6, s.ExplanationQuality, 1e-9)
	assert.InDelta(t, 0.75, s.ElaborationDepth, 1e-9)
	assert.InDelta(t, 0.3, s.HedgingRate, 1e-9)
	assert.InDelta(t, 0.35, s.CertaintyRate, 1e-9)
	assert.InDelta(t, 1.5, s.AvgChainLength, 1e-9)
	assert.InDelta(t, 15000, s.AvgLatencyMs, 1e-9)
	assert.InDelta(t, 0.5, s.SelfCorrectionRate, 1e-9)
	assert.InDelta(t, 0.5, s.CuriosityScore, 1e-9)

	// r1 is confident and correct, r2 is hedged yet correct.
	assert.InDelta(t, 0.5, s.CalibrationAccuracy, 1e-9)

	// No errors observed keeps persistence neutral.
	assert.InDelta(t, 0.5, s.Persistence, 1e-9)

	assert.InDelta(t, 0.5, s.EngagementFirstHalf, 1e-9)
	assert.InDelta(t, 1.0, s.EngagementSecondHalf, 1e-9)

	assert.True(t, s.DiscoveryAchieved)
	assert.Equal(t, []string{"aha, they cancel out"}, s.Insights)
	assert.Equal(t, extract.UnderstandingDeep, s.FinalUnderstanding)

	// One insight over two exchanges, resolved well under five exchanges.
	assert.InDelta(t, 0.75, s.Effectiveness, 1e-9)
}

func TestAggregate_PersistenceAfterErrors(t *testing.T) {
	results := []extract.Result{
		{WordCount: 20, Engagement: extract.EngagementSignal{Level: extract.EngagementMedium}},
		{WordCount: 30, Engagement: extract.EngagementSignal{Level: extract.EngagementMedium}},
		{WordCount: 5, Engagement: extract.EngagementSignal{Level: extract.EngagementLow}},
	}
	s := Aggregate(results, []bool{false, false, true})

	// Two exchanges followed an error; only the first stayed engaged.
	assert.InDelta(t, 0.5, s.Persistence, 1e-9)
}

func TestAggregate_FirstFrustrationExchange(t *testing.T) {
	results := []extract.Result{
		{WordCount: 20, Engagement: extract.EngagementSignal{Level: extract.EngagementMedium}},
		{WordCount: 20, Engagement: extract.EngagementSignal{Level: extract.EngagementLow, FrustrationCount: 1}},
		{WordCount: 20, Engagement: extract.EngagementSignal{Level: extract.EngagementLow, FrustrationCount: 2}},
	}
	s := Aggregate(results, []bool{true, true, true})
	assert.Equal(t, 2, s.FirstFrustrationExchange)
}

func TestAggregate_DeduplicatesAcrossExchanges(t *testing.T) {
	results := []extract.Result{
		{WordCount: 20, Misconceptions: []string{"adds denominators"}},
		{WordCount: 20, Misconceptions: []string{"adds denominators"}, Insights: []string{"i see it now"}},
		{WordCount: 20, Insights: []string{"i see it now"}, IsDiscoveryMoment: true},
	}
	s := Aggregate(results, []bool{false, true, true})

	assert.Equal(t, []string{"adds denominators"}, s.Misconceptions)
	assert.Equal(t, []string{"i see it now"}, s.Insights)
}

func TestEffectiveness_SlowDialogueScoresLower(t *testing.T) {
	fast := DialogueSignals{ExchangeCount: 4, DiscoveryAchieved: true, Insights: []string{"a"}}
	slow := DialogueSignals{ExchangeCount: 15, DiscoveryAchieved: true, Insights: []string{"a"}}
	assert.Greater(t, Effectiveness(fast), Effectiveness(slow))
}
