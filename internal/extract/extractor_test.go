package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ShortResponseReadsAsNone(t *testing.T) {
	r := Extract("yes", 5000, Context{Concept: "ohm's law"})

	assert.Equal(t, 1, r.WordCount)
	assert.Equal(t, UnderstandingNone, r.Understanding)
	assert.Equal(t, EngagementLow, r.Engagement.Level)
	assert.Equal(t, QuestionClarifying, r.RecommendedNext)
	assert.False(t, r.IsDiscoveryMoment)
}

func TestExtract_HedgedResponse(t *testing.T) {
	text := "I think maybe it works because the current flows, but I'm not sure about the details honestly."
	r := Extract(text, 8000, Context{Concept: "current"})

	assert.ElementsMatch(t, []string{"maybe", "i think", "not sure"}, r.Hedging.Markers)
	assert.InDelta(t, 1.0, r.Hedging.Rate, 1e-9)
	assert.Zero(t, r.Certainty.Rate)

	// "i'm not sure about" is a boundary marker.
	assert.InDelta(t, 1.0/3.0, r.BoundaryAwareness, 1e-9)

	// concept mention 0.10 + elaboration 0.17 + causal "because" 0.05
	assert.InDelta(t, 0.32, r.ExplanationQuality, 1e-9)
	assert.Equal(t, UnderstandingPartial, r.Understanding)
	assert.Equal(t, EngagementMedium, r.Engagement.Level)
	assert.Equal(t, QuestionProbing, r.RecommendedNext)
	assert.False(t, r.IsUnderconfident)
}

func TestExtract_DiscoveryWithTransferUnderstanding(t *testing.T) {
	text := "Oh! I get it now. First the voltage pushes the electrons, then the resistance limits the flow, " +
		"which means the current depends on both. For example, a thin wire acts like a narrow pipe, " +
		"so then less water flows through it, and that's why resistance matters."
	r := Extract(text, 15000, Context{Concept: "current"})

	require.NotEmpty(t, r.Insights)
	assert.True(t, r.IsDiscoveryMoment)
	assert.Equal(t, UnderstandingTransfer, r.Understanding)
	assert.Equal(t, QuestionReflection, r.RecommendedNext)
	assert.Equal(t, QualityDeep, r.QuestionQuality)
	assert.Equal(t, 2, r.Reasoning.ChainLength)
	assert.True(t, r.Reasoning.Causal)
	assert.Equal(t, ReasoningInductive, r.Reasoning.Style)
	assert.InDelta(t, 1.0, r.ExplanationQuality, 1e-9)
}

func TestExtract_OverconfidentMisconception(t *testing.T) {
	text := "Obviously the battery always pushes the same current through every branch, I'm sure of it."
	known := []string{"thinks the battery pushes the same current through every branch"}
	r := Extract(text, 6000, Context{KnownMisconceptions: known})

	require.Len(t, r.Misconceptions, 1)
	assert.Equal(t, known[0], r.Misconceptions[0])
	assert.True(t, r.IsOverconfident)
	assert.Equal(t, QuestionChallenging, r.RecommendedNext)
}

func TestExtract_MisconceptionNeedsTwoKeywords(t *testing.T) {
	known := []string{"thinks multiplication always makes numbers bigger"}
	r := Extract("I used multiplication to solve it and checked the result twice over.", 9000,
		Context{KnownMisconceptions: known})

	assert.Empty(t, r.Misconceptions)
}

func TestExtract_SelfCorrectionIsDiscovery(t *testing.T) {
	text := "Wait, actually I was wrong about that. The resistance doesn't add up that way when the resistors sit in parallel."
	r := Extract(text, 12000, Context{Concept: "resistance"})

	require.NotEmpty(t, r.SelfCorrections)
	assert.True(t, r.IsDiscoveryMoment)
	assert.Equal(t, QuestionReflection, r.RecommendedNext)
}

func TestExtract_RushedShortReplyIsLowEngagement(t *testing.T) {
	r := Extract("It just divides the number evenly I think maybe", 500, Context{})

	assert.Equal(t, EngagementLow, r.Engagement.Level)
	assert.Equal(t, UnderstandingNone, r.Understanding)
}

func TestExtract_FrustrationForcesLowEngagement(t *testing.T) {
	text := "This makes no sense to me and honestly the whole thing feels pointless right now, I give up on balancing these equations."
	r := Extract(text, 20000, Context{})

	assert.Equal(t, EngagementLow, r.Engagement.Level)
	assert.GreaterOrEqual(t, r.Engagement.FrustrationCount, 2)
}

func TestExtract_HighEngagementNeedsCuriosity(t *testing.T) {
	text := "I wonder what happens if we double the resistance in the circuit, because the current should drop by half, " +
		"and that makes me curious whether the brightness of the bulb follows the same pattern as the voltage."
	r := Extract(text, 18000, Context{})

	assert.Equal(t, EngagementHigh, r.Engagement.Level)
	assert.GreaterOrEqual(t, r.Engagement.CuriosityCount, 2)
}

func TestDetectOrientation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Orientation
	}{
		{"mastery", "i want to understand why this works so i can make sense of it", OrientationMastery},
		{"performance", "is that the right answer? did i get it right?", OrientationPerformance},
		{"no markers", "the square root of nine is three", OrientationMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectOrientation(tt.text))
		})
	}
}

func TestResponsiveness(t *testing.T) {
	t.Run("no prior question is neutral", func(t *testing.T) {
		assert.InDelta(t, 0.5, responsiveness("anything at all", ""), 1e-9)
	})
	t.Run("full overlap saturates", func(t *testing.T) {
		q := "what does resistance mean"
		got := responsiveness("resistance is what slows the current, that is what resistance really does mean", q)
		assert.InDelta(t, 1.0, got, 1e-9)
	})
	t.Run("off-topic keeps the floor", func(t *testing.T) {
		got := responsiveness("bananas are yellow", "what does resistance mean")
		assert.InDelta(t, responsivenessFloor, got, 1e-9)
	})
}

func TestDetectAbstraction(t *testing.T) {
	t.Run("neutral without markers", func(t *testing.T) {
		sig := detectAbstraction("it flows along the wire", "it flows along the wire")
		assert.InDelta(t, 0.5, sig.Level, 1e-9)
		assert.Equal(t, PreferBalanced, sig.Preference)
	})
	t.Run("numerals count as concrete", func(t *testing.T) {
		text := "with 9 volts across 3 ohms you get 3 amps, for example"
		sig := detectAbstraction(text, text)
		assert.Equal(t, PreferConcrete, sig.Preference)
	})
	t.Run("abstract markers dominate", func(t *testing.T) {
		text := "in general the principle holds, fundamentally it is always true in theory"
		sig := detectAbstraction(text, text)
		assert.Equal(t, PreferAbstract, sig.Preference)
	})
}
