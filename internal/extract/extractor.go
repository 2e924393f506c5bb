package extract

import "strings"

// Aggregate decision thresholds.
const (
	overconfidentCertainty  = 0.5
	underconfidentHedging   = 0.4
	underconfidentQuality   = 0.6
	surfaceQualityThreshold = 0.3
	partialQualityThreshold = 0.5
	deepQualityThreshold    = 0.75
	probingHedgingThreshold = 0.3
)

// Extract runs every detector over a single learner response and applies the
// aggregate decision rules. Pure and deterministic: sparse or unusual text
// yields neutral defaults, never an error.
func Extract(text string, latencyMs int, ctx Context) Result {
	lowered := strings.ToLower(text)
	wordCount := len(words(text))

	r := Result{
		WordCount:       wordCount,
		LatencyMs:       latencyMs,
		Hedging:         detectHedging(lowered, wordCount),
		Certainty:       detectCertainty(lowered, wordCount),
		SelfCorrections: detectSelfCorrections(text),
		Reasoning:       detectReasoning(lowered),
		Abstraction:     detectAbstraction(text, lowered),
		Engagement:      detectEngagement(lowered, wordCount, latencyMs),
		Communication:   detectCommunication(text, ctx.PriorQuestion),
		Misconceptions:  detectMisconceptions(lowered, ctx.KnownMisconceptions),
		Insights:        detectInsights(text),
	}
	r.BoundaryAwareness, r.MonitoringCount, r.ReflectionCount = detectMetacognition(lowered)
	r.ExplanationQuality = scoreExplanation(lowered, wordCount, ctx.Concept)

	r.IsOverconfident = r.Certainty.Rate > overconfidentCertainty && len(r.Misconceptions) > 0
	r.IsUnderconfident = r.Hedging.Rate > underconfidentHedging && r.ExplanationQuality > underconfidentQuality
	r.QuestionQuality = classifyQuestionQuality(r)
	r.Understanding = classifyUnderstanding(r)
	r.IsDiscoveryMoment = len(r.Insights) > 0 || len(r.SelfCorrections) > 0
	r.RecommendedNext = recommendNextQuestion(r)

	return r
}

// classifyQuestionQuality grades the learner's questioning: metacognitive
// when reflection or monitoring appears, deep when reasoning chains or
// causal links appear, surface otherwise.
func classifyQuestionQuality(r Result) QuestionQuality {
	if r.ReflectionCount > 0 || r.MonitoringCount > 0 {
		return QualityMetacognitive
	}
	if r.Reasoning.ChainLength > 1 || r.Reasoning.Causal {
		return QualityDeep
	}
	return QualitySurface
}

// classifyUnderstanding maps explanation quality to a discrete level.
// Responses under 10 words, or disengaged ones, always read as "none".
func classifyUnderstanding(r Result) UnderstandingLevel {
	if r.WordCount < 10 || r.Engagement.Level == EngagementLow {
		return UnderstandingNone
	}
	switch {
	case r.ExplanationQuality < surfaceQualityThreshold:
		return UnderstandingSurface
	case r.ExplanationQuality < partialQualityThreshold:
		return UnderstandingPartial
	case r.ExplanationQuality < deepQualityThreshold || len(r.Insights) == 0:
		return UnderstandingDeep
	default:
		return UnderstandingTransfer
	}
}

// recommendNextQuestion picks the next tutor question type. First match wins.
func recommendNextQuestion(r Result) QuestionType {
	switch {
	case r.IsDiscoveryMoment:
		return QuestionReflection
	case len(r.Misconceptions) > 0:
		return QuestionChallenging
	case r.Understanding == UnderstandingDeep || r.Understanding == UnderstandingTransfer:
		return QuestionMetacognitive
	case r.Understanding == UnderstandingNone || r.Understanding == UnderstandingSurface:
		return QuestionClarifying
	case r.Hedging.Rate > probingHedgingThreshold:
		return QuestionProbing
	default:
		return QuestionScaffolding
	}
}
