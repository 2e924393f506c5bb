package profile

import "github.com/abhisek/socra/internal/extract"

// DialogueSignals is the aggregate of one completed dialogue's per-exchange
// extractions, as consumed by the profile updater. Built by the dialogue
// orchestrator at completion.
type DialogueSignals struct {
	ExchangeCount int

	// Scalar observations, each the mean (or rate) across all exchanges.
	ExplanationQuality  float64
	ElaborationDepth    float64
	AbstractionLevel    float64
	ConceptualRatio     float64
	HedgingRate         float64
	CertaintyRate       float64
	CalibrationAccuracy float64
	OverconfidenceRate  float64
	UnderconfidenceRate float64
	SelfCorrectionRate  float64
	BoundaryAwareness   float64
	ReflectionFrequency float64
	MonitoringFrequency float64
	AvgChainLength      float64
	AvgLatencyMs        float64
	CuriosityScore      float64
	Persistence         float64

	// Categorical votes, one entry per exchange.
	ReasoningStyles   []extract.ReasoningStyle
	Preferences       []extract.AbstractionPreference
	QuestionQualities []extract.QuestionQuality
	Orientations      []extract.Orientation

	// Engagement by dialogue half, numeric (high=1, medium=0.5, low=0).
	EngagementFirstHalf  float64
	EngagementSecondHalf float64

	// FirstFrustrationExchange is the 1-based exchange index at which the
	// first frustration signal appeared, or 0 if none did.
	FirstFrustrationExchange int

	// Deduplicated across the whole dialogue.
	Insights       []string
	Misconceptions []string

	DiscoveryAchieved  bool
	FinalUnderstanding extract.UnderstandingLevel
	Effectiveness      float64
}

// Aggregate folds a dialogue's ordered extraction results (with parallel
// correctness booleans) into DialogueSignals. Empty input yields the zero
// value with ExchangeCount 0; the updater ignores such dialogues.
func Aggregate(results []extract.Result, correct []bool) DialogueSignals {
	s := DialogueSignals{ExchangeCount: len(results)}
	if len(results) == 0 {
		return s
	}
	n := float64(len(results))

	var calibrated, persisted, errors int
	insights := map[string]bool{}
	misconceptions := map[string]bool{}

	for i, r := range results {
		s.ExplanationQuality += r.ExplanationQuality / n
		s.ElaborationDepth += elaborationDepth(r.WordCount) / n
		s.AbstractionLevel += r.Abstraction.Level / n
		s.ConceptualRatio += conceptualRatio(r) / n
		s.HedgingRate += r.Hedging.Rate / n
		s.CertaintyRate += r.Certainty.Rate / n
		s.BoundaryAwareness += r.BoundaryAwareness / n
		s.AvgChainLength += float64(r.Reasoning.ChainLength) / n
		s.AvgLatencyMs += float64(r.LatencyMs) / n

		if len(r.SelfCorrections) > 0 {
			s.SelfCorrectionRate += 1 / n
		}
		if r.ReflectionCount > 0 {
			s.ReflectionFrequency += 1 / n
		}
		if r.MonitoringCount > 0 {
			s.MonitoringFrequency += 1 / n
		}
		if r.IsOverconfident {
			s.OverconfidenceRate += 1 / n
		}
		if r.IsUnderconfident {
			s.UnderconfidenceRate += 1 / n
		}
		if r.Engagement.CuriosityCount > 0 {
			s.CuriosityScore += 1 / n
		}

		// Calibration: expressed confidence matches actual correctness.
		if i < len(correct) {
			confident := r.Certainty.Rate > r.Hedging.Rate
			if confident == correct[i] {
				calibrated++
			}
			// Persistence: a substantive response following an error.
			if i > 0 && i-1 < len(correct) && !correct[i-1] {
				errors++
				if r.Engagement.Level != extract.EngagementLow {
					persisted++
				}
			}
		}

		s.ReasoningStyles = append(s.ReasoningStyles, r.Reasoning.Style)
		s.Preferences = append(s.Preferences, r.Abstraction.Preference)
		s.QuestionQualities = append(s.QuestionQualities, r.QuestionQuality)
		s.Orientations = append(s.Orientations, r.Engagement.Orientation)

		half := engagementValue(r.Engagement.Level)
		if i < len(results)/2 || len(results) == 1 {
			s.EngagementFirstHalf += half
		} else {
			s.EngagementSecondHalf += half
		}

		if r.Engagement.FrustrationCount > 0 && s.FirstFrustrationExchange == 0 {
			s.FirstFrustrationExchange = i + 1
		}

		for _, ins := range r.Insights {
			if !insights[ins] {
				insights[ins] = true
				s.Insights = append(s.Insights, ins)
			}
		}
		for _, m := range r.Misconceptions {
			if !misconceptions[m] {
				misconceptions[m] = true
				s.Misconceptions = append(s.Misconceptions, m)
			}
		}

		if r.IsDiscoveryMoment {
			s.DiscoveryAchieved = true
		}
	}

	s.CalibrationAccuracy = float64(calibrated) / n
	if errors > 0 {
		s.Persistence = float64(persisted) / float64(errors)
	} else {
		s.Persistence = 0.5 // no errors observed, keep neutral
	}

	firstHalfLen := len(results) / 2
	if len(results) == 1 {
		firstHalfLen = 1
	}
	secondHalfLen := len(results) - firstHalfLen
	s.EngagementFirstHalf /= float64(firstHalfLen)
	if secondHalfLen > 0 {
		s.EngagementSecondHalf /= float64(secondHalfLen)
	} else {
		s.EngagementSecondHalf = s.EngagementFirstHalf
	}

	s.FinalUnderstanding = results[len(results)-1].Understanding
	s.Effectiveness = Effectiveness(s)
	return s
}

// Effectiveness scores a dialogue: half self-discovery rate, half exchange
// efficiency (a dialogue resolved in 5 exchanges or fewer is maximally
// efficient).
func Effectiveness(s DialogueSignals) float64 {
	if s.ExchangeCount == 0 {
		return 0
	}
	discoveries := 0.0
	if s.DiscoveryAchieved {
		discoveries = float64(len(s.Insights))
	}
	discoveryRate := discoveries / float64(s.ExchangeCount)
	if discoveryRate > 1 {
		discoveryRate = 1
	}
	efficiency := 5.0 / float64(s.ExchangeCount)
	if efficiency > 1 {
		efficiency = 1
	}
	return 0.5*discoveryRate + 0.5*efficiency
}

// elaborationDepth scales response length into [0,1]; a 100-word response
// reads as fully elaborated.
func elaborationDepth(wordCount int) float64 {
	d := float64(wordCount) / 100
	if d > 1 {
		return 1
	}
	return d
}

// conceptualRatio reads abstraction level as a proxy for conceptual (vs.
// procedural) explanation balance.
func conceptualRatio(r extract.Result) float64 {
	return r.Abstraction.Level
}

// engagementValue maps the discrete engagement level to a numeric score.
func engagementValue(level extract.EngagementLevel) float64 {
	switch level {
	case extract.EngagementHigh:
		return 1
	case extract.EngagementLow:
		return 0
	default:
		return 0.5
	}
}
