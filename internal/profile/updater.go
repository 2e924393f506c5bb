package profile

import "math"

// baseAlpha is the base EMA weight for new observations.
const baseAlpha = 0.3

// confidenceStep is the per-dialogue growth of each axis confidence.
const confidenceStep = 0.1

// trendBand is the minimum difference before a trend reads as anything but
// stable.
const trendBand = 0.1

// Update folds a completed dialogue's aggregated signals into the profile
// and returns the new profile value. The input profile is not mutated.
// Every scalar indicator moves by a confidence-weighted exponential moving
// average: the lower the axis confidence, the more a new observation moves
// the estimate. Categorical fields are updated by majority vote across the
// dialogue's exchanges. Dialogues with no exchanges leave the profile
// unchanged.
func Update(old LearnerProfile, s DialogueSignals) LearnerProfile {
	if s.ExchangeCount == 0 {
		return old
	}

	p := old // value copy; nested structs copy wholesale

	// Understanding axis.
	ua := effectiveAlpha(old.Understanding.Confidence)
	p.Understanding.ExplanationQuality = ema(old.Understanding.ExplanationQuality, s.ExplanationQuality, ua)
	p.Understanding.ElaborationDepth = ema(old.Understanding.ElaborationDepth, s.ElaborationDepth, ua)
	p.Understanding.AbstractionLevel = ema(old.Understanding.AbstractionLevel, s.AbstractionLevel, ua)
	p.Understanding.ConceptualRatio = ema(old.Understanding.ConceptualRatio, s.ConceptualRatio, ua)
	p.Understanding.Confidence = growConfidence(old.Understanding.Confidence)

	// Confidence axis. The trajectory compares this dialogue's certainty
	// against the previously stored rate.
	ca := effectiveAlpha(old.ConfidenceAx.Confidence)
	p.ConfidenceAx.Trajectory = trendOf(s.CertaintyRate - old.ConfidenceAx.CertaintyRate)
	p.ConfidenceAx.HedgingRate = ema(old.ConfidenceAx.HedgingRate, s.HedgingRate, ca)
	p.ConfidenceAx.CertaintyRate = ema(old.ConfidenceAx.CertaintyRate, s.CertaintyRate, ca)
	p.ConfidenceAx.CalibrationAccuracy = ema(old.ConfidenceAx.CalibrationAccuracy, s.CalibrationAccuracy, ca)
	p.ConfidenceAx.OverconfidenceRate = ema(old.ConfidenceAx.OverconfidenceRate, s.OverconfidenceRate, ca)
	p.ConfidenceAx.UnderconfidenceRate = ema(old.ConfidenceAx.UnderconfidenceRate, s.UnderconfidenceRate, ca)
	p.ConfidenceAx.Confidence = growConfidence(old.ConfidenceAx.Confidence)

	// Metacognition axis.
	ma := effectiveAlpha(old.Metacognition.Confidence)
	p.Metacognition.SelfCorrectionRate = ema(old.Metacognition.SelfCorrectionRate, s.SelfCorrectionRate, ma)
	p.Metacognition.BoundaryAwareness = ema(old.Metacognition.BoundaryAwareness, s.BoundaryAwareness, ma)
	p.Metacognition.ReflectionFrequency = ema(old.Metacognition.ReflectionFrequency, s.ReflectionFrequency, ma)
	p.Metacognition.MonitoringFrequency = ema(old.Metacognition.MonitoringFrequency, s.MonitoringFrequency, ma)
	p.Metacognition.QuestionQuality = majority(s.QuestionQualities, old.Metacognition.QuestionQuality)
	p.Metacognition.Confidence = growConfidence(old.Metacognition.Confidence)

	// Reasoning axis.
	ra := effectiveAlpha(old.Reasoning.Confidence)
	p.Reasoning.Style = majority(s.ReasoningStyles, old.Reasoning.Style)
	p.Reasoning.Processing = majority(s.Preferences, old.Reasoning.Processing)
	p.Reasoning.AvgChainLength = ema(old.Reasoning.AvgChainLength, s.AvgChainLength, ra)
	p.Reasoning.Confidence = growConfidence(old.Reasoning.Confidence)

	// Engagement axis. The trend compares the dialogue's second half against
	// its first half.
	ea := effectiveAlpha(old.Engagement.Confidence)
	p.Engagement.AvgResponseLatencyMs = ema(old.Engagement.AvgResponseLatencyMs, s.AvgLatencyMs, ea)
	p.Engagement.Trend = trendOf(s.EngagementSecondHalf - s.EngagementFirstHalf)
	p.Engagement.CuriosityScore = ema(old.Engagement.CuriosityScore, s.CuriosityScore, ea)
	p.Engagement.PersistenceAfterError = ema(old.Engagement.PersistenceAfterError, s.Persistence, ea)
	p.Engagement.FrustrationThreshold = updateFrustrationThreshold(old.Engagement.FrustrationThreshold, s, ea)
	p.Engagement.Confidence = growConfidence(old.Engagement.Confidence)

	p.DialogueCount = old.DialogueCount + 1
	p.Clamp()
	return p
}

// ema blends a new observation into the running estimate.
func ema(old, observation, alpha float64) float64 {
	return alpha*observation + (1-alpha)*old
}

// effectiveAlpha scales the base weight by axis confidence: early in a
// learner's history new observations move the estimate more. The formula
// converges but never fully locks in, keeping profiles adaptable.
func effectiveAlpha(confidence float64) float64 {
	return baseAlpha * (0.5 + 0.5*confidence)
}

// growConfidence advances an axis confidence by one dialogue. Monotonically
// non-decreasing, never exceeds 1.
func growConfidence(c float64) float64 {
	return math.Min(1, c+confidenceStep)
}

// trendOf maps a signed difference to a trend using the +/-0.1 band.
func trendOf(diff float64) Trend {
	switch {
	case diff > trendBand:
		return TrendIncreasing
	case diff < -trendBand:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// updateFrustrationThreshold recalibrates toward the exchange index at which
// the first frustration signal appeared this dialogue, or the full exchange
// count if none appeared.
func updateFrustrationThreshold(old float64, s DialogueSignals, alpha float64) float64 {
	observed := float64(s.ExchangeCount)
	if s.FirstFrustrationExchange > 0 {
		observed = float64(s.FirstFrustrationExchange)
	}
	blended := ema(old, observed, alpha)
	if blended < 1 {
		return 1
	}
	return blended
}

// majority returns the most frequent value in votes, falling back to the
// previous value on an empty slate. Ties break toward the earliest-seen
// value, keeping the vote deterministic.
func majority[T comparable](votes []T, previous T) T {
	if len(votes) == 0 {
		return previous
	}
	counts := make(map[T]int, len(votes))
	var order []T
	for _, v := range votes {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
