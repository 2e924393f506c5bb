package extract

import "math"

// rateDenominator normalizes marker counts by response length so long
// answers are not penalized for containing a few markers.
func rateDenominator(wordCount int) float64 {
	return math.Max(3, float64(wordCount)/20)
}

// detectHedging scans for hedging markers and returns a length-normalized
// rate in [0,1] with the matched phrases.
func detectHedging(lowered string, wordCount int) RateSignal {
	found := matchMarkers(lowered, hedgingMarkers)
	rate := math.Min(1, float64(len(found))/rateDenominator(wordCount))
	return RateSignal{Rate: rate, Markers: found}
}

// detectCertainty scans for certainty markers, same normalization as hedging.
func detectCertainty(lowered string, wordCount int) RateSignal {
	found := matchMarkers(lowered, certaintyMarkers)
	rate := math.Min(1, float64(len(found))/rateDenominator(wordCount))
	return RateSignal{Rate: rate, Markers: found}
}

// detectSelfCorrections returns one matched sentence per self-correction
// marker found. The count is cumulative, no cap.
func detectSelfCorrections(text string) []string {
	return sentencesContaining(text, selfCorrectionMarkers)
}

// detectMetacognition measures the three metacognitive marker sets.
// Boundary awareness is normalized to [0,1]; monitoring and reflection are
// raw counts.
func detectMetacognition(lowered string) (boundary float64, monitoring, reflection int) {
	boundaryCount := len(matchMarkers(lowered, boundaryMarkers))
	boundary = math.Min(1, float64(boundaryCount)/3)
	monitoring = len(matchMarkers(lowered, monitoringMarkers))
	reflection = len(matchMarkers(lowered, reflectionMarkers))
	return boundary, monitoring, reflection
}
