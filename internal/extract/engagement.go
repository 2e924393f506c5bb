package extract

// Engagement classification thresholds.
const (
	highEngagementWords = 30   // minimum word count for "high"
	lowEngagementWords  = 10   // below this the response reads as disengaged
	rushedLatencyMs     = 2000 // a near-instant short reply signals rushing
	rushedWordLimit     = 15
)

// detectEngagement determines the discrete engagement level from word count,
// curiosity/frustration markers and response latency, plus the learner's
// goal orientation.
func detectEngagement(lowered string, wordCount, latencyMs int) EngagementSignal {
	curiosity := len(matchMarkers(lowered, curiosityMarkers))
	frustration := len(matchMarkers(lowered, frustrationMarkers))

	level := EngagementMedium
	switch {
	case wordCount > highEngagementWords && curiosity >= 1 && frustration == 0:
		level = EngagementHigh
	case wordCount < lowEngagementWords || frustration > 0 ||
		(latencyMs < rushedLatencyMs && wordCount < rushedWordLimit):
		level = EngagementLow
	}

	return EngagementSignal{
		Level:            level,
		CuriosityCount:   curiosity,
		FrustrationCount: frustration,
		Orientation:      detectOrientation(lowered),
	}
}

// detectOrientation is a majority vote between the mastery and performance
// marker sets. No markers, or a tie, reads as mixed.
func detectOrientation(lowered string) Orientation {
	mastery := len(matchMarkers(lowered, masteryMarkers))
	performance := len(matchMarkers(lowered, performanceMarkers))
	switch {
	case mastery > performance:
		return OrientationMastery
	case performance > mastery:
		return OrientationPerformance
	default:
		return OrientationMixed
	}
}
