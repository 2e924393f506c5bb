package extract

import (
	"math"
	"strings"
)

// Explanation-quality scoring weights. Additive, clamped to [0,1].
const (
	conceptMentionBonus  = 0.10
	structureMarkerBonus = 0.10 // per structure marker
	exampleBonus         = 0.15
	connectionBonus      = 0.15
	elaborationCap       = 0.30 // length bonus caps at wordCount 100
	causalMarkerBonus    = 0.05 // per causal marker
)

// scoreExplanation applies the additive explanation-quality heuristic.
func scoreExplanation(lowered string, wordCount int, concept string) float64 {
	score := 0.0

	if concept != "" && strings.Contains(lowered, strings.ToLower(concept)) {
		score += conceptMentionBonus
	}

	score += structureMarkerBonus * float64(len(matchMarkers(lowered, structureMarkers)))

	if len(matchMarkers(lowered, exampleMarkers)) > 0 {
		score += exampleBonus
	}
	if len(matchMarkers(lowered, connectionMarkers)) > 0 {
		score += connectionBonus
	}

	score += math.Min(elaborationCap, float64(wordCount)/100)
	score += causalMarkerBonus * float64(len(matchMarkers(lowered, causalMarkers)))

	return clamp01(score)
}

// minMisconceptionKeywords is the keyword hit count required to flag a
// misconception (capped by the misconception's own keyword count).
const minMisconceptionKeywords = 2

// detectMisconceptions matches the response against the known-misconceptions
// list. A misconception is flagged when at least min(2, keywordCount) of its
// keywords (tokens longer than 4 characters) appear in the response.
func detectMisconceptions(lowered string, known []string) []string {
	var found []string
	for _, m := range known {
		keywords := misconceptionKeywords(m)
		if len(keywords) == 0 {
			continue
		}
		required := minMisconceptionKeywords
		if len(keywords) < required {
			required = len(keywords)
		}
		hits := 0
		for _, k := range keywords {
			if strings.Contains(lowered, k) {
				hits++
			}
		}
		if hits >= required {
			found = append(found, m)
		}
	}
	return found
}

// misconceptionKeywords tokenizes a misconception description into its
// keywords: lowercased tokens longer than 4 characters.
func misconceptionKeywords(description string) []string {
	var out []string
	for _, w := range words(strings.ToLower(description)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) > 4 {
			out = append(out, w)
		}
	}
	return out
}

// detectInsights returns the literal sentences containing insight phrases.
func detectInsights(text string) []string {
	return sentencesContaining(text, insightMarkers)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
