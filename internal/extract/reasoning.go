package extract

// styleRatio is the dominance factor one marker family must exceed over the
// other before the style is classified as anything but mixed.
const styleRatio = 1.5

// detectReasoning classifies reasoning style from deductive vs. inductive
// marker counts and measures logical-chain length.
func detectReasoning(lowered string) ReasoningSignal {
	deductive := len(matchMarkers(lowered, deductiveMarkers))
	inductive := len(matchMarkers(lowered, inductiveMarkers))

	style := ReasoningMixed
	switch {
	case float64(deductive) > styleRatio*float64(inductive) && deductive > 0:
		style = ReasoningDeductive
	case float64(inductive) > styleRatio*float64(deductive) && inductive > 0:
		style = ReasoningInductive
	}

	return ReasoningSignal{
		Style:       style,
		ChainLength: countOccurrences(lowered, chainConnectives),
		Causal:      len(matchMarkers(lowered, causalMarkers)) > 0,
	}
}

// Abstraction preference thresholds on the abstract/(abstract+concrete) ratio.
const (
	abstractThreshold = 0.65
	concreteThreshold = 0.35
)

// detectAbstraction measures concrete vs. abstract marker balance.
// Numerals count as concrete evidence. Level defaults to the 0.5 neutral
// midpoint when no markers appear.
func detectAbstraction(text, lowered string) AbstractionSignal {
	concrete := len(matchMarkers(lowered, concreteMarkers))
	if hasNumeral(text) {
		concrete++
	}
	abstract := len(matchMarkers(lowered, abstractMarkers))

	level := 0.5
	if total := concrete + abstract; total > 0 {
		level = float64(abstract) / float64(total)
	}

	pref := PreferBalanced
	switch {
	case level > abstractThreshold:
		pref = PreferAbstract
	case level < concreteThreshold:
		pref = PreferConcrete
	}

	return AbstractionSignal{Level: level, Preference: pref}
}
