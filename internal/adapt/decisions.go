package adapt

import (
	"math"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// Reasoning-step limits by working-memory band.
const (
	stepsLowMemory     = 2
	stepsHighMemory    = 5
	stepsDefaultMemory = 3
)

// lowQualityThreshold gates hint injection and complex-question breakdown.
const lowQualityThreshold = 0.5

func buildComplexity(p profile.LearnerProfile) QuestionComplexity {
	abstraction := extract.PreferBalanced
	switch p.Understanding.Expertise {
	case profile.ExpertiseNovice, profile.ExpertiseBeginner:
		abstraction = extract.PreferConcrete
	case profile.ExpertiseAdvanced, profile.ExpertiseExpert:
		abstraction = extract.PreferAbstract
	}

	steps := stepsDefaultMemory
	switch p.Reasoning.WorkingMemory {
	case profile.MemoryLow:
		steps = stepsLowMemory
	case profile.MemoryHigh:
		steps = stepsHighMemory
	}

	return QuestionComplexity{
		Abstraction:       abstraction,
		MaxReasoningSteps: steps,
		IncludeHints:      p.Understanding.ExplanationQuality < lowQualityThreshold,
		IncludeExamples: p.Reasoning.Processing == extract.PreferConcrete ||
			p.Understanding.Expertise == profile.ExpertiseNovice,
	}
}

// Scaffolding decision thresholds.
const (
	strongSelfCorrection = 0.3
	highQualityThreshold = 0.7
)

func buildScaffolding(p profile.LearnerProfile) Scaffolding {
	quality := p.Understanding.ExplanationQuality

	switch {
	case p.Metacognition.HelpSeeking == profile.HelpAvoidant && quality < lowQualityThreshold:
		// Avoidant learners who are struggling won't ask; bring support to them.
		return Scaffolding{Level: 1, WorkedExamples: true, ProactiveHints: true, BreakdownComplex: true}

	case p.Metacognition.SelfCorrectionRate > strongSelfCorrection && quality > highQualityThreshold:
		return Scaffolding{Level: 4}

	case p.Metacognition.HelpSeeking == profile.HelpExcessive:
		// Worked examples on request, but no proactive hints: build independence.
		return Scaffolding{Level: 3, WorkedExamples: true}

	default:
		return Scaffolding{
			Level:            2,
			WorkedExamples:   true,
			ProactiveHints:   true,
			BreakdownComplex: quality < lowQualityThreshold,
		}
	}
}

// Calibration stance thresholds.
const (
	overconfidenceTrigger  = 0.4
	certaintyTrigger       = 0.7
	underconfidenceTrigger = 0.4
	hedgingTrigger         = 0.6
)

func buildCalibration(p profile.LearnerProfile) Calibration {
	c := p.ConfidenceAx
	switch {
	case c.OverconfidenceRate > overconfidenceTrigger || c.CertaintyRate > certaintyTrigger:
		return Calibration{
			Stance:                 StanceChallenging,
			IncludeCounterexamples: true,
			PromptVerification:     true,
		}
	case c.UnderconfidenceRate > underconfidenceTrigger || c.HedgingRate > hedgingTrigger:
		return Calibration{
			Stance:                    StanceSupportive,
			CelebrateInsights:         true,
			HighlightCorrectReasoning: true,
		}
	default:
		return Calibration{Stance: StanceNeutral, CelebrateInsights: true}
	}
}

// Metacognitive prompting trigger thresholds.
const (
	lowBoundaryAwareness = 0.3
	lowReflection        = 0.2
	lowMonitoring        = 0.2
)

var boundaryPrompts = []string{
	"What part of this do you feel least sure about?",
	"Where does your understanding stop?",
}

var reflectionPrompts = []string{
	"How has your thinking about this changed?",
	"What did you learn from that last step?",
}

var monitoringPrompts = []string{
	"Before we continue, does your answer still make sense to you?",
	"How would you check that?",
}

func buildMetacogPrompting(p profile.LearnerProfile) MetacogPrompting {
	m := p.Metacognition
	out := MetacogPrompting{Focus: FocusNone}
	triggered := 0

	boundaryLow := m.BoundaryAwareness < lowBoundaryAwareness
	reflectionLow := m.ReflectionFrequency < lowReflection
	monitoringLow := m.MonitoringFrequency < lowMonitoring

	if boundaryLow {
		out.Prompts = append(out.Prompts, boundaryPrompts...)
		triggered++
	}
	if reflectionLow {
		out.Prompts = append(out.Prompts, reflectionPrompts...)
		triggered++
	}
	if monitoringLow {
		out.Prompts = append(out.Prompts, monitoringPrompts...)
		triggered++
	}

	if triggered == 0 {
		return out
	}

	out.Frequency = math.Min(0.5, 0.15*float64(triggered)+0.1)
	switch {
	case monitoringLow && !reflectionLow && !boundaryLow:
		out.Focus = FocusMonitoring
	case reflectionLow && !monitoringLow && !boundaryLow:
		out.Focus = FocusReflection
	default:
		out.Focus = FocusAll
	}
	return out
}

// Engagement tactic thresholds.
const (
	frustrationProximity = 0.8 // fraction of the frustration threshold
	highCuriosity        = 0.7
	moderateCuriosity    = 0.5
	failuresForSwitch    = 2
	successesForStretch  = 2
)

func buildEngagementTactics(p profile.LearnerProfile, s SessionView) EngagementTactics {
	e := p.Engagement

	switch {
	case float64(s.ExchangeCount) >= frustrationProximity*e.FrustrationThreshold:
		// Approaching the learner's frustration point: back off before it hits.
		return EngagementTactics{
			SimplifyQuestions: true,
			OfferBreak:        true,
			Encouragement:     EncourageHigh,
			ShorterExchanges:  true,
			SwitchTopic:       s.ConsecutiveFailures >= failuresForSwitch,
		}

	case e.CuriosityScore > highCuriosity:
		return EngagementTactics{
			Encouragement:          EncourageModerate,
			AllowExtensions:        true,
			CrossDomainConnections: true,
			ChallengingQuestions:   true,
		}

	case e.Trend == profile.TrendDecreasing || s.Engagement == extract.EngagementLow:
		return EngagementTactics{
			SimplifyQuestions: true,
			Encouragement:     EncourageHigh,
			NovelApproach:     true,
		}

	default:
		return EngagementTactics{
			Encouragement:        EncourageModerate,
			AllowExtensions:      e.CuriosityScore > moderateCuriosity,
			ChallengingQuestions: s.ConsecutiveSuccesses >= successesForStretch,
		}
	}
}
