package adapt

import (
	"time"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// SessionView is the slice of live session state the configuration engine
// reads. The dialogue orchestrator builds one from its session state before
// every rebuild.
type SessionView struct {
	ExchangeCount        int
	ConsecutiveFailures  int
	ConsecutiveSuccesses int
	Engagement           extract.EngagementLevel
	Duration             time.Duration
	LastLatencyMs        int

	// Last is the most recent extraction, nil before the first exchange.
	Last *extract.Result
}

// Stance is the confidence-calibration stance for the next tutor turn.
type Stance string

const (
	StanceChallenging Stance = "challenging"
	StanceSupportive  Stance = "supportive"
	StanceNeutral     Stance = "neutral"
)

// QuestionComplexity controls how hard the next question should be.
type QuestionComplexity struct {
	Abstraction       extract.AbstractionPreference
	MaxReasoningSteps int
	IncludeHints      bool
	IncludeExamples   bool
}

// Scaffolding controls how much support the next turn provides.
// Level runs 1 (full worked examples) through 4 (independent practice).
type Scaffolding struct {
	Level            int
	WorkedExamples   bool
	ProactiveHints   bool
	BreakdownComplex bool
}

// Calibration controls how the tutor responds to the learner's expressed
// confidence.
type Calibration struct {
	Stance                    Stance
	IncludeCounterexamples    bool
	PromptVerification        bool
	CelebrateInsights         bool
	HighlightCorrectReasoning bool
}

// MetacogFocus names which metacognitive skill the prompts target.
type MetacogFocus string

const (
	FocusNone       MetacogFocus = "none"
	FocusMonitoring MetacogFocus = "monitoring"
	FocusReflection MetacogFocus = "reflection"
	FocusAll        MetacogFocus = "all"
)

// MetacogPrompting controls metacognitive prompt injection.
type MetacogPrompting struct {
	Prompts   []string
	Frequency float64
	Focus     MetacogFocus
}

// EncouragementLevel grades how much encouragement the tutor should give.
type EncouragementLevel string

const (
	EncourageModerate EncouragementLevel = "moderate"
	EncourageHigh     EncouragementLevel = "high"
)

// EngagementTactics controls pacing and motivational moves.
type EngagementTactics struct {
	SimplifyQuestions      bool
	OfferBreak             bool
	Encouragement          EncouragementLevel
	ShorterExchanges       bool
	SwitchTopic            bool
	AllowExtensions        bool
	CrossDomainConnections bool
	ChallengingQuestions   bool
	NovelApproach          bool
}

// Config is the full adaptive configuration for the next tutor turn: five
// independent decisions recomputed from profile plus session state before
// every turn. Pure function of its inputs, never mutated, always rebuilt.
type Config struct {
	Complexity QuestionComplexity
	Scaffold   Scaffolding
	Calibrate  Calibration
	Metacog    MetacogPrompting
	Engage     EngagementTactics
}

// Build computes the adaptive configuration from the durable profile and the
// live session view. Deterministic and side-effect free.
func Build(p profile.LearnerProfile, s SessionView) Config {
	return Config{
		Complexity: buildComplexity(p),
		Scaffold:   buildScaffolding(p),
		Calibrate:  buildCalibration(p),
		Metacog:    buildMetacogPrompting(p),
		Engage:     buildEngagementTactics(p, s),
	}
}
