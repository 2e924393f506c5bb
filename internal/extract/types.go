package extract

// UnderstandingLevel classifies how well a single response demonstrates
// understanding of the target concept.
type UnderstandingLevel string

const (
	UnderstandingNone     UnderstandingLevel = "none"
	UnderstandingSurface  UnderstandingLevel = "surface"
	UnderstandingPartial  UnderstandingLevel = "partial"
	UnderstandingDeep     UnderstandingLevel = "deep"
	UnderstandingTransfer UnderstandingLevel = "transfer"
)

// QuestionType is the kind of tutor question to ask next.
type QuestionType string

const (
	QuestionClarifying    QuestionType = "clarifying"
	QuestionProbing       QuestionType = "probing"
	QuestionScaffolding   QuestionType = "scaffolding"
	QuestionChallenging   QuestionType = "challenging"
	QuestionReflection    QuestionType = "reflection"
	QuestionMetacognitive QuestionType = "metacognitive"
)

// ReasoningStyle classifies the dominant reasoning direction in a response.
type ReasoningStyle string

const (
	ReasoningDeductive ReasoningStyle = "deductive"
	ReasoningInductive ReasoningStyle = "inductive"
	ReasoningMixed     ReasoningStyle = "mixed"
)

// AbstractionPreference indicates whether a learner leans on concrete
// examples or abstract generalizations.
type AbstractionPreference string

const (
	PreferConcrete AbstractionPreference = "concrete"
	PreferAbstract AbstractionPreference = "abstract"
	PreferBalanced AbstractionPreference = "balanced"
)

// EngagementLevel is the discrete engagement reading for one exchange.
type EngagementLevel string

const (
	EngagementHigh   EngagementLevel = "high"
	EngagementMedium EngagementLevel = "medium"
	EngagementLow    EngagementLevel = "low"
)

// Orientation is the learner's goal orientation for this exchange.
type Orientation string

const (
	OrientationMastery     Orientation = "mastery"
	OrientationPerformance Orientation = "performance"
	OrientationMixed       Orientation = "mixed"
)

// QuestionQuality grades any question the learner asked in their response.
type QuestionQuality string

const (
	QualitySurface       QuestionQuality = "surface"
	QualityDeep          QuestionQuality = "deep"
	QualityMetacognitive QuestionQuality = "metacognitive"
)

// Context carries the shallow conversational context for extraction.
type Context struct {
	// Concept is the target concept of the dialogue.
	Concept string

	// ExchangeIndex is the zero-based index of this exchange.
	ExchangeIndex int

	// PriorQuestion is the tutor question the learner is responding to.
	// Empty for unsolicited turns.
	PriorQuestion string

	// KnownMisconceptions is the list of misconception descriptions known
	// for the target skill. Matched against the response text.
	KnownMisconceptions []string
}

// RateSignal is a bounded [0,1] rate plus the literal phrases that matched.
type RateSignal struct {
	Rate    float64
	Markers []string
}

// ReasoningSignal holds the reasoning-style reading for one response.
type ReasoningSignal struct {
	Style       ReasoningStyle
	ChainLength int  // count of chain connectives (therefore, thus, ...)
	Causal      bool // any causal marker present
}

// AbstractionSignal holds the abstraction measurement for one response.
type AbstractionSignal struct {
	// Level is abstract/(abstract+concrete) marker counts; 0.5 when neither
	// kind of marker appears.
	Level      float64
	Preference AbstractionPreference
}

// EngagementSignal holds the engagement reading for one response.
type EngagementSignal struct {
	Level            EngagementLevel
	CuriosityCount   int
	FrustrationCount int
	Orientation      Orientation
}

// CommunicationSignal holds communication-quality estimates.
type CommunicationSignal struct {
	Responsiveness    float64 // content-word overlap with the prior question
	Vocabulary        float64 // from average word length
	GrammarComplexity float64 // from average sentence length
}

// Result is the full extraction output for a single learner response.
// Immutable once produced.
type Result struct {
	WordCount int
	LatencyMs int

	Hedging   RateSignal
	Certainty RateSignal

	// SelfCorrections holds one matched sentence per self-correction marker.
	SelfCorrections []string

	BoundaryAwareness float64 // normalized to [0,1]
	MonitoringCount   int
	ReflectionCount   int

	Reasoning     ReasoningSignal
	Abstraction   AbstractionSignal
	Engagement    EngagementSignal
	Communication CommunicationSignal

	ExplanationQuality float64

	// Misconceptions lists the known-misconception descriptions detected in
	// this response.
	Misconceptions []string

	// Insights holds the literal sentences containing insight phrases.
	Insights []string

	IsOverconfident   bool
	IsUnderconfident  bool
	QuestionQuality   QuestionQuality
	Understanding     UnderstandingLevel
	IsDiscoveryMoment bool
	RecommendedNext   QuestionType
}
