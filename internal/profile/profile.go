package profile

import (
	"fmt"
	"os"

	"github.com/abhisek/socra/internal/extract"
)

// Trend is the direction of a profile indicator over recent dialogues.
type Trend string

const (
	TrendStable     Trend = "stable"
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
)

// Expertise is the learner's coarse expertise band for the notebook's domain.
type Expertise string

const (
	ExpertiseNovice       Expertise = "novice"
	ExpertiseBeginner     Expertise = "beginner"
	ExpertiseIntermediate Expertise = "intermediate"
	ExpertiseAdvanced     Expertise = "advanced"
	ExpertiseExpert       Expertise = "expert"
)

// WorkingMemory is the learner's estimated working-memory capacity band.
type WorkingMemory string

const (
	MemoryLow    WorkingMemory = "low"
	MemoryMedium WorkingMemory = "medium"
	MemoryHigh   WorkingMemory = "high"
)

// HelpSeekingStyle classifies how readily the learner asks for help.
type HelpSeekingStyle string

const (
	HelpAvoidant  HelpSeekingStyle = "avoidant"
	HelpBalanced  HelpSeekingStyle = "balanced"
	HelpExcessive HelpSeekingStyle = "excessive"
)

// UnderstandingAxis tracks explanation and abstraction indicators.
type UnderstandingAxis struct {
	ExplanationQuality float64   `json:"explanationQuality"`
	ElaborationDepth   float64   `json:"elaborationDepth"`
	AbstractionLevel   float64   `json:"abstractionLevel"`
	ConceptualRatio    float64   `json:"conceptualRatio"` // conceptual vs. procedural balance
	Expertise          Expertise `json:"expertise"`
	Confidence         float64   `json:"confidence"`
}

// ConfidenceAxis tracks calibration between expressed and actual competence.
type ConfidenceAxis struct {
	HedgingRate         float64 `json:"hedgingRate"`
	CertaintyRate       float64 `json:"certaintyRate"`
	CalibrationAccuracy float64 `json:"calibrationAccuracy"`
	OverconfidenceRate  float64 `json:"overconfidenceRate"`
	UnderconfidenceRate float64 `json:"underconfidenceRate"`
	Trajectory          Trend   `json:"trajectory"`
	Confidence          float64 `json:"confidence"`
}

// MetacognitionAxis tracks self-monitoring indicators.
type MetacognitionAxis struct {
	SelfCorrectionRate  float64                 `json:"selfCorrectionRate"`
	BoundaryAwareness   float64                 `json:"boundaryAwareness"`
	ReflectionFrequency float64                 `json:"reflectionFrequency"`
	MonitoringFrequency float64                 `json:"monitoringFrequency"`
	QuestionQuality     extract.QuestionQuality `json:"questionQuality"`
	HelpSeeking         HelpSeekingStyle        `json:"helpSeeking"`
	Confidence          float64                 `json:"confidence"`
}

// ReasoningAxis tracks reasoning style and capacity indicators.
type ReasoningAxis struct {
	Style          extract.ReasoningStyle        `json:"style"`
	Processing     extract.AbstractionPreference `json:"processing"`
	AvgChainLength float64                       `json:"avgChainLength"`
	WorkingMemory  WorkingMemory                 `json:"workingMemory"`
	Confidence     float64                       `json:"confidence"`
}

// EngagementAxis tracks motivation and persistence indicators.
type EngagementAxis struct {
	AvgResponseLatencyMs  float64 `json:"avgResponseLatencyMs"`
	Trend                 Trend   `json:"trend"`
	CuriosityScore        float64 `json:"curiosityScore"`
	FrustrationThreshold  float64 `json:"frustrationThreshold"` // exchange count, always >= 1
	PersistenceAfterError float64 `json:"persistenceAfterError"`
	Confidence            float64 `json:"confidence"`
}

// LearnerProfile is the durable multi-dimensional profile for one
// learner x notebook. Mutated only by Update at dialogue completion,
// never mid-dialogue.
type LearnerProfile struct {
	Understanding UnderstandingAxis `json:"understanding"`
	ConfidenceAx  ConfidenceAxis    `json:"confidence"`
	Metacognition MetacognitionAxis `json:"metacognition"`
	Reasoning     ReasoningAxis     `json:"reasoning"`
	Engagement    EngagementAxis    `json:"engagement"`

	// DialogueCount is the number of completed dialogues folded in.
	DialogueCount int `json:"dialogueCount"`
}

// initialConfidence is the starting per-axis confidence for a learner with
// no history.
const initialConfidence = 0.3

// NewDefault returns the fully-populated neutral profile used when the
// persistence layer has no history for a learner.
func NewDefault() LearnerProfile {
	return LearnerProfile{
		Understanding: UnderstandingAxis{
			ExplanationQuality: 0.5,
			ElaborationDepth:   0.5,
			AbstractionLevel:   0.5,
			ConceptualRatio:    0.5,
			Expertise:          ExpertiseIntermediate,
			Confidence:         initialConfidence,
		},
		ConfidenceAx: ConfidenceAxis{
			HedgingRate:         0.3,
			CertaintyRate:       0.3,
			CalibrationAccuracy: 0.5,
			OverconfidenceRate:  0.2,
			UnderconfidenceRate: 0.2,
			Trajectory:          TrendStable,
			Confidence:          initialConfidence,
		},
		Metacognition: MetacognitionAxis{
			SelfCorrectionRate:  0.1,
			BoundaryAwareness:   0.5,
			ReflectionFrequency: 0.2,
			MonitoringFrequency: 0.2,
			QuestionQuality:     extract.QualitySurface,
			HelpSeeking:         HelpBalanced,
			Confidence:          initialConfidence,
		},
		Reasoning: ReasoningAxis{
			Style:          extract.ReasoningMixed,
			Processing:     extract.PreferBalanced,
			AvgChainLength: 1,
			WorkingMemory:  MemoryMedium,
			Confidence:     initialConfidence,
		},
		Engagement: EngagementAxis{
			AvgResponseLatencyMs:  30000,
			Trend:                 TrendStable,
			CuriosityScore:        0.5,
			FrustrationThreshold:  5,
			PersistenceAfterError: 0.5,
			Confidence:            initialConfidence,
		},
	}
}

// Clamp enforces the profile invariants in place: rate fields stay in [0,1],
// the frustration threshold stays positive, empty enums get neutral values.
// Violations are repaired rather than rejected, with a warning to stderr.
func (p *LearnerProfile) Clamp() {
	warn := func(field string) {
		fmt.Fprintf(os.Stderr, "warning: learner profile field %s out of range, clamped\n", field)
	}

	rates := []struct {
		name string
		v    *float64
	}{
		{"understanding.explanationQuality", &p.Understanding.ExplanationQuality},
		{"understanding.elaborationDepth", &p.Understanding.ElaborationDepth},
		{"understanding.abstractionLevel", &p.Understanding.AbstractionLevel},
		{"understanding.conceptualRatio", &p.Understanding.ConceptualRatio},
		{"understanding.confidence", &p.Understanding.Confidence},
		{"confidence.hedgingRate", &p.ConfidenceAx.HedgingRate},
		{"confidence.certaintyRate", &p.ConfidenceAx.CertaintyRate},
		{"confidence.calibrationAccuracy", &p.ConfidenceAx.CalibrationAccuracy},
		{"confidence.overconfidenceRate", &p.ConfidenceAx.OverconfidenceRate},
		{"confidence.underconfidenceRate", &p.ConfidenceAx.UnderconfidenceRate},
		{"confidence.confidence", &p.ConfidenceAx.Confidence},
		{"metacognition.selfCorrectionRate", &p.Metacognition.SelfCorrectionRate},
		{"metacognition.boundaryAwareness", &p.Metacognition.BoundaryAwareness},
		{"metacognition.reflectionFrequency", &p.Metacognition.ReflectionFrequency},
		{"metacognition.monitoringFrequency", &p.Metacognition.MonitoringFrequency},
		{"metacognition.confidence", &p.Metacognition.Confidence},
		{"reasoning.confidence", &p.Reasoning.Confidence},
		{"engagement.curiosityScore", &p.Engagement.CuriosityScore},
		{"engagement.persistenceAfterError", &p.Engagement.PersistenceAfterError},
		{"engagement.confidence", &p.Engagement.Confidence},
	}
	for _, r := range rates {
		if *r.v < 0 {
			*r.v = 0
			warn(r.name)
		} else if *r.v > 1 {
			*r.v = 1
			warn(r.name)
		}
	}

	if p.Engagement.FrustrationThreshold < 1 {
		p.Engagement.FrustrationThreshold = 1
		warn("engagement.frustrationThreshold")
	}
	if p.Reasoning.AvgChainLength < 0 {
		p.Reasoning.AvgChainLength = 0
		warn("reasoning.avgChainLength")
	}
	if p.Engagement.AvgResponseLatencyMs < 0 {
		p.Engagement.AvgResponseLatencyMs = 0
		warn("engagement.avgResponseLatencyMs")
	}

	if p.ConfidenceAx.Trajectory == "" {
		p.ConfidenceAx.Trajectory = TrendStable
	}
	if p.Engagement.Trend == "" {
		p.Engagement.Trend = TrendStable
	}
	if p.Understanding.Expertise == "" {
		p.Understanding.Expertise = ExpertiseIntermediate
	}
	if p.Reasoning.Style == "" {
		p.Reasoning.Style = extract.ReasoningMixed
	}
	if p.Reasoning.Processing == "" {
		p.Reasoning.Processing = extract.PreferBalanced
	}
	if p.Reasoning.WorkingMemory == "" {
		p.Reasoning.WorkingMemory = MemoryMedium
	}
	if p.Metacognition.HelpSeeking == "" {
		p.Metacognition.HelpSeeking = HelpBalanced
	}
	if p.Metacognition.QuestionQuality == "" {
		p.Metacognition.QuestionQuality = QualityDefault
	}
}

// QualityDefault is the neutral question-quality grade for new profiles.
const QualityDefault = extract.QualitySurface
