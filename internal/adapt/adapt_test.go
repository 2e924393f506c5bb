package adapt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

func TestBuild_Deterministic(t *testing.T) {
	p := profile.NewDefault()
	s := SessionView{ExchangeCount: 3, Engagement: extract.EngagementMedium}

	first := Build(p, s)
	second := Build(p, s)
	assert.Equal(t, first, second)
}

func TestBuildComplexity(t *testing.T) {
	tests := []struct {
		name      string
		expertise profile.Expertise
		memory    profile.WorkingMemory
		quality   float64
		want      QuestionComplexity
	}{
		{"novice low memory", profile.ExpertiseNovice, profile.MemoryLow, 0.3,
			QuestionComplexity{Abstraction: extract.PreferConcrete, MaxReasoningSteps: 2, IncludeHints: true, IncludeExamples: true}},
		{"expert high memory", profile.ExpertiseExpert, profile.MemoryHigh, 0.8,
			QuestionComplexity{Abstraction: extract.PreferAbstract, MaxReasoningSteps: 5}},
		{"intermediate defaults", profile.ExpertiseIntermediate, profile.MemoryMedium, 0.6,
			QuestionComplexity{Abstraction: extract.PreferBalanced, MaxReasoningSteps: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.NewDefault()
			p.Understanding.Expertise = tt.expertise
			p.Understanding.ExplanationQuality = tt.quality
			p.Reasoning.WorkingMemory = tt.memory
			assert.Equal(t, tt.want, buildComplexity(p))
		})
	}
}

func TestBuildScaffolding(t *testing.T) {
	t.Run("avoidant struggler gets full support", func(t *testing.T) {
		p := profile.NewDefault()
		p.Metacognition.HelpSeeking = profile.HelpAvoidant
		p.Understanding.ExplanationQuality = 0.3
		got := buildScaffolding(p)
		assert.Equal(t, 1, got.Level)
		assert.True(t, got.ProactiveHints)
	})

	t.Run("strong self-corrector works independently", func(t *testing.T) {
		p := profile.NewDefault()
		p.Metacognition.SelfCorrectionRate = 0.4
		p.Understanding.ExplanationQuality = 0.8
		got := buildScaffolding(p)
		assert.Equal(t, Scaffolding{Level: 4}, got)
	})

	t.Run("excessive help seeker gets no proactive hints", func(t *testing.T) {
		p := profile.NewDefault()
		p.Metacognition.HelpSeeking = profile.HelpExcessive
		got := buildScaffolding(p)
		assert.Equal(t, 3, got.Level)
		assert.False(t, got.ProactiveHints)
	})

	t.Run("default is moderate", func(t *testing.T) {
		got := buildScaffolding(profile.NewDefault())
		assert.Equal(t, 2, got.Level)
		assert.True(t, got.WorkedExamples)
	})
}

func TestBuildCalibration(t *testing.T) {
	t.Run("overconfident gets challenged", func(t *testing.T) {
		p := profile.NewDefault()
		p.ConfidenceAx.OverconfidenceRate = 0.5
		got := buildCalibration(p)
		assert.Equal(t, StanceChallenging, got.Stance)
		assert.True(t, got.IncludeCounterexamples)
	})

	t.Run("heavy hedger gets support", func(t *testing.T) {
		p := profile.NewDefault()
		p.ConfidenceAx.HedgingRate = 0.7
		got := buildCalibration(p)
		assert.Equal(t, StanceSupportive, got.Stance)
		assert.True(t, got.HighlightCorrectReasoning)
	})

	t.Run("balanced stays neutral", func(t *testing.T) {
		got := buildCalibration(profile.NewDefault())
		assert.Equal(t, StanceNeutral, got.Stance)
		assert.True(t, got.CelebrateInsights)
	})
}

func TestBuildMetacogPrompting(t *testing.T) {
	t.Run("no weaknesses no prompts", func(t *testing.T) {
		p := profile.NewDefault()
		p.Metacognition.BoundaryAwareness = 0.5
		p.Metacognition.ReflectionFrequency = 0.4
		p.Metacognition.MonitoringFrequency = 0.4
		got := buildMetacogPrompting(p)
		assert.Equal(t, FocusNone, got.Focus)
		assert.Empty(t, got.Prompts)
		assert.Zero(t, got.Frequency)
	})

	t.Run("single weakness focuses", func(t *testing.T) {
		p := profile.NewDefault()
		p.Metacognition.BoundaryAwareness = 0.5
		p.Metacognition.ReflectionFrequency = 0.4
		p.Metacognition.MonitoringFrequency = 0.1
		got := buildMetacogPrompting(p)
		assert.Equal(t, FocusMonitoring, got.Focus)
		assert.InDelta(t, 0.25, got.Frequency, 1e-9)
	})

	t.Run("multiple weaknesses cover all", func(t *testing.T) {
		p := profile.NewDefault()
		p.Metacognition.BoundaryAwareness = 0.1
		p.Metacognition.ReflectionFrequency = 0.1
		p.Metacognition.MonitoringFrequency = 0.1
		got := buildMetacogPrompting(p)
		assert.Equal(t, FocusAll, got.Focus)
		assert.InDelta(t, 0.5, got.Frequency, 1e-9)
		assert.Len(t, got.Prompts, 6)
	})
}

func TestBuildEngagementTactics(t *testing.T) {
	t.Run("near frustration threshold backs off", func(t *testing.T) {
		p := profile.NewDefault() // threshold 5
		s := SessionView{ExchangeCount: 4, ConsecutiveFailures: 2}
		got := buildEngagementTactics(p, s)
		assert.True(t, got.OfferBreak)
		assert.True(t, got.SwitchTopic)
		assert.Equal(t, EncourageHigh, got.Encouragement)
	})

	t.Run("curious learner gets stretched", func(t *testing.T) {
		p := profile.NewDefault()
		p.Engagement.CuriosityScore = 0.8
		got := buildEngagementTactics(p, SessionView{ExchangeCount: 1})
		assert.True(t, got.CrossDomainConnections)
		assert.True(t, got.ChallengingQuestions)
	})

	t.Run("declining engagement tries a novel approach", func(t *testing.T) {
		p := profile.NewDefault()
		p.Engagement.Trend = profile.TrendDecreasing
		got := buildEngagementTactics(p, SessionView{ExchangeCount: 1})
		assert.True(t, got.NovelApproach)
		assert.True(t, got.SimplifyQuestions)
	})

	t.Run("success streak earns harder questions", func(t *testing.T) {
		got := buildEngagementTactics(profile.NewDefault(),
			SessionView{ExchangeCount: 1, ConsecutiveSuccesses: 2, Engagement: extract.EngagementMedium})
		assert.True(t, got.ChallengingQuestions)
	})
}

func TestCheckInterventions_PriorityOrder(t *testing.T) {
	p := profile.NewDefault() // frustration threshold 5

	frustrated := &extract.Result{Engagement: extract.EngagementSignal{FrustrationCount: 1}}
	discovery := &extract.Result{IsDiscoveryMoment: true}

	tests := []struct {
		name string
		s    SessionView
		want InterventionType
		prio Priority
	}{
		{"threshold reached", SessionView{ExchangeCount: 5}, InterventionTakeBreak, PriorityHigh},
		{"frustration signal", SessionView{ExchangeCount: 2, Last: frustrated}, InterventionSimplify, PriorityHigh},
		{"repeated failures", SessionView{ExchangeCount: 2, ConsecutiveFailures: 3}, InterventionSwitchTopic, PriorityMedium},
		{"discovery moment", SessionView{ExchangeCount: 2, Last: discovery}, InterventionCelebrate, PriorityMedium},
		{"success streak", SessionView{ExchangeCount: 2, ConsecutiveSuccesses: 5}, InterventionCelebrate, PriorityLow},
		{"long session", SessionView{ExchangeCount: 2, Duration: 50 * time.Minute}, InterventionTakeBreak, PriorityMedium},
		{"low engagement", SessionView{ExchangeCount: 2, Engagement: extract.EngagementLow}, InterventionEncourage, PriorityLow},
		{"nothing", SessionView{ExchangeCount: 2, Engagement: extract.EngagementMedium}, InterventionNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckInterventions(p, tt.s)
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.prio, got.Priority)
		})
	}
}

func TestCheckInterventions_FrustrationBeatsDiscovery(t *testing.T) {
	p := profile.NewDefault()
	last := &extract.Result{
		IsDiscoveryMoment: true,
		Engagement:        extract.EngagementSignal{FrustrationCount: 1},
	}
	got := CheckInterventions(p, SessionView{ExchangeCount: 2, Last: last})
	assert.Equal(t, InterventionSimplify, got.Type)
}
