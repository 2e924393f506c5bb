package mastery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

func TestComputeAdjustment(t *testing.T) {
	tests := []struct {
		name string
		s    profile.DialogueSignals
		want float64
	}{
		{"no understanding",
			profile.DialogueSignals{FinalUnderstanding: extract.UnderstandingNone},
			-0.10},
		{"surface",
			profile.DialogueSignals{FinalUnderstanding: extract.UnderstandingSurface},
			-0.05},
		{"partial",
			profile.DialogueSignals{FinalUnderstanding: extract.UnderstandingPartial},
			0.05},
		{"deep",
			profile.DialogueSignals{FinalUnderstanding: extract.UnderstandingDeep},
			0.15},
		{"transfer",
			profile.DialogueSignals{FinalUnderstanding: extract.UnderstandingTransfer},
			0.25},
		{"discovery bonus",
			profile.DialogueSignals{FinalUnderstanding: extract.UnderstandingPartial, DiscoveryAchieved: true},
			0.15},
		{"persistent misconceptions penalized",
			profile.DialogueSignals{
				FinalUnderstanding: extract.UnderstandingPartial,
				Misconceptions:     []string{"a", "b", "c"},
			},
			-0.05},
		{"two misconceptions tolerated",
			profile.DialogueSignals{
				FinalUnderstanding: extract.UnderstandingPartial,
				Misconceptions:     []string{"a", "b"},
			},
			0.05},
		{"effectiveness bonus",
			profile.DialogueSignals{FinalUnderstanding: extract.UnderstandingDeep, Effectiveness: 0.8},
			0.20},
		{"clamped at maximum",
			profile.DialogueSignals{
				FinalUnderstanding: extract.UnderstandingTransfer,
				DiscoveryAchieved:  true,
				Effectiveness:      0.9,
			},
			MaxAdjustment},
		{"clamped at minimum",
			profile.DialogueSignals{
				FinalUnderstanding: extract.UnderstandingNone,
				Misconceptions:     []string{"a", "b", "c", "d"},
			},
			MinAdjustment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeAdjustment(tt.s), 1e-9)
		})
	}
}

func TestRecordLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0.0, LevelNovice},
		{0.29, LevelNovice},
		{0.30, LevelDeveloping},
		{0.59, LevelDeveloping},
		{0.60, LevelProficient},
		{0.84, LevelProficient},
		{0.85, LevelMastered},
		{1.0, LevelMastered},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Record{Score: tt.score}.Level(), "score %v", tt.score)
	}
}
