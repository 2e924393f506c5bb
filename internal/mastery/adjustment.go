package mastery

import "github.com/abhisek/socra/internal/profile"

// Adjustment bounds. A single dialogue can only move mastery so far in
// either direction.
const (
	MinAdjustment = -0.20
	MaxAdjustment = 0.35
)

const (
	discoveryBonus          = 0.10
	persistentMisconception = -0.10
	effectivenessBonus      = 0.05

	// A dialogue counts as notably effective above this score.
	effectiveDialogue = 0.70

	// More than this many distinct misconceptions surviving to the end of
	// the dialogue reads as unresolved confusion.
	misconceptionTolerance = 2
)

// understandingBase maps the final demonstrated understanding level to the
// base mastery delta.
var understandingBase = map[string]float64{
	"none":     -0.10,
	"surface":  -0.05,
	"partial":  0.05,
	"deep":     0.15,
	"transfer": 0.25,
}

// ComputeAdjustment derives the mastery delta a completed dialogue earns:
// a base from the final understanding level, a bonus for self-discovery,
// a penalty when several misconceptions persisted, and a small bonus for an
// efficient dialogue. The result is clamped to [MinAdjustment, MaxAdjustment].
func ComputeAdjustment(s profile.DialogueSignals) float64 {
	adj := understandingBase[string(s.FinalUnderstanding)]

	if s.DiscoveryAchieved {
		adj += discoveryBonus
	}
	if len(s.Misconceptions) > misconceptionTolerance {
		adj += persistentMisconception
	}
	if s.Effectiveness > effectiveDialogue {
		adj += effectivenessBonus
	}

	if adj < MinAdjustment {
		return MinAdjustment
	}
	if adj > MaxAdjustment {
		return MaxAdjustment
	}
	return adj
}
