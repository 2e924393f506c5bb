package adapt

import (
	"time"

	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// InterventionType names a mid-dialogue intervention.
type InterventionType string

const (
	InterventionNone        InterventionType = "none"
	InterventionTakeBreak   InterventionType = "take_break"
	InterventionSimplify    InterventionType = "simplify"
	InterventionSwitchTopic InterventionType = "switch_topic"
	InterventionCelebrate   InterventionType = "celebrate"
	InterventionEncourage   InterventionType = "encourage"
)

// Priority grades an intervention's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Intervention is the outcome of the per-exchange intervention check.
type Intervention struct {
	Type     InterventionType
	Priority Priority
	Reason   string
}

// Intervention trigger thresholds.
const (
	failuresForTopicSwitch = 3
	successesForCelebrate  = 5
	longSessionDuration    = 45 * time.Minute
)

// CheckInterventions evaluates the intervention rules in priority order and
// returns the first match. Evaluated after every exchange.
func CheckInterventions(p profile.LearnerProfile, s SessionView) Intervention {
	switch {
	case float64(s.ExchangeCount) >= p.Engagement.FrustrationThreshold:
		return Intervention{InterventionTakeBreak, PriorityHigh, "frustration threshold reached"}

	case s.Last != nil && s.Last.Engagement.FrustrationCount > 0:
		return Intervention{InterventionSimplify, PriorityHigh, "frustration signal detected"}

	case s.ConsecutiveFailures >= failuresForTopicSwitch:
		return Intervention{InterventionSwitchTopic, PriorityMedium, "repeated failures"}

	case s.Last != nil && s.Last.IsDiscoveryMoment:
		return Intervention{InterventionCelebrate, PriorityMedium, "discovery moment"}

	case s.ConsecutiveSuccesses >= successesForCelebrate:
		return Intervention{InterventionCelebrate, PriorityLow, "success streak"}

	case s.Duration > longSessionDuration:
		return Intervention{InterventionTakeBreak, PriorityMedium, "long session"}

	case s.Engagement == extract.EngagementLow:
		return Intervention{InterventionEncourage, PriorityLow, "low engagement"}

	default:
		return Intervention{Type: InterventionNone}
	}
}
