package dialogue

import (
	"time"

	"github.com/abhisek/socra/internal/adapt"
	"github.com/abhisek/socra/internal/extract"
)

// SessionState is the ephemeral per-dialogue state. Created zeroed at start,
// replaced (not mutated) after every exchange, discarded when the dialogue
// ends.
type SessionState struct {
	ExchangeCount        int
	ConsecutiveFailures  int
	ConsecutiveSuccesses int
	Engagement           extract.EngagementLevel
	Elapsed              time.Duration
	LastLatencyMs        int

	// Last is the most recent extraction result, nil before any exchange.
	Last *extract.Result

	StartedAt time.Time
}

// newSessionState returns the zeroed state for a fresh dialogue.
func newSessionState(now time.Time) SessionState {
	return SessionState{
		Engagement: extract.EngagementMedium,
		StartedAt:  now,
	}
}

// advance returns the successor state after one exchange. The receiver is
// unchanged.
func (s SessionState) advance(r extract.Result, correct bool, now time.Time) SessionState {
	next := s
	next.ExchangeCount++
	if correct {
		next.ConsecutiveSuccesses++
		next.ConsecutiveFailures = 0
	} else {
		next.ConsecutiveFailures++
		next.ConsecutiveSuccesses = 0
	}
	next.Engagement = r.Engagement.Level
	next.LastLatencyMs = r.LatencyMs
	next.Elapsed = now.Sub(s.StartedAt)
	next.Last = &r
	return next
}

// view projects the session state for the configuration engine.
func (s SessionState) view() adapt.SessionView {
	return adapt.SessionView{
		ExchangeCount:        s.ExchangeCount,
		ConsecutiveFailures:  s.ConsecutiveFailures,
		ConsecutiveSuccesses: s.ConsecutiveSuccesses,
		Engagement:           s.Engagement,
		Duration:             s.Elapsed,
		LastLatencyMs:        s.LastLatencyMs,
		Last:                 s.Last,
	}
}
