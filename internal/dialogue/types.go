package dialogue

import (
	"time"

	"github.com/abhisek/socra/internal/adapt"
	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/profile"
)

// Status is the dialogue lifecycle state. The only transitions are
// active -> completed and active -> abandoned; both are absorbing.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Persona selects the behavioral mode of a dialogue.
type Persona string

const (
	// PersonaSocratic is the tutor-leads mode: the tutor questions, the
	// learner answers.
	PersonaSocratic Persona = "socratic"

	// PersonaInverse is the learner-teaches mode: the learner explains the
	// concept to a simulated AI student.
	PersonaInverse Persona = "inverse"

	// PersonaFreeform is the learner-explores mode: the learner drives,
	// the tutor follows.
	PersonaFreeform Persona = "freeform"
)

// Exchange records one completed question/response pair.
type Exchange struct {
	Question     string
	QuestionType extract.QuestionType
	Response     string
	LatencyMs    int
	Role         Role
	Correct      bool
	Timestamp    time.Time
}

// Dialogue is the aggregate root for one conversation. Its session state,
// adaptive config and extraction list are replaced wholesale on each step
// rather than mutated in place, keeping every step auditable.
type Dialogue struct {
	ID        string
	LearnerID string
	SkillID   string
	Concept   string
	Persona   Persona

	KnownMisconceptions []string

	Status        Status
	DiscoveryMade bool

	Exchanges   []Exchange
	Extractions []extract.Result
	Correctness []bool

	Session SessionState
	Config  adapt.Config

	// Profile is the snapshot loaded at start. The durable profile is never
	// mutated mid-dialogue; this copy only feeds config rebuilds.
	Profile profile.LearnerProfile

	// CurrentQuestion is the pending tutor turn awaiting a learner response.
	CurrentQuestion     string
	CurrentQuestionType extract.QuestionType

	// PlannedPath is an optional pre-planned sequence of question types,
	// consumed in order when no stronger signal picks the next type.
	PlannedPath []extract.QuestionType

	// LastIntervention is the intervention raised by the most recent
	// exchange, if any.
	LastIntervention adapt.Intervention

	// SimulatedUnderstanding is the inverse persona's AI-learner score.
	// Unused by the other personas.
	SimulatedUnderstanding float64

	StartedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// Active reports whether the dialogue can still process exchanges.
func (d *Dialogue) Active() bool {
	return d.Status == StatusActive
}
