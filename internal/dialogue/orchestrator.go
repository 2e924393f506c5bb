package dialogue

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/socra/internal/adapt"
	"github.com/abhisek/socra/internal/extract"
	"github.com/abhisek/socra/internal/mastery"
	"github.com/abhisek/socra/internal/profile"
)

// MaxExchanges is the hard cap on exchanges per dialogue.
const MaxExchanges = 15

// transferStreak is the consecutive-success count that, together with a
// transfer-level response, completes the dialogue early.
const transferStreak = 2

// Generator is the text-generation collaborator. The orchestrator supplies
// a system prompt built from the adaptive configuration and a turn prompt;
// it expects free text back.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, turnPrompt string) (string, error)
}

// ProfileStore is the profile persistence collaborator. A nil profile from
// Load (or handed to the Update callback) means "no history yet". Update must
// hold the read and the write of one learner's profile together so that
// concurrent completions cannot lose each other's fold-ins.
type ProfileStore interface {
	Load(ctx context.Context, learnerID string) (*profile.LearnerProfile, error)
	Update(ctx context.Context, learnerID string, apply func(stored *profile.LearnerProfile) profile.LearnerProfile) error
}

// MasteryTracker receives the mastery adjustment at dialogue completion.
type MasteryTracker interface {
	RecordAdjustment(ctx context.Context, learnerID, skillID string, adjustment float64) error
}

// Options configures an Orchestrator. Generator and Tracker are optional:
// without a generator the template question text is used directly, and
// without a tracker adjustments are dropped.
type Options struct {
	Generator Generator
	Tracker   MasteryTracker

	// Rand drives template selection. Inject a seeded source for
	// deterministic tests; nil falls back to the global source.
	Rand *rand.Rand

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

// Orchestrator drives tutoring dialogues. A single dialogue is strictly
// sequential; distinct dialogues are independent and may run concurrently.
type Orchestrator struct {
	profiles ProfileStore
	gen      Generator
	tracker  MasteryTracker
	rng      *rand.Rand
	now      func() time.Time
}

// New creates an Orchestrator backed by the given profile store.
func New(profiles ProfileStore, opts Options) *Orchestrator {
	o := &Orchestrator{
		profiles: profiles,
		gen:      opts.Generator,
		tracker:  opts.Tracker,
		rng:      opts.Rand,
		now:      opts.Now,
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// StartInput describes a dialogue to open.
type StartInput struct {
	LearnerID           string
	SkillID             string
	Concept             string
	Persona             Persona
	KnownMisconceptions []string

	// PlannedPath optionally pre-plans question types for early exchanges.
	PlannedPath []extract.QuestionType
}

// Start opens a dialogue: loads (or defaults) the learner profile, builds
// the initial session state and adaptive config, and produces the opening
// question.
func (o *Orchestrator) Start(ctx context.Context, in StartInput) (*Dialogue, error) {
	prof, err := o.loadProfile(ctx, in.LearnerID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	now := o.now()
	d := &Dialogue{
		ID:                  uuid.NewString(),
		LearnerID:           in.LearnerID,
		SkillID:             in.SkillID,
		Concept:             in.Concept,
		Persona:             in.Persona,
		KnownMisconceptions: in.KnownMisconceptions,
		PlannedPath:         in.PlannedPath,
		Status:              StatusActive,
		Session:             newSessionState(now),
		Profile:             prof,
		StartedAt:           now,
		UpdatedAt:           now,
	}
	d.Config = adapt.Build(prof, d.Session.view())

	strat := strategyFor(d.Persona)
	qt := strat.OpeningType(prof)
	question := renderQuestion(qt, d.Concept, d.Config, o.rng)

	text, err := o.generateTurn(ctx, d, qt, question)
	if err != nil {
		return nil, err
	}
	d.CurrentQuestion = text
	d.CurrentQuestionType = qt

	return d, nil
}

// Turn is the outcome of processing one exchange.
type Turn struct {
	// Completed reports that the dialogue should now be completed.
	Completed bool

	// Intervention is the intervention raised this exchange, if any.
	Intervention adapt.Intervention

	// Question is the next tutor turn (empty when Completed).
	Question     string
	QuestionType extract.QuestionType

	// Extraction is this exchange's extraction result.
	Extraction extract.Result
}

// ProcessExchange handles one learner response: extraction, session-state
// update, config rebuild, intervention check, continue-or-complete decision
// and next-question selection. On a generation failure the dialogue is left
// unchanged so the caller can retry the turn.
func (o *Orchestrator) ProcessExchange(ctx context.Context, d *Dialogue, response string, latencyMs int) (*Turn, error) {
	if !d.Active() {
		return nil, ErrDialogueClosed
	}
	if strings.TrimSpace(response) == "" {
		return nil, ErrEmptyResponse
	}

	r := extract.Extract(response, latencyMs, extract.Context{
		Concept:             d.Concept,
		ExchangeIndex:       d.Session.ExchangeCount,
		PriorQuestion:       d.CurrentQuestion,
		KnownMisconceptions: d.KnownMisconceptions,
	})
	correct := isCorrect(r.Understanding)

	strat := strategyFor(d.Persona)
	role := classifyRole(response, strat.Vocabulary())

	now := o.now()
	session := d.Session.advance(r, correct, now)
	cfg := adapt.Build(d.Profile, session.view())
	intervention := adapt.CheckInterventions(d.Profile, session.view())

	turn := &Turn{
		Intervention: intervention,
		Extraction:   r,
		Completed:    shouldComplete(d, session, r, intervention),
	}

	var nextQuestion string
	var nextType extract.QuestionType
	if !turn.Completed {
		nextType = strat.NextQuestionType(d, role, r)
		template := renderQuestion(nextType, d.Concept, cfg, o.rng)

		// Generate against the post-exchange state so the prompt reflects
		// the fresh configuration.
		candidate := *d
		candidate.Session = session
		candidate.Config = cfg
		var err error
		nextQuestion, err = o.generateTurn(ctx, &candidate, nextType, template)
		if err != nil {
			return nil, err
		}
	}

	// Commit. Everything above is side-effect free on the dialogue.
	d.Exchanges = append(d.Exchanges, Exchange{
		Question:     d.CurrentQuestion,
		QuestionType: d.CurrentQuestionType,
		Response:     response,
		LatencyMs:    latencyMs,
		Role:         role,
		Correct:      correct,
		Timestamp:    now,
	})
	d.Extractions = append(d.Extractions, r)
	d.Correctness = append(d.Correctness, correct)
	d.Session = session
	d.Config = cfg
	d.LastIntervention = intervention
	d.UpdatedAt = now
	if r.IsDiscoveryMoment {
		d.DiscoveryMade = true
	}
	if d.Persona == PersonaInverse && role != RoleAsking {
		d.SimulatedUnderstanding = minFloat(1, d.SimulatedUnderstanding+simulatedGrowth(r))
	}

	if turn.Completed {
		d.CurrentQuestion = ""
		d.CurrentQuestionType = ""
	} else {
		d.CurrentQuestion = nextQuestion
		d.CurrentQuestionType = nextType
		turn.Question = nextQuestion
		turn.QuestionType = nextType
	}

	return turn, nil
}

// Complete finalizes a dialogue: aggregates its extractions, folds them into
// the durable profile, persists it, and reports the mastery adjustment.
// The profile save is deterministic given its inputs, so a failed save can
// be retried by calling Complete again.
func (o *Orchestrator) Complete(ctx context.Context, d *Dialogue) (*Summary, error) {
	if !d.Active() {
		return nil, ErrDialogueClosed
	}

	signals := profile.Aggregate(d.Extractions, d.Correctness)

	// Fold into the profile as stored now, not the snapshot taken at Start:
	// another dialogue for the same learner may have completed in between.
	var updated profile.LearnerProfile
	err := o.profiles.Update(ctx, d.LearnerID, func(stored *profile.LearnerProfile) profile.LearnerProfile {
		base := d.Profile
		if stored != nil {
			base = *stored
			base.Clamp()
		}
		updated = profile.Update(base, signals)
		return updated
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	adjustment := mastery.ComputeAdjustment(signals)
	if o.tracker != nil {
		if err := o.tracker.RecordAdjustment(ctx, d.LearnerID, d.SkillID, adjustment); err != nil {
			// The engine does not depend on the tracker's answer; report and
			// move on.
			fmt.Fprintf(os.Stderr, "warning: mastery adjustment not recorded: %v\n", err)
		}
	}

	now := o.now()
	d.Status = StatusCompleted
	d.CompletedAt = &now
	d.UpdatedAt = now
	d.Profile = updated

	return buildSummary(d, signals, adjustment), nil
}

// Abandon marks the dialogue abandoned. No further processing happens and
// the durable profile is not updated.
func (o *Orchestrator) Abandon(d *Dialogue) error {
	if !d.Active() {
		return ErrDialogueClosed
	}
	now := o.now()
	d.Status = StatusAbandoned
	d.UpdatedAt = now
	return nil
}

// GetSummary builds a summary of the dialogue in its current state without
// changing it. For completed dialogues this matches the summary returned by
// Complete, minus the mastery adjustment.
func (o *Orchestrator) GetSummary(d *Dialogue) *Summary {
	signals := profile.Aggregate(d.Extractions, d.Correctness)
	return buildSummary(d, signals, mastery.ComputeAdjustment(signals))
}

// loadProfile fetches the learner profile, substituting the neutral default
// when no history exists and repairing any invariant violations on read.
func (o *Orchestrator) loadProfile(ctx context.Context, learnerID string) (profile.LearnerProfile, error) {
	stored, err := o.profiles.Load(ctx, learnerID)
	if err != nil {
		return profile.LearnerProfile{}, err
	}
	if stored == nil {
		return profile.NewDefault(), nil
	}
	p := *stored
	p.Clamp()
	return p, nil
}

// generateTurn produces the learner-facing text for a turn. Without a
// generator the adapted template is used directly; a generator failure is
// surfaced as ErrGenerationUnavailable.
func (o *Orchestrator) generateTurn(ctx context.Context, d *Dialogue, qt extract.QuestionType, template string) (string, error) {
	if o.gen == nil {
		return template, nil
	}
	text, err := o.gen.Generate(ctx, buildSystemPrompt(d), buildTurnPrompt(d, qt, template))
	if err != nil {
		return "", &ErrGenerationUnavailable{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return template, nil
	}
	return text, nil
}

// isCorrect derives exchange correctness from the understanding level.
func isCorrect(u extract.UnderstandingLevel) bool {
	switch u {
	case extract.UnderstandingPartial, extract.UnderstandingDeep, extract.UnderstandingTransfer:
		return true
	default:
		return false
	}
}

// shouldComplete is the dialogue completion predicate: a discovery from an
// earlier exchange, a break/switch intervention, the hard exchange cap, or
// sustained transfer-level understanding.
func shouldComplete(d *Dialogue, s SessionState, r extract.Result, iv adapt.Intervention) bool {
	if d.DiscoveryMade {
		return true
	}
	if iv.Type == adapt.InterventionTakeBreak || iv.Type == adapt.InterventionSwitchTopic {
		return true
	}
	if s.ExchangeCount >= MaxExchanges {
		return true
	}
	return r.Understanding == extract.UnderstandingTransfer && s.ConsecutiveSuccesses >= transferStreak
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
