package dialogue

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socra/internal/adapt"
	"github.com/abhisek/socra/internal/profile"
)

// memStore is an in-memory ProfileStore.
type memStore struct {
	profiles map[string]profile.LearnerProfile
	saveErr  error
	saves    int
}

func newMemStore() *memStore {
	return &memStore{profiles: map[string]profile.LearnerProfile{}}
}

func (m *memStore) Load(_ context.Context, learnerID string) (*profile.LearnerProfile, error) {
	p, ok := m.profiles[learnerID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) Update(_ context.Context, learnerID string, apply func(stored *profile.LearnerProfile) profile.LearnerProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	var stored *profile.LearnerProfile
	if p, ok := m.profiles[learnerID]; ok {
		stored = &p
	}
	m.profiles[learnerID] = apply(stored)
	m.saves++
	return nil
}

// stubGen is a scriptable Generator.
type stubGen struct {
	text string
	err  error
}

func (g *stubGen) Generate(_ context.Context, _, _ string) (string, error) {
	return g.text, g.err
}

// recordingTracker captures mastery adjustments.
type recordingTracker struct {
	learnerID  string
	skillID    string
	adjustment float64
	calls      int
}

func (r *recordingTracker) RecordAdjustment(_ context.Context, learnerID, skillID string, adjustment float64) error {
	r.learnerID = learnerID
	r.skillID = skillID
	r.adjustment = adjustment
	r.calls++
	return nil
}

func testOrchestrator(store ProfileStore, opts Options) *Orchestrator {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	if opts.Now == nil {
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		opts.Now = func() time.Time { return base }
	}
	return New(store, opts)
}

// partialResponse lands at partial understanding: enough words to engage,
// one causal and one connection marker, no insight or correctness extremes.
const partialResponse = "The value changes because the input changes, and that means the output follows the same input pattern each time we repeat the process."

// discoveryResponse contains insight markers and a rich explanation.
const discoveryResponse = "Oh! I get it now. First the voltage pushes the electrons, then the resistance limits the flow, " +
	"which means the current depends on both. For example, a thin wire acts like a narrow pipe, " +
	"so then less water flows through it, and that's why resistance matters."

func startDialogue(t *testing.T, o *Orchestrator, persona Persona) *Dialogue {
	t.Helper()
	d, err := o.Start(context.Background(), StartInput{
		LearnerID: "ada",
		SkillID:   "circuits",
		Concept:   "current",
		Persona:   persona,
	})
	require.NoError(t, err)
	return d
}

func TestStart_NewLearnerGetsDefaultProfile(t *testing.T) {
	o := testOrchestrator(newMemStore(), Options{})
	d := startDialogue(t, o, PersonaSocratic)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, StatusActive, d.Status)
	assert.NotEmpty(t, d.CurrentQuestion)
	assert.Equal(t, profile.NewDefault(), d.Profile)
	assert.Zero(t, d.Session.ExchangeCount)
}

func TestStart_StoredProfileIsClampedOnLoad(t *testing.T) {
	store := newMemStore()
	broken := profile.NewDefault()
	broken.Understanding.ExplanationQuality = 1.7
	store.profiles["ada"] = broken

	o := testOrchestrator(store, Options{})
	d := startDialogue(t, o, PersonaSocratic)

	assert.InDelta(t, 1.0, d.Profile.Understanding.ExplanationQuality, 1e-9)
}

func TestProcessExchange_EmptyResponseRejected(t *testing.T) {
	o := testOrchestrator(newMemStore(), Options{})
	d := startDialogue(t, o, PersonaSocratic)

	_, err := o.ProcessExchange(context.Background(), d, "   ", 5000)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Zero(t, d.Session.ExchangeCount)
}

func TestProcessExchange_RecordsExchange(t *testing.T) {
	o := testOrchestrator(newMemStore(), Options{})
	d := startDialogue(t, o, PersonaSocratic)
	opening := d.CurrentQuestion

	turn, err := o.ProcessExchange(context.Background(), d, partialResponse, 8000)
	require.NoError(t, err)

	assert.False(t, turn.Completed)
	assert.NotEmpty(t, turn.Question)
	assert.Equal(t, turn.Question, d.CurrentQuestion)

	require.Len(t, d.Exchanges, 1)
	assert.Equal(t, opening, d.Exchanges[0].Question)
	assert.Equal(t, partialResponse, d.Exchanges[0].Response)
	assert.True(t, d.Exchanges[0].Correct)
	assert.Equal(t, 1, d.Session.ExchangeCount)
	assert.Equal(t, 1, d.Session.ConsecutiveSuccesses)
}

func TestProcessExchange_DiscoveryCompletesOnNextExchange(t *testing.T) {
	o := testOrchestrator(newMemStore(), Options{})
	d := startDialogue(t, o, PersonaSocratic)
	ctx := context.Background()

	turn, err := o.ProcessExchange(ctx, d, discoveryResponse, 10000)
	require.NoError(t, err)
	assert.False(t, turn.Completed)
	assert.True(t, d.DiscoveryMade)
	assert.Equal(t, adapt.InterventionCelebrate, turn.Intervention.Type)

	turn, err = o.ProcessExchange(ctx, d, partialResponse, 8000)
	require.NoError(t, err)
	assert.True(t, turn.Completed)
	assert.Empty(t, d.CurrentQuestion)
}

func TestProcessExchange_TakeBreakCompletes(t *testing.T) {
	store := newMemStore()
	p := profile.NewDefault()
	p.Engagement.FrustrationThreshold = 2
	store.profiles["ada"] = p

	o := testOrchestrator(store, Options{})
	d := startDialogue(t, o, PersonaSocratic)
	ctx := context.Background()

	turn, err := o.ProcessExchange(ctx, d, partialResponse, 8000)
	require.NoError(t, err)
	assert.False(t, turn.Completed)

	turn, err = o.ProcessExchange(ctx, d, partialResponse, 8000)
	require.NoError(t, err)
	assert.True(t, turn.Completed)
	assert.Equal(t, adapt.InterventionTakeBreak, turn.Intervention.Type)
}

func TestProcessExchange_ExchangeCap(t *testing.T) {
	store := newMemStore()
	p := profile.NewDefault()
	p.Engagement.FrustrationThreshold = 100
	store.profiles["ada"] = p

	o := testOrchestrator(store, Options{})
	d := startDialogue(t, o, PersonaSocratic)
	ctx := context.Background()

	for i := 1; i < MaxExchanges; i++ {
		turn, err := o.ProcessExchange(ctx, d, partialResponse, 8000)
		require.NoError(t, err)
		require.False(t, turn.Completed, "exchange %d", i)
	}

	turn, err := o.ProcessExchange(ctx, d, partialResponse, 8000)
	require.NoError(t, err)
	assert.True(t, turn.Completed)
	assert.Equal(t, MaxExchanges, d.Session.ExchangeCount)
}

func TestProcessExchange_GenerationFailureLeavesDialogueUnchanged(t *testing.T) {
	store := newMemStore()
	gen := &stubGen{text: "What do you already know about current?"}
	o := testOrchestrator(store, Options{Generator: gen})
	d := startDialogue(t, o, PersonaSocratic)
	opening := d.CurrentQuestion

	gen.err = errors.New("provider down")
	_, err := o.ProcessExchange(context.Background(), d, partialResponse, 8000)

	var unavailable *ErrGenerationUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Zero(t, d.Session.ExchangeCount)
	assert.Empty(t, d.Exchanges)
	assert.Equal(t, opening, d.CurrentQuestion)

	// The same turn succeeds once the generator recovers.
	gen.err = nil
	turn, err := o.ProcessExchange(context.Background(), d, partialResponse, 8000)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Session.ExchangeCount)
	assert.Equal(t, gen.text, turn.Question)
}

func TestProcessExchange_EmptyGeneratedTextFallsBackToTemplate(t *testing.T) {
	gen := &stubGen{text: "   "}
	o := testOrchestrator(newMemStore(), Options{Generator: gen})
	d := startDialogue(t, o, PersonaSocratic)
	assert.NotEmpty(t, d.CurrentQuestion)
}

func TestComplete_UpdatesProfileAndMastery(t *testing.T) {
	store := newMemStore()
	tracker := &recordingTracker{}
	o := testOrchestrator(store, Options{Tracker: tracker})
	d := startDialogue(t, o, PersonaSocratic)
	ctx := context.Background()

	_, err := o.ProcessExchange(ctx, d, partialResponse, 8000)
	require.NoError(t, err)

	sum, err := o.Complete(ctx, d)
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, d.Status)
	assert.NotNil(t, d.CompletedAt)
	assert.Equal(t, 1, sum.Exchanges)
	assert.Equal(t, "current", sum.Concept)

	saved, ok := store.profiles["ada"]
	require.True(t, ok)
	assert.Equal(t, 1, saved.DialogueCount)

	assert.Equal(t, 1, tracker.calls)
	assert.Equal(t, "ada", tracker.learnerID)
	assert.Equal(t, "circuits", tracker.skillID)
	assert.InDelta(t, sum.MasteryAdjustment, tracker.adjustment, 1e-9)

	_, err = o.Complete(ctx, d)
	assert.ErrorIs(t, err, ErrDialogueClosed)
}

func TestComplete_InterleavedDialoguesBothFoldIn(t *testing.T) {
	store := newMemStore()
	o := testOrchestrator(store, Options{})
	ctx := context.Background()

	d1 := startDialogue(t, o, PersonaSocratic)
	d2, err := o.Start(ctx, StartInput{
		LearnerID: "ada",
		SkillID:   "resistance",
		Concept:   "resistance",
		Persona:   PersonaSocratic,
	})
	require.NoError(t, err)

	_, err = o.ProcessExchange(ctx, d1, partialResponse, 8000)
	require.NoError(t, err)
	_, err = o.ProcessExchange(ctx, d2, partialResponse, 8000)
	require.NoError(t, err)

	_, err = o.Complete(ctx, d1)
	require.NoError(t, err)
	_, err = o.Complete(ctx, d2)
	require.NoError(t, err)

	// The second completion folds into the first one's result, not the
	// snapshot taken when its dialogue started.
	saved, ok := store.profiles["ada"]
	require.True(t, ok)
	assert.Equal(t, 2, saved.DialogueCount)
	assert.Equal(t, 2, store.saves)
}

func TestComplete_SaveFailureKeepsDialogueActive(t *testing.T) {
	store := newMemStore()
	o := testOrchestrator(store, Options{})
	d := startDialogue(t, o, PersonaSocratic)
	ctx := context.Background()

	_, err := o.ProcessExchange(ctx, d, partialResponse, 8000)
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")
	_, err = o.Complete(ctx, d)
	require.Error(t, err)
	assert.Equal(t, StatusActive, d.Status)

	store.saveErr = nil
	_, err = o.Complete(ctx, d)
	assert.NoError(t, err)
}

func TestAbandon(t *testing.T) {
	store := newMemStore()
	o := testOrchestrator(store, Options{})
	d := startDialogue(t, o, PersonaSocratic)

	require.NoError(t, o.Abandon(d))
	assert.Equal(t, StatusAbandoned, d.Status)
	assert.Zero(t, store.saves)

	_, err := o.ProcessExchange(context.Background(), d, partialResponse, 8000)
	assert.ErrorIs(t, err, ErrDialogueClosed)
	assert.ErrorIs(t, o.Abandon(d), ErrDialogueClosed)
}

func TestInverse_SimulatedUnderstandingGrowsWhenTeaching(t *testing.T) {
	o := testOrchestrator(newMemStore(), Options{})
	d := startDialogue(t, o, PersonaInverse)
	ctx := context.Background()

	teaching := "Let me explain how it works: the current flows because the voltage pushes charge through the wire, " +
		"and that means more voltage gives more current when the resistance stays the same."
	_, err := o.ProcessExchange(ctx, d, teaching, 9000)
	require.NoError(t, err)
	assert.Greater(t, d.SimulatedUnderstanding, 0.0)

	before := d.SimulatedUnderstanding
	_, err = o.ProcessExchange(ctx, d, "Does that help, or should I go over it again?", 4000)
	require.NoError(t, err)
	assert.InDelta(t, before, d.SimulatedUnderstanding, 1e-9)
}

func TestIsCorrect(t *testing.T) {
	assert.False(t, isCorrect("none"))
	assert.False(t, isCorrect("surface"))
	assert.True(t, isCorrect("partial"))
	assert.True(t, isCorrect("deep"))
	assert.True(t, isCorrect("transfer"))
}
