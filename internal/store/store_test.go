package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socra/internal/mastery"
	"github.com/abhisek/socra/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "socra.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	got, err := repo.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Nil(t, got, "unseen learner should have no profile")

	p := profile.NewDefault()
	p.Understanding.ExplanationQuality = 0.72
	p.DialogueCount = 3
	require.NoError(t, repo.Save(ctx, "ada", p))

	got, err = repo.Load(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 0.72, got.Understanding.ExplanationQuality, 1e-9)
	assert.Equal(t, 3, got.DialogueCount)
	assert.Equal(t, p.Reasoning.Style, got.Reasoning.Style)
}

func TestProfileRepo_SaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	p := profile.NewDefault()
	require.NoError(t, repo.Save(ctx, "ada", p))

	p.DialogueCount = 7
	require.NoError(t, repo.Save(ctx, "ada", p))

	got, err := repo.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, 7, got.DialogueCount)
}

func TestProfileRepo_UpdateFoldsIntoStoredValue(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	// First writer sees no history.
	err := repo.Update(ctx, "ada", func(stored *profile.LearnerProfile) profile.LearnerProfile {
		require.Nil(t, stored)
		p := profile.NewDefault()
		p.DialogueCount = 1
		return p
	})
	require.NoError(t, err)

	// Second writer sees the first writer's result, not its own stale read.
	err = repo.Update(ctx, "ada", func(stored *profile.LearnerProfile) profile.LearnerProfile {
		require.NotNil(t, stored)
		p := *stored
		p.DialogueCount++
		return p
	})
	require.NoError(t, err)

	got, err := repo.Load(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.DialogueCount)
}

func TestProfileRepo_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "ada", profile.NewDefault()))
	require.NoError(t, repo.Delete(ctx, "ada"))

	got, err := repo.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent profile is not an error.
	assert.NoError(t, repo.Delete(ctx, "ada"))
}

func TestMasteryRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Mastery()
	ctx := context.Background()

	got, err := repo.Mastery(ctx, "ada", "fractions")
	require.NoError(t, err)
	assert.Nil(t, got)

	rec := mastery.Record{
		LearnerID: "ada",
		SkillID:   "fractions",
		Score:     0.45,
		Dialogues: 2,
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveMastery(ctx, rec))

	got, err = repo.Mastery(ctx, "ada", "fractions")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 0.45, got.Score, 1e-9)
	assert.Equal(t, 2, got.Dialogues)
}

func TestMasteryRepo_AllOrdersByRecency(t *testing.T) {
	s := openTestStore(t)
	repo := s.Mastery()
	ctx := context.Background()

	older := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	require.NoError(t, repo.SaveMastery(ctx, mastery.Record{LearnerID: "ada", SkillID: "fractions", Score: 0.4, UpdatedAt: older}))
	require.NoError(t, repo.SaveMastery(ctx, mastery.Record{LearnerID: "ada", SkillID: "ratios", Score: 0.6, UpdatedAt: newer}))
	require.NoError(t, repo.SaveMastery(ctx, mastery.Record{LearnerID: "bob", SkillID: "fractions", Score: 0.9, UpdatedAt: newer}))

	recs, err := repo.AllMastery(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "ratios", recs[0].SkillID)
	assert.Equal(t, "fractions", recs[1].SkillID)
}

func TestEventRepo_DialogueEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	require.NoError(t, repo.AppendDialogue(ctx, EventDialogueStarted, "ada", "d1",
		DialogueEventData{Concept: "current", Persona: "socratic"}))
	require.NoError(t, repo.AppendDialogue(ctx, EventDialogueCompleted, "ada", "d1",
		DialogueEventData{Concept: "current", ExchangeCount: 4, Understanding: "deep", Discovery: true}))
	require.NoError(t, repo.AppendDialogue(ctx, EventDialogueStarted, "bob", "d2",
		DialogueEventData{Concept: "ratios"}))

	events, err := repo.Recent(ctx, "ada", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, EventDialogueCompleted, events[0].Type)
	assert.Equal(t, EventDialogueStarted, events[1].Type)
	assert.Equal(t, "d1", events[0].RefID)
}

func TestEventRepo_LLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "dialogue-turn",
		InputTokens: 900, OutputTokens: 120, LatencyMs: 800, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "dialogue-turn",
		InputTokens: 1100, OutputTokens: 180, LatencyMs: 1200, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-sonnet-4-5", Purpose: "dialogue-recap",
		InputTokens: 500, OutputTokens: 90, LatencyMs: 600, Success: false, ErrorMessage: "timeout",
	}))

	events, err := repo.LLMEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "dialogue-recap", events[0].Purpose)
	assert.False(t, events[0].Success)

	single, err := repo.LLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, single)
	assert.Equal(t, 1100, single.InputTokens)

	missing, err := repo.LLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepo_LLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.Events()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Model: "m1", Purpose: "dialogue-turn", InputTokens: 100, OutputTokens: 10, LatencyMs: 400,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Model: "m1", Purpose: "dialogue-turn", InputTokens: 300, OutputTokens: 30, LatencyMs: 600,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Model: "m2", Purpose: "dialogue-recap", InputTokens: 50, OutputTokens: 5, LatencyMs: 200,
	}))

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	// Sorted by key: dialogue-recap before dialogue-turn.
	assert.Equal(t, "dialogue-recap", byPurpose[0].Purpose)
	assert.Equal(t, "dialogue-turn", byPurpose[1].Purpose)
	assert.Equal(t, 2, byPurpose[1].Calls)
	assert.Equal(t, 400, byPurpose[1].InputTokens)
	assert.Equal(t, int64(500), byPurpose[1].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "m1", byModel[0].Model)
	assert.Equal(t, 40, byModel[0].OutputTokens)
}
