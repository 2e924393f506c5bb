package mastery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repo for service tests.
type fakeRepo struct {
	records map[string]Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]Record{}}
}

func (f *fakeRepo) Mastery(_ context.Context, learnerID, skillID string) (*Record, error) {
	rec, ok := f.records[learnerID+"/"+skillID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeRepo) SaveMastery(_ context.Context, rec Record) error {
	f.records[rec.LearnerID+"/"+rec.SkillID] = rec
	return nil
}

func (f *fakeRepo) AllMastery(_ context.Context, learnerID string) ([]Record, error) {
	var out []Record
	for _, rec := range f.records {
		if rec.LearnerID == learnerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func TestRecordAdjustment_NewSkillStartsAtInitial(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.RecordAdjustment(context.Background(), "ada", "fractions", 0.15))

	rec, err := svc.Get(context.Background(), "ada", "fractions")
	require.NoError(t, err)
	assert.InDelta(t, 0.45, rec.Score, 1e-9)
	assert.Equal(t, 1, rec.Dialogues)
	assert.Equal(t, LevelDeveloping, rec.Level())
}

func TestRecordAdjustment_Accumulates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RecordAdjustment(ctx, "ada", "fractions", 0.25))
	require.NoError(t, svc.RecordAdjustment(ctx, "ada", "fractions", 0.25))

	rec, err := svc.Get(ctx, "ada", "fractions")
	require.NoError(t, err)
	assert.InDelta(t, 0.80, rec.Score, 1e-9)
	assert.Equal(t, 2, rec.Dialogues)
}

func TestRecordAdjustment_ClampsToUnitRange(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RecordAdjustment(ctx, "ada", "fractions", -0.9))
	rec, err := svc.Get(ctx, "ada", "fractions")
	require.NoError(t, err)
	assert.Zero(t, rec.Score)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.RecordAdjustment(ctx, "ada", "fractions", 0.35))
	}
	rec, err = svc.Get(ctx, "ada", "fractions")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rec.Score, 1e-9)
}

func TestGet_UnknownPairReturnsInitialRecord(t *testing.T) {
	svc := NewService(newFakeRepo())
	rec, err := svc.Get(context.Background(), "ada", "unseen")
	require.NoError(t, err)
	assert.InDelta(t, initialScore, rec.Score, 1e-9)
	assert.Zero(t, rec.Dialogues)
	assert.Equal(t, LevelDeveloping, rec.Level())
}
