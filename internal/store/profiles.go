package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/socra/internal/profile"
)

// ProfileRepo persists learner profiles as JSON documents keyed by learner.
//
// Writes for the same learner are serialized by a per-learner mutex.
// Concurrently completing dialogues go through Update, whose read half runs
// under the same lock, so no completion's fold-in is lost. Distinct learners
// never contend.
type ProfileRepo struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db, locks: make(map[string]*sync.Mutex)}
}

func (r *ProfileRepo) learnerLock(learnerID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[learnerID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[learnerID] = l
	}
	return l
}

// Load returns the stored profile for a learner, or nil when the learner
// has no history yet.
func (r *ProfileRepo) Load(ctx context.Context, learnerID string) (*profile.LearnerProfile, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM learner_profiles WHERE learner_id = ?`, learnerID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	var p profile.LearnerProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Save upserts the learner's profile.
func (r *ProfileRepo) Save(ctx context.Context, learnerID string, p profile.LearnerProfile) error {
	l := r.learnerLock(learnerID)
	l.Lock()
	defer l.Unlock()

	return r.saveLocked(ctx, learnerID, p)
}

// Update applies a read-modify-write against the stored profile, holding the
// learner's lock across both halves. The callback receives the stored profile
// or nil when the learner has no history yet, and returns the profile to
// persist.
func (r *ProfileRepo) Update(ctx context.Context, learnerID string, apply func(stored *profile.LearnerProfile) profile.LearnerProfile) error {
	l := r.learnerLock(learnerID)
	l.Lock()
	defer l.Unlock()

	stored, err := r.Load(ctx, learnerID)
	if err != nil {
		return err
	}
	return r.saveLocked(ctx, learnerID, apply(stored))
}

func (r *ProfileRepo) saveLocked(ctx context.Context, learnerID string, p profile.LearnerProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO learner_profiles (learner_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (learner_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		learnerID, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Delete removes the learner's profile. Used by the reset command.
func (r *ProfileRepo) Delete(ctx context.Context, learnerID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM learner_profiles WHERE learner_id = ?`, learnerID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
