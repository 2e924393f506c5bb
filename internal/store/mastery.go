package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhisek/socra/internal/mastery"
)

// MasteryRepo persists per-skill mastery scores.
type MasteryRepo struct {
	db *sql.DB
}

// Mastery returns the record for a learner/skill pair, or nil if the pair
// has never been seen.
func (r *MasteryRepo) Mastery(ctx context.Context, learnerID, skillID string) (*mastery.Record, error) {
	rec := mastery.Record{LearnerID: learnerID, SkillID: skillID}
	err := r.db.QueryRowContext(ctx,
		`SELECT score, dialogues, updated_at FROM skill_mastery
		 WHERE learner_id = ? AND skill_id = ?`, learnerID, skillID,
	).Scan(&rec.Score, &rec.Dialogues, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	return &rec, nil
}

// SaveMastery upserts a mastery record.
func (r *MasteryRepo) SaveMastery(ctx context.Context, rec mastery.Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO skill_mastery (learner_id, skill_id, score, dialogues, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (learner_id, skill_id) DO UPDATE SET
		   score = excluded.score,
		   dialogues = excluded.dialogues,
		   updated_at = excluded.updated_at`,
		rec.LearnerID, rec.SkillID, rec.Score, rec.Dialogues, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert mastery: %w", err)
	}
	return nil
}

// AllMastery returns every mastery record for a learner, most recently
// updated first.
func (r *MasteryRepo) AllMastery(ctx context.Context, learnerID string) ([]mastery.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT skill_id, score, dialogues, updated_at FROM skill_mastery
		 WHERE learner_id = ? ORDER BY updated_at DESC`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("query mastery list: %w", err)
	}
	defer rows.Close()

	var recs []mastery.Record
	for rows.Next() {
		rec := mastery.Record{LearnerID: learnerID}
		if err := rows.Scan(&rec.SkillID, &rec.Score, &rec.Dialogues, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
