package mastery

import (
	"context"
	"fmt"
	"time"
)

// Level is the coarse mastery band derived from the score.
type Level string

const (
	LevelNovice     Level = "novice"
	LevelDeveloping Level = "developing"
	LevelProficient Level = "proficient"
	LevelMastered   Level = "mastered"
)

const (
	developingThreshold = 0.30
	proficientThreshold = 0.60
	masteredThreshold   = 0.85
)

// initialScore is where an unseen learner/skill pair starts.
const initialScore = 0.30

// Record is the durable mastery entry for one learner and skill.
type Record struct {
	LearnerID string
	SkillID   string
	Score     float64
	Dialogues int
	UpdatedAt time.Time
}

// Level returns the band for the record's current score.
func (r Record) Level() Level {
	switch {
	case r.Score >= masteredThreshold:
		return LevelMastered
	case r.Score >= proficientThreshold:
		return LevelProficient
	case r.Score >= developingThreshold:
		return LevelDeveloping
	default:
		return LevelNovice
	}
}

// Repo is the persistence surface the service needs. Mastery returns nil
// when the pair has no record yet.
type Repo interface {
	Mastery(ctx context.Context, learnerID, skillID string) (*Record, error)
	SaveMastery(ctx context.Context, rec Record) error
	AllMastery(ctx context.Context, learnerID string) ([]Record, error)
}

// Service maintains per-skill mastery scores, fed by dialogue adjustments.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService creates a mastery service over the given repository.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordAdjustment applies a dialogue's mastery delta to the learner/skill
// score, clamped to [0,1], and persists the result.
func (s *Service) RecordAdjustment(ctx context.Context, learnerID, skillID string, adjustment float64) error {
	rec, err := s.repo.Mastery(ctx, learnerID, skillID)
	if err != nil {
		return fmt.Errorf("load mastery: %w", err)
	}
	if rec == nil {
		rec = &Record{LearnerID: learnerID, SkillID: skillID, Score: initialScore}
	}

	rec.Score += adjustment
	if rec.Score < 0 {
		rec.Score = 0
	}
	if rec.Score > 1 {
		rec.Score = 1
	}
	rec.Dialogues++
	rec.UpdatedAt = s.now()

	if err := s.repo.SaveMastery(ctx, *rec); err != nil {
		return fmt.Errorf("save mastery: %w", err)
	}
	return nil
}

// Get returns the record for a learner/skill pair, or a fresh initial
// record if none exists.
func (s *Service) Get(ctx context.Context, learnerID, skillID string) (Record, error) {
	rec, err := s.repo.Mastery(ctx, learnerID, skillID)
	if err != nil {
		return Record{}, fmt.Errorf("load mastery: %w", err)
	}
	if rec == nil {
		return Record{LearnerID: learnerID, SkillID: skillID, Score: initialScore}, nil
	}
	return *rec, nil
}

// All returns every mastery record for a learner.
func (s *Service) All(ctx context.Context, learnerID string) ([]Record, error) {
	recs, err := s.repo.AllMastery(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	return recs, nil
}
