package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// LLMEvent is one decoded llm_request row from the event log.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMEvents returns the most recent LLM request events, newest first.
func (r *EventRepo) LLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, data FROM events
		 WHERE type = ? ORDER BY id DESC LIMIT ?`, EventLLMRequest, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// LLMEvent returns a single LLM request event by ID, or nil if it
// doesn't exist or isn't an llm_request event.
func (r *EventRepo) LLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, data FROM events WHERE id = ? AND type = ?`,
		id, EventLLMRequest)
	e, err := scanLLMEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func scanLLMEvent(scan func(dest ...any) error) (*LLMEvent, error) {
	var e LLMEvent
	var data []byte
	if err := scan(&e.ID, &e.Timestamp, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan llm event: %w", err)
	}
	if err := json.Unmarshal(data, &e.LLMRequestEventData); err != nil {
		return nil, fmt.Errorf("decode llm event %d: %w", e.ID, err)
	}
	return &e, nil
}

// LLMUsage is aggregated token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByPurpose aggregates token usage grouped by request purpose.
func (r *EventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.aggregateLLMUsage(ctx, func(d LLMRequestEventData) string { return d.Purpose }, true)
}

// LLMUsageByModel aggregates token usage grouped by model ID.
func (r *EventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.aggregateLLMUsage(ctx, func(d LLMRequestEventData) string { return d.Model }, false)
}

// aggregateLLMUsage groups all llm_request events by the given key.
// Payloads live in a JSON column, so grouping happens here rather than
// in SQL.
func (r *EventRepo) aggregateLLMUsage(ctx context.Context, keyOf func(LLMRequestEventData) string, byPurpose bool) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM events WHERE type = ? ORDER BY id`, EventLLMRequest)
	if err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	buckets := make(map[string]*LLMUsage)
	latency := make(map[string]int64)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		var d LLMRequestEventData
		if err := json.Unmarshal(raw, &d); err != nil {
			continue
		}
		key := keyOf(d)
		if key == "" {
			key = "(unknown)"
		}
		u, ok := buckets[key]
		if !ok {
			u = &LLMUsage{}
			if byPurpose {
				u.Purpose = key
			} else {
				u.Model = key
			}
			buckets[key] = u
		}
		u.Calls++
		u.InputTokens += d.InputTokens
		u.OutputTokens += d.OutputTokens
		latency[key] += d.LatencyMs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	usage := make([]LLMUsage, 0, len(keys))
	for _, k := range keys {
		u := buckets[k]
		if u.Calls > 0 {
			u.AvgLatencyMs = latency[k] / int64(u.Calls)
		}
		usage = append(usage, *u)
	}
	return usage, nil
}
