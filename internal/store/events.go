package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Event types recorded in the append-only log.
const (
	EventDialogueStarted   = "dialogue_started"
	EventExchange          = "exchange"
	EventDialogueCompleted = "dialogue_completed"
	EventDialogueAbandoned = "dialogue_abandoned"
	EventLLMRequest        = "llm_request"
)

// DialogueEventData is the payload for dialogue lifecycle events.
type DialogueEventData struct {
	SkillID       string  `json:"skill_id,omitempty"`
	Concept       string  `json:"concept,omitempty"`
	Persona       string  `json:"persona,omitempty"`
	ExchangeCount int     `json:"exchange_count,omitempty"`
	Understanding string  `json:"understanding,omitempty"`
	Discovery     bool    `json:"discovery,omitempty"`
	Adjustment    float64 `json:"adjustment,omitempty"`
	Intervention  string  `json:"intervention,omitempty"`
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Purpose      string `json:"purpose"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	LatencyMs    int64  `json:"latency_ms"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
	RequestBody  string `json:"request_body,omitempty"`
	ResponseBody string `json:"response_body,omitempty"`
}

// EventRepo appends to and reads the event log. The log is append-only;
// events are never updated or reordered.
type EventRepo struct {
	db *sql.DB
}

// AppendDialogue records a dialogue lifecycle event.
func (r *EventRepo) AppendDialogue(ctx context.Context, eventType, learnerID, dialogueID string, data DialogueEventData) error {
	return r.append(ctx, eventType, learnerID, dialogueID, data)
}

// AppendLLMRequest records an LLM API call event.
func (r *EventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.append(ctx, EventLLMRequest, "", "", data)
}

func (r *EventRepo) append(ctx context.Context, eventType, learnerID, refID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (timestamp, type, learner_id, ref_id, data) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC(), eventType, learnerID, refID, data)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Event is one row of the event log.
type Event struct {
	ID        int64
	Timestamp time.Time
	Type      string
	LearnerID string
	RefID     string
	Data      json.RawMessage
}

// Recent returns the most recent events for a learner, newest first.
func (r *EventRepo) Recent(ctx context.Context, learnerID string, limit int) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, type, learner_id, ref_id, data FROM events
		 WHERE learner_id = ? ORDER BY id DESC LIMIT ?`, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var data []byte
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Type, &e.LearnerID, &e.RefID, &data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Data = json.RawMessage(data)
		events = append(events, e)
	}
	return events, rows.Err()
}
