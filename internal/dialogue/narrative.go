package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/socra/internal/llm"
)

// ProviderGenerator adapts an llm.Provider to the Generator interface.
type ProviderGenerator struct {
	Provider    llm.Provider
	MaxTokens   int
	Temperature float64
}

// NewProviderGenerator wraps a provider with defaults suited to short
// conversational turns.
func NewProviderGenerator(p llm.Provider) *ProviderGenerator {
	return &ProviderGenerator{Provider: p, MaxTokens: 400, Temperature: 0.7}
}

func (g *ProviderGenerator) Generate(ctx context.Context, systemPrompt, turnPrompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, "dialogue-turn")
	resp, err := g.Provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: turnPrompt}},
		MaxTokens:   g.MaxTokens,
		Temperature: g.Temperature,
	})
	if err != nil {
		return "", err
	}

	// Schemaless responses arrive as a JSON-encoded string.
	var text string
	if err := json.Unmarshal(resp.Content, &text); err != nil {
		text = string(resp.Content)
	}
	return strings.TrimSpace(text), nil
}

// narrativeSchema constrains the generated dialogue recap.
var narrativeSchema = &llm.Schema{
	Name:        "dialogue-recap",
	Description: "A short recap of a tutoring dialogue for the learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recap": map[string]any{
				"type":        "string",
				"description": "Two or three sentences recapping what the learner worked through",
			},
			"highlight": map[string]any{
				"type":        "string",
				"description": "The single strongest moment of the dialogue",
			},
			"next_step": map[string]any{
				"type":        "string",
				"description": "One concrete suggestion for what to explore next",
			},
		},
		"required":             []string{"recap", "highlight", "next_step"},
		"additionalProperties": false,
	},
}

type narrativePayload struct {
	Recap     string `json:"recap"`
	Highlight string `json:"highlight"`
	NextStep  string `json:"next_step"`
}

// GenerateNarrative fills the summary's Narrative field with a generated
// recap. Failures leave the summary usable without one.
func GenerateNarrative(ctx context.Context, p llm.Provider, s *Summary) error {
	ctx = llm.WithPurpose(ctx, "dialogue-recap")

	var b strings.Builder
	fmt.Fprintf(&b, "Concept: %s\n", s.Concept)
	fmt.Fprintf(&b, "Mode: %s\n", s.Persona)
	fmt.Fprintf(&b, "Exchanges: %d over %s\n", s.Exchanges, s.Duration.Round(time.Second))
	fmt.Fprintf(&b, "Final understanding: %s\n", s.Understanding)
	if s.DiscoveryAchieved {
		b.WriteString("The learner reached an insight on their own.\n")
	}
	if len(s.Insights) > 0 {
		fmt.Fprintf(&b, "Insights: %s\n", strings.Join(s.Insights, "; "))
	}
	if len(s.Misconceptions) > 0 {
		fmt.Fprintf(&b, "Misconceptions that surfaced: %s\n", strings.Join(s.Misconceptions, "; "))
	}
	b.WriteString("\nWrite the recap addressed to the learner, warm but concrete.")

	resp, err := p.Generate(ctx, llm.Request{
		System:    "You summarize tutoring dialogues for learners. Be specific about what they figured out, never generic.",
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		Schema:    narrativeSchema,
		MaxTokens: 500,
	})
	if err != nil {
		return fmt.Errorf("generate recap: %w", err)
	}

	var payload narrativePayload
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return fmt.Errorf("decode recap: %w", err)
	}

	s.Narrative = fmt.Sprintf("%s\n\nHighlight: %s\nNext: %s",
		payload.Recap, payload.Highlight, payload.NextStep)
	return nil
}
