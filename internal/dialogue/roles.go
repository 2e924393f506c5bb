package dialogue

import "strings"

// Role classifies who is driving a given learner turn: answering the tutor,
// asking something of the tutor, or teaching/explaining to the tutor.
type Role string

const (
	RoleAnswering Role = "answering"
	RoleAsking    Role = "asking"
	RoleTeaching  Role = "teaching"
)

// RoleVocabulary is the per-persona lexical cue set for the role classifier.
type RoleVocabulary struct {
	// Teaching cues signal the learner is explaining or instructing.
	Teaching []string
	// Asking cues signal a question, beyond bare punctuation.
	Asking []string
}

// classifyRole is a rule-based classifier over punctuation and lexical cues.
// A trailing question mark or an asking cue wins; a teaching cue or a long
// declarative turn reads as teaching; everything else is answering.
func classifyRole(text string, vocab RoleVocabulary) Role {
	trimmed := strings.TrimSpace(text)
	lowered := strings.ToLower(trimmed)

	if strings.HasSuffix(trimmed, "?") {
		return RoleAsking
	}
	for _, cue := range vocab.Asking {
		if strings.Contains(lowered, cue) {
			return RoleAsking
		}
	}
	for _, cue := range vocab.Teaching {
		if strings.Contains(lowered, cue) {
			return RoleTeaching
		}
	}
	if strings.Contains(trimmed, "?") {
		return RoleAsking
	}
	if len(strings.Fields(trimmed)) > 25 {
		return RoleTeaching
	}
	return RoleAnswering
}
