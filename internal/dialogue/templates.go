package dialogue

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/socra/internal/adapt"
	"github.com/abhisek/socra/internal/extract"
)

// questionTemplates is the opening-question bank, keyed by question type.
// Each template takes the target concept as its single argument.
var questionTemplates = map[extract.QuestionType][]string{
	extract.QuestionClarifying: {
		"In your own words, what is %s?",
		"What do you already know about %s?",
		"When you hear \"%s\", what comes to mind first?",
	},
	extract.QuestionProbing: {
		"Why do you think %s works the way it does?",
		"What would happen to %s if we changed one of its conditions?",
		"Can you walk me through your reasoning about %s?",
	},
	extract.QuestionScaffolding: {
		"Let's build up to %s step by step. What's the simplest piece of it?",
		"Start with a part of %s you feel solid on. What is it?",
	},
	extract.QuestionChallenging: {
		"Here's a tricky case: can you think of a situation where %s wouldn't behave as you expect?",
		"Suppose someone disagreed with your take on %s. How would you defend it?",
	},
	extract.QuestionReflection: {
		"Thinking about %s, what changed in your understanding just now?",
		"What was the moment %s started to make sense to you?",
	},
	extract.QuestionMetacognitive: {
		"Which part of %s do you feel most and least certain about?",
		"How would you know if your understanding of %s was wrong?",
		"If you had to teach %s to someone else, where would you start?",
	},
}

// scaffoldReassurance is appended when scaffolding is at level 2 or below.
const scaffoldReassurance = " Take your time — there's no wrong way to start."

// supportiveOpener softens the question under a supportive calibration
// stance.
const supportiveOpener = "You're doing fine so far. "

// renderQuestion picks a template for the question type uniformly at random
// and adapts the text to the current configuration.
func renderQuestion(qt extract.QuestionType, concept string, cfg adapt.Config, rng *rand.Rand) string {
	templates := questionTemplates[qt]
	if len(templates) == 0 {
		templates = questionTemplates[extract.QuestionClarifying]
	}
	text := fmt.Sprintf(templates[rng.IntN(len(templates))], concept)

	if cfg.Calibrate.Stance == adapt.StanceSupportive {
		text = supportiveOpener + text
	}
	if cfg.Scaffold.Level <= 2 {
		text += scaffoldReassurance
	}
	return text
}
