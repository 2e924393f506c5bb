package extract

import "math"

// responsivenessFloor is added to the raw overlap ratio so that any on-topic
// reply registers above zero.
const responsivenessFloor = 0.3

// detectCommunication estimates responsiveness, vocabulary sophistication
// and grammatical complexity for one response.
func detectCommunication(text string, priorQuestion string) CommunicationSignal {
	return CommunicationSignal{
		Responsiveness:    responsiveness(text, priorQuestion),
		Vocabulary:        vocabularySophistication(text),
		GrammarComplexity: grammarComplexity(text),
	}
}

// responsiveness measures content-word overlap between the learner's text
// and the preceding tutor question. With no prior question it returns the
// 0.5 neutral default.
func responsiveness(text, priorQuestion string) float64 {
	if priorQuestion == "" {
		return 0.5
	}
	questionWords := contentWords(priorQuestion)
	if len(questionWords) == 0 {
		return 0.5
	}

	responseSet := make(map[string]bool)
	for _, w := range contentWords(text) {
		responseSet[w] = true
	}

	overlap := 0
	for _, w := range questionWords {
		if responseSet[w] {
			overlap++
		}
	}

	ratio := float64(overlap) / float64(len(questionWords))
	return math.Min(1, ratio+responsivenessFloor)
}

// vocabularySophistication scales average word length into [0,1].
// An average of 8+ characters reads as maximally sophisticated.
func vocabularySophistication(text string) float64 {
	ws := words(text)
	if len(ws) == 0 {
		return 0
	}
	total := 0
	for _, w := range ws {
		total += len([]rune(w))
	}
	avg := float64(total) / float64(len(ws))
	return math.Min(1, avg/8)
}

// grammarComplexity scales average sentence length into [0,1].
// An average of 20+ words per sentence reads as maximally complex.
func grammarComplexity(text string) float64 {
	sents := sentences(text)
	if len(sents) == 0 {
		return 0
	}
	total := 0
	for _, s := range sents {
		total += len(words(s))
	}
	avg := float64(total) / float64(len(sents))
	return math.Min(1, avg/20)
}
