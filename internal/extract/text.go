package extract

import (
	"strings"
	"unicode"
)

// words splits text into whitespace-separated tokens.
func words(text string) []string {
	return strings.Fields(text)
}

// sentences splits text on terminal punctuation, keeping non-empty trimmed
// fragments. A response with no terminal punctuation is one sentence.
func sentences(text string) []string {
	var out []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(b.String())
			if s != "" {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// matchMarkers returns the markers found in lowered (already lowercased).
// Each marker counts at most once.
func matchMarkers(lowered string, markers []string) []string {
	var found []string
	for _, m := range markers {
		if strings.Contains(lowered, m) {
			found = append(found, m)
		}
	}
	return found
}

// countOccurrences counts every occurrence of every marker in lowered.
func countOccurrences(lowered string, markers []string) int {
	n := 0
	for _, m := range markers {
		n += strings.Count(lowered, m)
	}
	return n
}

// sentencesContaining returns, for each marker present, the first sentence
// that contains it. One sentence per matched marker.
func sentencesContaining(text string, markers []string) []string {
	lowered := strings.ToLower(text)
	var out []string
	sents := sentences(text)
	for _, m := range markers {
		if !strings.Contains(lowered, m) {
			continue
		}
		for _, s := range sents {
			if strings.Contains(strings.ToLower(s), m) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// contentWords returns the lowercased words longer than 3 characters with
// punctuation stripped. Used for overlap and keyword matching.
func contentWords(text string) []string {
	var out []string
	for _, w := range words(strings.ToLower(text)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if len(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// hasNumeral reports whether text contains any digit.
func hasNumeral(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
