// Package tokens turns free text into comparable word tokens.
package tokens

import "strings"

// MinTokenLength is the shortest token kept by Normalize. Anything up to
// and including three characters is discarded.
const MinTokenLength = 4

var stopWords = map[string]bool{
	"and": true, "the": true, "to": true, "of": true, "in": true,
	"on": true, "with": true, "for": true, "a": true, "an": true,
	"our": true, "we": true, "is": true, "are": true,
}

var punctuation = strings.NewReplacer(
	".", "", ",", "", ";", "", ":", "", "!", "", "?", "",
	"(", "", ")", "", `"`, "", "'", "",
)

// Normalize lower-cases text, strips punctuation, splits on whitespace and
// drops short tokens and stop words. Token order follows the input.
func Normalize(text string) []string {
	cleaned := punctuation.Replace(strings.ToLower(text))
	words := strings.Fields(cleaned)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		if len([]rune(word)) < MinTokenLength || stopWords[word] {
			continue
		}
		filtered = append(filtered, word)
	}

	return filtered
}

// Set returns the distinct normalized tokens of all given texts.
func Set(texts ...string) map[string]bool {
	set := make(map[string]bool)
	for _, text := range texts {
		for _, token := range Normalize(text) {
			set[token] = true
		}
	}
	return set
}
