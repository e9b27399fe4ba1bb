package suggest

import (
	"github.com/sahilm/fuzzy"
)

// vocabulary is every word Match knows: category keys then synonym words
func vocabulary() []string {
	words := make([]string, 0, len(categories)+len(synonyms))
	for _, c := range categories {
		words = append(words, string(c.Mood))
	}
	for _, s := range Synonyms() {
		words = append(words, s.Word)
	}
	return words
}

// Hints returns up to n known mood words that fuzzily match mood, best
// first. Only moods that fall to the generic pool get hints.
func Hints(mood string, n int) []string {
	if n <= 0 {
		return nil
	}
	normalized := Normalize(mood)
	if normalized == "" {
		return nil
	}
	if _, kind, _ := Match(normalized); kind != MatchGeneric {
		return nil
	}

	matches := fuzzy.Find(normalized, vocabulary())
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == n {
			break
		}
	}
	return out
}
