package assist

import (
	"cmp"
	"slices"

	"github.com/fwojciec/docsearch"
)

// MinKeywordLength is the shortest token kept as a keyword.
const MinKeywordLength = 3

// stopwords are common English words that never become keywords.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
		"had", "her", "was", "one", "our", "out", "has", "have", "with", "this",
		"that", "from", "they", "will", "would", "there", "their", "what", "about", "which",
		"when", "make", "like", "time", "just", "him", "know", "take", "into", "year",
		"your", "some", "could", "them", "see", "other", "than", "then", "now", "look",
		"only", "come", "its", "over", "also", "back", "after", "use", "two", "how",
		"work", "first", "well", "way", "even", "new", "want", "because", "these", "give",
		"most", "does", "should", "where", "who", "why",
	} {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether word is in the stopword set.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Keywords returns up to limit of the most frequent non-stopword tokens of
// text with at least MinKeywordLength characters. Equal frequencies keep
// first-occurrence order.
func Keywords(text string, limit int) []string {
	type entry struct {
		word  string
		count int
		first int
	}

	entries := make(map[string]*entry)
	for i, token := range docsearch.Tokenize(text) {
		if len(token) < MinKeywordLength || IsStopword(token) {
			continue
		}
		if e, ok := entries[token]; ok {
			e.count++
			continue
		}
		entries[token] = &entry{word: token, count: 1, first: i}
	}

	ranked := make([]*entry, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, e)
	}
	slices.SortFunc(ranked, func(a, b *entry) int {
		return cmp.Or(cmp.Compare(b.count, a.count), cmp.Compare(a.first, b.first))
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	words := make([]string, len(ranked))
	for i, e := range ranked {
		words[i] = e.word
	}
	return words
}
