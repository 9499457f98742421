package search

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/fwojciec/docsearch"
)

// DefaultHighlightTag wraps matches when Highlight is given no tag.
const DefaultHighlightTag = "mark"

// Highlight wraps every case-insensitive occurrence of every query token in
// text with <tag>…</tag>. Tokens are matched independently, longest first,
// in a single pass so inserted markup is never matched again.
func Highlight(text, query, tag string) string {
	tokens := docsearch.Tokenize(query)
	if len(tokens) == 0 {
		return text
	}
	if tag == "" {
		tag = DefaultHighlightTag
	}

	tokens = slices.Compact(slices.SortedFunc(slices.Values(tokens), func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), strings.Compare(a, b))
	}))
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}

	re := regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
	return re.ReplaceAllString(text, "<"+tag+">${0}</"+tag+">")
}
