package search

import (
	"slices"

	"github.com/fwojciec/docsearch"
)

// Index maps a token to the ascending positions of the records containing it.
type Index map[string][]int

// BuildIndex tokenizes the search text of every record. A token lists a
// record position at most once.
func BuildIndex(records []*docsearch.SearchRecord) Index {
	idx := make(Index)
	for pos, record := range records {
		for _, token := range docsearch.Tokenize(record.SearchText) {
			postings := idx[token]
			if n := len(postings); n > 0 && postings[n-1] == pos {
				continue
			}
			idx[token] = append(postings, pos)
		}
	}
	return idx
}

// Terms returns the indexed tokens in lexical order.
func (idx Index) Terms() []string {
	terms := make([]string, 0, len(idx))
	for term := range idx {
		terms = append(terms, term)
	}
	slices.Sort(terms)
	return terms
}
