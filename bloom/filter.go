// Package bloom provides page URL de-duplication for the indexer.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate keeps the expected number of pages wrongly
// treated as duplicates below one per ten million URLs.
const DefaultFalsePositiveRate = 1e-7

// Filter wraps a Bloom filter for URL de-duplication. A false positive
// reports a new URL as already seen; false negatives are not possible.
// Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records url and reports whether it was not seen before.
func (f *Filter) Add(url string) bool {
	return !f.f.TestAndAddString(url)
}
