// Package bloom provides URL deduplication for the crawl frontier using
// Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for URL deduplication. False positives
// cause a URL to be skipped; a URL is never visited twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs with
// the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL in the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
