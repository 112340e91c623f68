package crawl

import (
	"container/heap"
	"strings"
	"sync"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/bloom"
)

// Compile-time interface verification.
var _ assistant.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory crawl work queue with priority ordering and
// Bloom filter deduplication. It is safe for concurrent use by multiple
// goroutines; the check-then-insert in Push is atomic, so a URL can
// never be queued twice even under concurrent discovery.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *linkHeap
}

// NewFrontier creates a Frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier. Returns false if the URL has
// already been seen. Fragments are stripped before deduplication, so
// URLs differing only by fragment are considered duplicates.
func (f *Frontier) Push(link assistant.CrawlLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	link.URL = url
	heap.Push(f.queue, link)
	return true
}

// Pop returns the next link by priority.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (assistant.CrawlLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return assistant.CrawlLink{}, false
	}
	link, _ := heap.Pop(f.queue).(assistant.CrawlLink)
	return link, true
}

// Len returns the number of links queued.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been queued or processed.
// Fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// linkHeap implements heap.Interface for the CrawlLink priority queue.
// Higher priority links pop first; within a priority level, deeper
// links pop first so traversal descends a branch before widening.
type linkHeap []assistant.CrawlLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].Depth > h[j].Depth
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	link, _ := x.(assistant.CrawlLink)
	*h = append(*h, link)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
