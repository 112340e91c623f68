package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	link := assistant.CrawlLink{
		URL:      "https://simtk.org/projects/opensim",
		Priority: assistant.PrioritySeed,
	}

	assert.True(t, f.Push(link), "first push should succeed")
	assert.False(t, f.Push(link), "duplicate URL should be rejected")
}

func TestFrontier_strips_fragments_before_deduplication(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	ok := f.Push(assistant.CrawlLink{URL: "https://example.org/docs#install"})
	assert.True(t, ok)

	link, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.org/docs", link.URL)

	assert.False(t, f.Push(assistant.CrawlLink{URL: "https://example.org/docs#usage"}),
		"URLs differing only by fragment are duplicates")
	assert.True(t, f.Seen("https://example.org/docs#anything"))
}

func TestFrontier_Pop_returns_highest_priority_first(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push(assistant.CrawlLink{URL: "https://example.org/content", Priority: assistant.PriorityContent})
	f.Push(assistant.CrawlLink{URL: "https://example.org/seed", Priority: assistant.PrioritySeed})
	f.Push(assistant.CrawlLink{URL: "https://example.org/sitemap", Priority: assistant.PrioritySitemap})

	link, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.org/seed", link.URL)

	link, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.org/sitemap", link.URL)

	link, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.org/content", link.URL)

	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_deeper_links_pop_first_within_a_priority(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push(assistant.CrawlLink{URL: "https://example.org/shallow", Depth: 1, Priority: assistant.PriorityContent})
	f.Push(assistant.CrawlLink{URL: "https://example.org/deep", Depth: 3, Priority: assistant.PriorityContent})

	link, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.org/deep", link.URL)
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	assert.Equal(t, 0, f.Len())

	f.Push(assistant.CrawlLink{URL: "https://example.org/a"})
	f.Push(assistant.CrawlLink{URL: "https://example.org/b"})
	assert.Equal(t, 2, f.Len())

	f.Pop()
	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_is_safe_for_concurrent_use(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	var wg sync.WaitGroup
	accepted := make([]int, 8)
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				// All workers race on the same URL set.
				if f.Push(assistant.CrawlLink{URL: fmt.Sprintf("https://example.org/%d", i)}) {
					accepted[w]++
				}
			}
		}()
	}
	wg.Wait()

	total := 0
	for _, n := range accepted {
		total += n
	}
	assert.Equal(t, 100, total, "each URL accepted exactly once across workers")
	assert.Equal(t, 100, f.Len())
}
