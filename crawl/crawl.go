// Package crawl provides bounded traversal of documentation sites. It
// coordinates fetching, content extraction, link discovery, and
// politeness limits, and emits the documents the traversal collects.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	assistant "github.com/chaurasiavikash/openSimAssistant"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for Bloom filter deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Default traversal bounds, matching the original documentation scraper.
const (
	DefaultMaxPages = 50
	DefaultMaxDepth = 3
)

// nonDocumentExtensions lists path suffixes that never lead to
// indexable pages (binary and archive formats).
var nonDocumentExtensions = []string{".pdf", ".zip", ".exe", ".dmg"}

// excessiveNewlines matches runs of three or more newlines, which are
// collapsed to exactly two in extracted text.
var excessiveNewlines = regexp.MustCompile(`\n{3,}`)

// Crawler orchestrates a depth- and count-bounded traversal of
// documentation sites.
type Crawler struct {
	Fetcher     assistant.Fetcher
	Extractor   assistant.Extractor
	Converter   assistant.Converter
	Links       assistant.LinkExtractor
	RateLimiter assistant.DomainLimiter
	Sitemaps    assistant.SitemapService
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
}

// Options bound a single crawl run.
type Options struct {
	// MaxPages is the global ceiling on distinct visited URLs across
	// all seeds, checked before every fetch.
	MaxPages int

	// MaxDepth bounds recursion depth per branch from its seed.
	MaxDepth int

	// UseSitemap additionally seeds the frontier with URLs discovered
	// from each site's sitemap.
	UseSitemap bool
}

// Stats summarizes a crawl run.
type Stats struct {
	Visited int // URLs fetched (or attempted)
	Saved   int // documents produced
	Failed  int // fetch failures
	Skipped int // pages with no usable or duplicate content
}

// traversal is the shared state of one crawl run: the frontier, the
// page budget, the collected documents, and content-hash deduplication.
// All mutation goes through its mutex.
type traversal struct {
	mu          sync.Mutex
	frontier    *Frontier
	origins     map[string]bool
	contentSeen map[uint64]bool
	docs        []*assistant.Document
	visited     int
	maxPages    int
	maxDepth    int
	stats       Stats
}

// Crawl traverses the documentation sites rooted at seeds and returns
// the collected documents. Per-URL failures are logged and contained;
// only context cancellation ends the run early.
func (c *Crawler) Crawl(ctx context.Context, seeds []string, opts Options) ([]*assistant.Document, *Stats, error) {
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	t := &traversal{
		frontier:    NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate),
		origins:     make(map[string]bool),
		contentSeen: make(map[uint64]bool),
		maxPages:    opts.MaxPages,
		maxDepth:    opts.MaxDepth,
	}

	for _, seed := range seeds {
		u, err := url.Parse(seed)
		if err != nil {
			return nil, nil, assistant.Errorf(assistant.EINVALID, "invalid seed URL %q: %v", seed, err)
		}
		t.origins[u.Scheme+"://"+u.Host] = true
		t.frontier.Push(assistant.CrawlLink{URL: seed, Priority: assistant.PrioritySeed})
	}

	if opts.UseSitemap && c.Sitemaps != nil {
		c.seedFromSitemaps(ctx, t, seeds)
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	// Process the frontier in waves: reserve a batch of page budget
	// under the traversal lock, fetch the batch concurrently, then pick
	// up whatever the batch discovered.
	for ctx.Err() == nil {
		batch := t.nextBatch(concurrency)
		if len(batch) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, link := range batch {
			g.Go(func() error {
				c.visit(gctx, t, link)
				return nil
			})
		}
		_ = g.Wait()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Visited = t.visited
	stats := t.stats
	return t.docs, &stats, ctx.Err()
}

// seedFromSitemaps pushes sitemap-discovered URLs at depth 0. Sitemap
// failures are logged and ignored; the seeds themselves still crawl.
func (c *Crawler) seedFromSitemaps(ctx context.Context, t *traversal, seeds []string) {
	for _, seed := range seeds {
		urls, err := c.Sitemaps.DiscoverURLs(ctx, seed, nil)
		if err != nil {
			c.logger().Warn("sitemap discovery failed", "url", seed, "err", err)
			continue
		}
		for _, u := range urls {
			if hasNonDocumentExtension(u) || !t.fromSeedOrigin(u) {
				continue
			}
			t.frontier.Push(assistant.CrawlLink{URL: u, Priority: assistant.PrioritySitemap})
		}
	}
}

// visit fetches one URL, discovers its outbound links, and extracts a
// document from it. Every failure mode is contained to this URL.
func (c *Crawler) visit(ctx context.Context, t *traversal, link assistant.CrawlLink) {
	u, err := url.Parse(link.URL)
	if err != nil {
		t.fail()
		return
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, link.URL, c.Fetcher.Fetch, delays)
	if err != nil {
		c.logger().Warn("fetch failed", "url", link.URL, "depth", link.Depth, "err", err)
		t.fail()
		return
	}

	// Link discovery must not depend on extraction success: a page with
	// no usable content can still point at pages that have some.
	c.discover(t, html, link, u.Scheme+"://"+u.Host)

	extracted, err := c.Extractor.Extract(html)
	if err != nil || extracted.ContentHTML == "" {
		t.skip()
		return
	}

	text, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil || strings.TrimSpace(text) == "" {
		t.skip()
		return
	}
	text = excessiveNewlines.ReplaceAllString(text, "\n\n")

	// Wiki mirrors serve identical content under several URLs; keep the
	// first copy only.
	if !t.claimContent(xxhash.Sum64String(text)) {
		t.skip()
		return
	}

	title := extracted.Title
	if title == "" {
		title = "Unknown Title"
	}

	doc := &assistant.Document{
		Content: text,
		Metadata: assistant.Metadata{
			Title:   title,
			Source:  link.URL,
			Section: assistant.DeriveSection(link.URL),
			Type:    assistant.ClassifyContent(link.URL, title),
		},
	}
	t.save(doc)
	c.logger().Info("added document",
		"title", title,
		"type", doc.Metadata.Type,
		"section", doc.Metadata.Section,
		"url", link.URL,
	)
}

// discover queues the page's outbound links at depth+1. Links must
// share the referring page's origin, so a crawl rooted at several sites
// never hops between them.
func (c *Crawler) discover(t *traversal, html string, from assistant.CrawlLink, origin string) {
	if c.Links == nil || from.Depth >= t.maxDepth {
		return
	}

	urls, err := c.Links.ExtractLinks(html, from.URL)
	if err != nil {
		return
	}
	for _, raw := range urls {
		if hasNonDocumentExtension(raw) || !sameOrigin(raw, origin) {
			continue
		}
		t.frontier.Push(assistant.CrawlLink{
			URL:      raw,
			Depth:    from.Depth + 1,
			Priority: assistant.PriorityContent,
		})
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// nextBatch reserves up to limit links of page budget. The reservation
// happens before the fetch, so the visited count can never exceed
// MaxPages even with concurrent workers.
func (t *traversal) nextBatch(limit int) []assistant.CrawlLink {
	t.mu.Lock()
	defer t.mu.Unlock()

	var batch []assistant.CrawlLink
	for len(batch) < limit && t.visited < t.maxPages {
		link, ok := t.frontier.Pop()
		if !ok {
			break
		}
		if link.Depth > t.maxDepth {
			continue
		}
		t.visited++
		batch = append(batch, link)
	}
	return batch
}

// fromSeedOrigin reports whether the URL shares scheme and host with
// one of the seeds. Only sitemap-discovered URLs go through this check;
// discovered links follow their referring page's origin instead.
func (t *traversal) fromSeedOrigin(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.origins[u.Scheme+"://"+u.Host]
}

// sameOrigin reports whether the URL's scheme and host match origin.
func sameOrigin(rawURL, origin string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme+"://"+u.Host == origin
}

// claimContent records a content hash, returning false if an identical
// document was already collected.
func (t *traversal) claimContent(hash uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.contentSeen[hash] {
		return false
	}
	t.contentSeen[hash] = true
	return true
}

func (t *traversal) save(doc *assistant.Document) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.docs = append(t.docs, doc)
	t.stats.Saved++
}

func (t *traversal) fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Failed++
}

func (t *traversal) skip() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Skipped++
}

// hasNonDocumentExtension reports whether the URL path ends in a
// binary or archive format extension.
func hasNonDocumentExtension(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, ext := range nonDocumentExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
