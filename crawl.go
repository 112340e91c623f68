package assistant

import "context"

// Fetcher retrieves raw page markup from URLs.
type Fetcher interface {
	// Fetch returns the page body for the URL. The context controls
	// timeout and cancellation; implementations must not block past it.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// ExtractResult holds the content extracted from a page.
type ExtractResult struct {
	// Title resolved from the page, or "Unknown Title".
	Title string

	// ContentHTML is the chosen content container with boilerplate
	// (nav, header, footer, sidebar, menus, scripts) removed. Empty when
	// the page has no usable content.
	ContentHTML string
}

// Extractor extracts main content from page markup. Implementations are
// pure functions with no retained state.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter renders clean content HTML into plain text. The text keeps
// markdown-style heading markers so the chunker's separator hierarchy
// can split along document structure.
type Converter interface {
	Convert(html string) (string, error)
}

// LinkPriority orders frontier processing (higher pops first).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PrioritySeed    LinkPriority = 100
	PrioritySitemap LinkPriority = 60
	PriorityContent LinkPriority = 50
)

// CrawlLink is a frontier entry: a URL plus the traversal depth at which
// it was discovered, measured from its seed.
type CrawlLink struct {
	URL      string
	Depth    int
	Priority LinkPriority
}

// URLFrontier manages the crawl work queue with deduplication. The
// check-then-insert in Push is atomic so concurrent workers never queue
// the same URL twice.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link CrawlLink) bool

	// Pop returns the next link by priority.
	// Returns false if the frontier is empty.
	Pop() (CrawlLink, bool)

	// Len returns the number of links queued.
	Len() int

	// Seen returns true if the URL has been queued or processed.
	Seen(url string) bool
}

// LinkExtractor discovers hyperlink targets in page markup.
type LinkExtractor interface {
	// ExtractLinks returns the absolute same-origin URLs found in the
	// markup, resolved against baseURL. Fragment-only, script-pseudo,
	// and cross-origin targets are filtered out; fragments are stripped
	// from the survivors.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// DomainLimiter provides per-domain politeness delays.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
