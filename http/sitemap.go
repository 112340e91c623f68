package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// Ensure SitemapService implements assistant.SitemapService.
var _ assistant.SitemapService = (*SitemapService)(nil)

// SitemapService discovers crawlable URLs from a site's published
// sitemaps. Sitemap locations come from robots.txt Sitemap: directives,
// with /sitemap.xml as the fallback; <sitemapindex> documents are
// followed recursively.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the sitemap URLs for the site hosting baseURL in
// sitemap order, deduplicated. A site with no sitemap yields an empty
// slice, not nil. When baseURL carries a non-root path (e.g.
// https://example.org/docs/) only URLs under that path survive, and an
// optional filter prunes the rest.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *assistant.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, assistant.Errorf(assistant.EINVALID, "invalid base URL: %v", err)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// Sitemaps live at the domain root regardless of the base path.
	siteRoot := *base
	siteRoot.Path = ""

	sitemaps, err := s.locateSitemaps(ctx, &siteRoot)
	if err != nil {
		return nil, err
	}

	walk := newSitemapWalk()
	for _, sm := range sitemaps {
		if err := s.collect(ctx, sm, walk); err != nil {
			return nil, err
		}
	}

	result := []string{}
	for _, u := range walk.urls {
		if pathPrefix != "" && !underPath(u, pathPrefix) {
			continue
		}
		if filter != nil && !filter.Match(u) {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

// sitemapWalk accumulates state across one recursive sitemap traversal:
// fetched sitemap documents (cycle breaking) and page URLs in
// first-seen order.
type sitemapWalk struct {
	fetched map[string]bool
	kept    map[string]bool
	urls    []string
}

func newSitemapWalk() *sitemapWalk {
	return &sitemapWalk{fetched: make(map[string]bool), kept: make(map[string]bool)}
}

func (w *sitemapWalk) add(u string) {
	if !w.kept[u] {
		w.kept[u] = true
		w.urls = append(w.urls, u)
	}
}

// collect fetches one sitemap document and feeds its page URLs into the
// walk. A <sitemapindex> recurses into each child sitemap.
func (s *SitemapService) collect(ctx context.Context, sitemapURL string, walk *sitemapWalk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if walk.fetched[sitemapURL] {
		return nil
	}
	walk.fetched[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locValues(root, "sitemap") {
			if err := s.collect(ctx, child, walk); err != nil {
				return err
			}
		}
		return nil
	}

	for _, u := range locValues(root, "url") {
		walk.add(u)
	}
	return nil
}

// locValues returns the non-empty <loc> text of every child element
// with the given tag.
func locValues(root *etree.Element, tag string) []string {
	var values []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// underPath reports whether the URL's path sits under prefix at a path
// boundary, so /docs matches /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}

// locateSitemaps finds the site's sitemap URLs: robots.txt directives
// first, then a HEAD probe of /sitemap.xml.
func (s *SitemapService) locateSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.headOK(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if ok {
		return []string{fallback}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// get fetches a URL, failing on any non-200 status.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// headOK reports whether a HEAD request to the URL returns 200.
func (s *SitemapService) headOK(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
