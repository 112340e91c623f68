package main

import (
	"fmt"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seeds := c.Seeds
	if len(seeds) == 0 {
		seeds = defaultSeeds
	}

	docs, stats, err := deps.Crawler.Crawl(deps.Ctx, seeds, crawl.Options{
		MaxPages:   c.MaxPages,
		MaxDepth:   c.MaxDepth,
		UseSitemap: c.Sitemap,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents extracted. Nothing saved.")
		return nil
	}

	if err := deps.Documents.Save(deps.Ctx, docs); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d documents (visited %d, failed %d, skipped %d)\n",
		stats.Saved, stats.Visited, stats.Failed, stats.Skipped)
	return nil
}
