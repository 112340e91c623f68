package main

import (
	"fmt"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/crawl"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	docs, err := c.loadDocuments(deps)
	if err != nil {
		return err
	}

	if !c.Force {
		exists, err := deps.Index.Load(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
			return err
		}
		if exists {
			fmt.Fprintln(deps.Stdout, "Vector index already exists. Use --force to rebuild.")
			return nil
		}
	}

	chunks, err := assistant.SplitDocuments(docs, c.ChunkSize, c.ChunkOverlap)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return err
	}

	if err := deps.Index.Build(deps.Ctx, chunks); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d chunks from %d documents\n", len(chunks), len(docs))
	return nil
}

// loadDocuments reads the document cache. When the cache is missing and
// --crawl was given, it crawls the default documentation sites and
// saves the result before returning it.
func (c *IndexCmd) loadDocuments(deps *Dependencies) ([]*assistant.Document, error) {
	docs, err := deps.Documents.Load(deps.Ctx)
	if err == nil {
		return docs, nil
	}
	if assistant.ErrorCode(err) != assistant.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return nil, err
	}
	if !c.Crawl || deps.Crawler == nil {
		fmt.Fprintln(deps.Stderr, "No document cache found. Run 'osimassist crawl' first, or pass --crawl.")
		return nil, err
	}

	fmt.Fprintln(deps.Stdout, "No document cache found. Crawling documentation sites...")
	docs, _, err = deps.Crawler.Crawl(deps.Ctx, defaultSeeds, crawl.Options{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return nil, err
	}
	if len(docs) == 0 {
		return nil, assistant.Errorf(assistant.EUNAVAILABLE, "crawl produced no documents")
	}
	if err := deps.Documents.Save(deps.Ctx, docs); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return nil, err
	}
	return docs, nil
}
