package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	main "github.com/chaurasiavikash/openSimAssistant/cmd/osimassist"
	"github.com/chaurasiavikash/openSimAssistant/crawl"
	"github.com/chaurasiavikash/openSimAssistant/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCrawler builds a crawler whose fetcher serves a single page.
func newTestCrawler() *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><head><title>Scaling</title></head><body><p>Scale a model.</p></body></html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(rawHTML string) (*assistant.ExtractResult, error) {
				return &assistant.ExtractResult{Title: "Scaling", ContentHTML: "<p>Scale a model.</p>"}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "Scale a model.", nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]string, error) {
				return nil, nil
			},
		},
		RateLimiter: &mock.DomainLimiter{},
		Logger:      slog.New(slog.DiscardHandler),
		RetryDelays: []time.Duration{},
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves crawled documents and prints a summary", func(t *testing.T) {
		t.Parallel()

		var saved []*assistant.Document
		docs := &mock.DocumentStore{
			SaveFn: func(ctx context.Context, d []*assistant.Document) error {
				saved = d
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: docs,
			Crawler:   newTestCrawler(),
		}

		cmd := &main.CrawlCmd{
			Seeds:    []string{"https://example.org/tutorials/scaling"},
			MaxPages: 5,
			MaxDepth: 2,
		}
		require.NoError(t, cmd.Run(deps))

		require.Len(t, saved, 1)
		assert.Equal(t, "Scaling", saved[0].Metadata.Title)
		assert.Equal(t, "Scale a model.", saved[0].Content)
		assert.Contains(t, stdout.String(), "Saved 1 documents")
	})

	t.Run("reports when nothing was extracted", func(t *testing.T) {
		t.Parallel()

		crawler := newTestCrawler()
		crawler.Extractor = &mock.Extractor{
			ExtractFn: func(rawHTML string) (*assistant.ExtractResult, error) {
				return &assistant.ExtractResult{Title: "Empty"}, nil
			},
		}

		docs := &mock.DocumentStore{
			SaveFn: func(ctx context.Context, d []*assistant.Document) error {
				t.Fatal("nothing should be saved")
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: docs,
			Crawler:   crawler,
		}

		cmd := &main.CrawlCmd{
			Seeds:    []string{"https://example.org/empty"},
			MaxPages: 5,
			MaxDepth: 2,
		}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No documents extracted")
	})

	t.Run("rejects invalid seed URLs", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Crawler: newTestCrawler(),
		}

		cmd := &main.CrawlCmd{
			Seeds:    []string{"://not a url"},
			MaxPages: 5,
			MaxDepth: 2,
		}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, assistant.EINVALID, assistant.ErrorCode(err))
	})
}
