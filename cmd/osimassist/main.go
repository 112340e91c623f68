package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/crawl"
	"github.com/chaurasiavikash/openSimAssistant/fs"
	"github.com/chaurasiavikash/openSimAssistant/gemini"
	"github.com/chaurasiavikash/openSimAssistant/goquery"
	"github.com/chaurasiavikash/openSimAssistant/htmltomarkdown"
	assistanthttp "github.com/chaurasiavikash/openSimAssistant/http"
	"github.com/chaurasiavikash/openSimAssistant/query"
	"github.com/chaurasiavikash/openSimAssistant/readability"
	assistantslog "github.com/chaurasiavikash/openSimAssistant/slog"
	"github.com/chaurasiavikash/openSimAssistant/sqlite"
	"github.com/chaurasiavikash/openSimAssistant/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Vector index database path. Set before calling Run().
	DBPath string

	// Document cache path. Set before calling Run().
	CachePath string

	// SQLite database backing the vector index.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Documents assistant.DocumentStore
	Index     assistant.VectorIndex
	Queries   assistant.QueryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:    defaultDBPath(),
		CachePath: defaultCachePath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("osimassist"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'osimassist --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	m.Documents = fs.NewDocumentStore(m.CachePath)
	deps.Documents = m.Documents

	if cmd == "crawl" {
		extractor, err := newExtractor(cli.Crawl.Extractor)
		if err != nil {
			return err
		}
		deps.Crawler = newCrawler(extractor, cli.Crawl.Concurrency, cli.Crawl.RPS, logger)
	}

	// "index --crawl" falls back to crawling the default sites when the
	// cache is missing; it always uses the selector extractor.
	if cmd == "index" && cli.Index.Crawl {
		deps.Crawler = newCrawler(goquery.NewExtractor(), 0, 1.0, logger)
	}

	if cmd == "index" || cmd == "ask" || cmd == "chat" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set OSIMASSIST_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		embedder := gemini.NewEmbedder(client)
		m.Index = assistantslog.NewLoggingVectorIndex(sqlite.NewIndexService(m.DB, embedder), logger)
		deps.Index = m.Index
	}

	if cmd == "ask" || cmd == "chat" {
		m.Queries = query.NewEngine(deps.Index)
		deps.Queries = m.Queries
	}

	return kongCtx.Run(deps)
}

// newCrawler wires the fetch, extraction, conversion, and discovery
// pipeline behind a per-domain politeness limiter.
func newCrawler(extractor assistant.Extractor, concurrency int, rps float64, logger *slog.Logger) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher:     assistantslog.NewLoggingFetcher(assistanthttp.NewFetcher(), logger),
		Extractor:   extractor,
		Converter:   htmltomarkdown.NewConverter(),
		Links:       goquery.NewLinkExtractor(),
		RateLimiter: crawl.NewDomainLimiter(rps),
		Sitemaps:    assistanthttp.NewSitemapService(nil),
		Logger:      logger,
		Concurrency: concurrency,
	}
}

// newExtractor picks the content extraction strategy for the crawl.
func newExtractor(name string) (assistant.Extractor, error) {
	switch name {
	case "selectors":
		return goquery.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	default:
		return nil, assistant.Errorf(assistant.EINVALID, "unknown extractor %q", name)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("OSIMASSIST_DB"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "index.db")
}

func defaultCachePath() string {
	if path := os.Getenv("OSIMASSIST_CACHE"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "documents.json")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".osimassist")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
