package main

import (
	"context"
	"io"

	assistant "github.com/chaurasiavikash/openSimAssistant"
	"github.com/chaurasiavikash/openSimAssistant/crawl"
)

// Default documentation entry points. The SimTK project page links to
// downloads and forums; the Confluence spaces hold the user guide and
// tutorials.
var defaultSeeds = []string{
	"https://simtk.org/projects/opensim",
	"https://simtk-confluence.stanford.edu/display/OpenSim/User%27s+Guide",
	"https://simtk-confluence.stanford.edu/display/OpenSim/Tutorials",
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Documents assistant.DocumentStore
	Crawler   *crawl.Crawler
	Index     assistant.VectorIndex
	Queries   assistant.QueryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" help:"Crawl OpenSim documentation into the local cache"`
	Index IndexCmd `cmd:"" help:"Chunk cached documents and build the vector index"`
	Ask   AskCmd   `cmd:"" help:"Ask a single question about OpenSim"`
	Chat  ChatCmd  `cmd:"" help:"Start an interactive chat session"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds       []string `arg:"" optional:"" help:"Seed URLs (defaults to the OpenSim documentation sites)"`
	MaxPages    int      `default:"50" help:"Maximum number of pages to fetch"`
	MaxDepth    int      `default:"3" help:"Maximum link depth from the seeds"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64  `default:"1" help:"Maximum requests per second per domain"`
	Sitemap     bool     `help:"Also seed from the sites' sitemaps"`
	Extractor   string   `default:"selectors" enum:"selectors,readability,trafilatura" help:"Content extraction strategy"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	ChunkSize    int  `default:"1000" help:"Target chunk size in characters"`
	ChunkOverlap int  `default:"200" help:"Overlap between consecutive chunks"`
	Force        bool `help:"Rebuild the index even if one already exists"`
	Crawl        bool `help:"Crawl the documentation sites when no document cache exists"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about OpenSim"`
	TopK     int    `short:"k" default:"4" help:"Number of chunks to retrieve"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	TopK int `short:"k" default:"4" help:"Number of chunks to retrieve per question"`
}
