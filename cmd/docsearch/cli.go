package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/assist"
	"github.com/fwojciec/docsearch/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *toml.Config

	// Build.
	Source    docsearch.SiteSource
	Extractor docsearch.Extractor
	Converter docsearch.Converter
	Writers   []docsearch.ArtifactWriter

	// Query.
	Records  docsearch.RecordLoader
	Chunks   docsearch.ChunkLoader
	Answerer docsearch.Answerer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" type:"path" env:"DOCSEARCH_CONFIG" help:"TOML file overriding the default tuning"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Build    BuildCmd    `cmd:"" help:"Index a built HTML documentation site"`
	Search   SearchCmd   `cmd:"" help:"Search a built index"`
	Ask      AskCmd      `cmd:"" help:"Answer a question from the documentation"`
	Serve    ServeCmd    `cmd:"" help:"Serve search and ask as MCP tools over stdio"`
	Defaults DefaultsCmd `cmd:"" help:"Print the default tuning file"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Site        string `arg:"" type:"existingdir" help:"Directory of the built HTML site"`
	BaseURL     string `name:"base-url" required:"" env:"DOCSEARCH_BASE_URL" help:"Public URL the site is served from"`
	Out         string `short:"o" default:"search" help:"Output directory for the artifacts"`
	Concurrency int    `short:"c" default:"8" help:"Files processed in parallel"`
	Markdown    bool   `short:"m" help:"Also export every page as Markdown"`
	SQLite      string `name:"sqlite" type:"path" help:"Also store the build in this SQLite database"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string `arg:"" help:"Search query"`
	Index     string `short:"i" default:"search/search-index.min.json" env:"DOCSEARCH_INDEX" help:"Search index file, URL or SQLite database"`
	Version   string `help:"Only show sections of this version"`
	Category  string `help:"Only show sections of this category"`
	Limit     int    `short:"n" help:"Maximum number of results"`
	Highlight bool   `help:"Mark query terms in titles and previews"`
	JSON      bool   `name:"json" help:"Print results as JSON"`
}

// ProviderFlags override the configured answer provider.
type ProviderFlags struct {
	Provider string `short:"p" help:"Answer provider (gemini, claude or endpoint)"`
	Model    string `help:"Model name passed to the provider"`
	Endpoint string `env:"DOCSEARCH_ENDPOINT" help:"URL of the endpoint provider"`
	APIKey   string `name:"api-key" env:"DOCSEARCH_API_KEY" help:"API key for the provider"`
}

// Apply returns cfg with every set flag taking precedence.
func (f ProviderFlags) Apply(cfg assist.ProviderConfig) assist.ProviderConfig {
	if f.Provider != "" {
		cfg.Provider = f.Provider
	}
	if f.Model != "" {
		cfg.Model = f.Model
	}
	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.APIKey != "" {
		cfg.APIKey = f.APIKey
	}
	return cfg
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question    string `arg:"" help:"Question to ask about the documentation"`
	Chunks      string `default:"search/llm-chunks.json" env:"DOCSEARCH_CHUNKS" help:"LLM chunks file, URL or SQLite database"`
	Stream      bool   `short:"s" help:"Print the answer as it is generated"`
	ShowContext bool   `name:"show-context" help:"Print the assembled context without calling a provider"`

	ProviderFlags `embed:""`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Index  string `short:"i" default:"search/search-index.min.json" env:"DOCSEARCH_INDEX" help:"Search index file, URL or SQLite database"`
	Chunks string `env:"DOCSEARCH_CHUNKS" help:"LLM chunks location; enables the ask tool"`

	ProviderFlags `embed:""`
}

// DefaultsCmd is the "defaults" subcommand.
type DefaultsCmd struct{}
