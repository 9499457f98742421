package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/anthropic"
	"github.com/fwojciec/docsearch/assist"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/gemini"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/fwojciec/docsearch/htmltomarkdown"
	dshttp "github.com/fwojciec/docsearch/http"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/sqlite"
	"github.com/fwojciec/docsearch/toml"
	"google.golang.org/genai"
)

// version is reported by the MCP server.
const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Providers creates answerers by name. Replace before calling Run to
	// stub out language models.
	Providers *assist.Registry

	// SQLite databases opened for loaders or writers.
	dbs []*sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Providers: DefaultProviders(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for _, db := range m.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.dbs = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Description("Build and query a client-side documentation search index."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := toml.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Run 'docsearch defaults' to print a valid tuning file\n")
		return err
	}
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "build":
		if err := m.wireBuild(deps, &cli.Build); err != nil {
			return err
		}
	case "search":
		loader, err := m.loader(cli.Search.Index)
		if err != nil {
			return err
		}
		deps.Records = dsslog.NewLoggingRecordLoader(loader, deps.Logger)
	case "ask":
		loader, err := m.loader(cli.Ask.Chunks)
		if err != nil {
			return err
		}
		deps.Chunks = dsslog.NewLoggingChunkLoader(loader, deps.Logger)
		if !cli.Ask.ShowContext {
			answerer, err := m.Providers.New(cli.Ask.ProviderFlags.Apply(cfg.Provider))
			if err != nil {
				fmt.Fprintf(stderr, "Hint: Choose one of %s with --provider\n", strings.Join(m.Providers.Names(), ", "))
				return err
			}
			deps.Answerer = dsslog.NewLoggingAnswerer(answerer, deps.Logger)
		}
	case "serve":
		records, err := m.loader(cli.Serve.Index)
		if err != nil {
			return err
		}
		deps.Records = dsslog.NewLoggingRecordLoader(records, deps.Logger)
		if cli.Serve.Chunks != "" {
			chunks, err := m.loader(cli.Serve.Chunks)
			if err != nil {
				return err
			}
			deps.Chunks = dsslog.NewLoggingChunkLoader(chunks, deps.Logger)
			answerer, err := m.Providers.New(cli.Serve.ProviderFlags.Apply(cfg.Provider))
			if err != nil {
				deps.Logger.Warn("ask tool disabled", "err", err)
			} else {
				deps.Answerer = dsslog.NewLoggingAnswerer(answerer, deps.Logger)
			}
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) wireBuild(deps *Dependencies, c *BuildCmd) error {
	deps.Source = fs.NewSite(c.Site, c.BaseURL)
	deps.Extractor = dsslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)
	if c.Markdown {
		deps.Converter = htmltomarkdown.NewConverter(c.BaseURL)
	}

	out := filepath.Clean(c.Out)
	deps.Writers = []docsearch.ArtifactWriter{fs.NewArtifactWriter(filepath.Dir(out), filepath.Base(out))}
	if c.SQLite != "" {
		db, err := m.openDB(c.SQLite)
		if err != nil {
			return err
		}
		deps.Writers = append(deps.Writers, sqlite.NewStore(db))
	}
	return nil
}

// artifactLoader loads both search records and LLM chunks.
type artifactLoader interface {
	docsearch.RecordLoader
	docsearch.ChunkLoader
}

// loader picks the artifact loader for location: HTTP URLs are fetched,
// SQLite databases are queried and anything else is read from disk.
func (m *Main) loader(location string) (artifactLoader, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return dshttp.NewLoader(dshttp.NewClient()), nil
	case strings.HasSuffix(location, ".db"), strings.HasSuffix(location, ".sqlite"):
		db, err := m.openDB(location)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(db), nil
	}
	return fs.NewLoader(), nil
}

func (m *Main) openDB(path string) (*sqlite.DB, error) {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.dbs = append(m.dbs, db)
	return db, nil
}

// DefaultProviders registers the built-in answer providers.
func DefaultProviders() *assist.Registry {
	r := assist.NewRegistry()

	r.Register(assist.ProviderGemini, func(cfg assist.ProviderConfig) (docsearch.Answerer, error) {
		apiKey := cmp.Or(cfg.APIKey, os.Getenv("GEMINI_API_KEY"))
		if apiKey == "" {
			return nil, docsearch.Errorf(docsearch.ECONFIG, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewAnswerer(client, cfg.Model), nil
	})

	r.Register(assist.ProviderClaude, func(cfg assist.ProviderConfig) (docsearch.Answerer, error) {
		apiKey := cmp.Or(cfg.APIKey, os.Getenv("ANTHROPIC_API_KEY"))
		if apiKey == "" {
			return nil, docsearch.Errorf(docsearch.ECONFIG, "ANTHROPIC_API_KEY not set")
		}
		client := anthropicsdk.NewClient(option.WithAPIKey(apiKey))
		return anthropic.NewAnswerer(client, cfg.Model, cfg.MaxTokens), nil
	})

	r.Register(assist.ProviderEndpoint, func(cfg assist.ProviderConfig) (docsearch.Answerer, error) {
		if cfg.Endpoint == "" {
			return nil, docsearch.Errorf(docsearch.ECONFIG, "endpoint provider needs --endpoint or DOCSEARCH_ENDPOINT")
		}
		return dshttp.NewAnswerClient(dshttp.NewClient(dshttp.WithRateLimit(endpointRPS)), cfg.Endpoint), nil
	})

	return r
}

// endpointRPS caps requests to a self-hosted answer endpoint.
const endpointRPS = 2
