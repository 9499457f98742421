// Package assist selects documentation chunks relevant to a question and
// assembles them into a bounded context for a language model.
package assist

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/docsearch"
)

// ContextSeparator separates chunks in an assembled context.
const ContextSeparator = "\n\n---\n\n"

// Profile is the keyword profile of one chunk.
type Profile struct {
	Chunk    *docsearch.LlmChunk
	Keywords []string

	keywordSet map[string]struct{}
	title      string
}

// NewProfile builds the keyword profile of chunk.
func NewProfile(chunk *docsearch.LlmChunk, keywordLimit int) *Profile {
	keywords := Keywords(chunk.Content, keywordLimit)
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	return &Profile{
		Chunk:      chunk,
		Keywords:   keywords,
		keywordSet: set,
		title:      strings.ToLower(chunk.Title),
	}
}

// Scored is a chunk with its relevance to a question.
type Scored struct {
	Chunk *docsearch.LlmChunk
	Score float64
}

// Assembly is the context built for one question.
type Assembly struct {
	Question string
	Context  string
	Chunks   []Scored
	Sources  []docsearch.Source
	Tokens   int
}

// Request converts the assembly into the payload for an Answerer.
func (a *Assembly) Request() *docsearch.AnswerRequest {
	return &docsearch.AnswerRequest{
		Question: a.Question,
		Context:  a.Context,
		Sources:  a.Sources,
	}
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithConfig sets the retrieval configuration.
func WithConfig(cfg Config) Option {
	return func(a *Assembler) {
		a.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// Assembler ranks chunks against questions by keyword overlap.
type Assembler struct {
	loader docsearch.ChunkLoader
	config Config
	logger *slog.Logger

	mu       sync.RWMutex
	profiles []*Profile
	loaded   bool
}

// NewAssembler creates an Assembler that fetches chunks through loader.
func NewAssembler(loader docsearch.ChunkLoader, opts ...Option) *Assembler {
	a := &Assembler{
		loader: loader,
		config: DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load fetches the chunks at location and rebuilds every keyword profile.
// A failed load leaves the previous profiles in place.
func (a *Assembler) Load(ctx context.Context, location string) error {
	chunks, err := a.loader.LoadChunks(ctx, location)
	if err != nil {
		if docsearch.ErrorCode(err) != docsearch.EUNAVAILABLE {
			return docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to load chunks: %v", err)
		}
		return err
	}
	a.LoadChunks(chunks)
	a.logger.Debug("chunks loaded", "location", location, "count", len(chunks))
	return nil
}

// LoadChunks replaces the chunk set with chunks.
func (a *Assembler) LoadChunks(chunks []*docsearch.LlmChunk) {
	profiles := make([]*Profile, len(chunks))
	for i, chunk := range chunks {
		profiles[i] = NewProfile(chunk, a.config.KeywordLimit)
	}

	a.mu.Lock()
	a.profiles = profiles
	a.loaded = true
	a.mu.Unlock()
}

// Loaded reports whether chunks have been loaded.
func (a *Assembler) Loaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loaded
}

// Len returns the number of loaded chunks.
func (a *Assembler) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.profiles)
}

// Score rates a profile against a question.
func (a *Assembler) Score(question string, profile *Profile) float64 {
	return score(a.config, strings.ToLower(strings.TrimSpace(question)), Keywords(question, a.config.KeywordLimit), profile)
}

func score(cfg Config, question string, keywords []string, profile *Profile) float64 {
	var total float64
	if question != "" && strings.Contains(profile.title, question) {
		total += cfg.TitleMatchBonus
	}

	var matches float64
	for _, qk := range keywords {
		if _, ok := profile.keywordSet[qk]; ok {
			matches++
			if strings.Contains(profile.title, qk) {
				total += cfg.TitleKeywordBonus
			}
		}
		for _, ck := range profile.Keywords {
			if ck != qk && (strings.HasPrefix(ck, qk) || strings.HasPrefix(qk, ck)) {
				matches += cfg.PrefixMatchWeight
			}
		}
	}

	if union := unionSize(keywords, profile.keywordSet); union > 0 {
		total += matches / float64(union) * 100
	}

	if profile.Chunk.TokenEstimate < cfg.SmallChunkTokens {
		total *= cfg.SmallChunkBoost
	}
	return total
}

func unionSize(keywords []string, set map[string]struct{}) int {
	n := len(set)
	for _, k := range keywords {
		if _, ok := set[k]; !ok {
			n++
		}
	}
	return n
}

// Retrieve returns the most relevant chunks for question, best first.
// Chunks scoring below the minimum relevance are dropped. Equal scores keep
// chunk order.
func (a *Assembler) Retrieve(question string) []Scored {
	a.mu.RLock()
	profiles := a.profiles
	a.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(question))
	keywords := Keywords(question, a.config.KeywordLimit)

	var ranked []Scored
	for _, p := range profiles {
		s := score(a.config, q, keywords, p)
		if s < a.config.MinRelevanceScore {
			continue
		}
		ranked = append(ranked, Scored{Chunk: p.Chunk, Score: s})
	}

	slices.SortStableFunc(ranked, func(x, y Scored) int {
		return cmp.Compare(y.Score, x.Score)
	})
	if len(ranked) > a.config.MaxContextChunks {
		ranked = ranked[:a.config.MaxContextChunks]
	}
	return ranked
}

// Assemble builds the context for question. Chunks are added in rank order
// until the next one would exceed the token budget.
func (a *Assembler) Assemble(question string) *Assembly {
	assembly := &Assembly{Question: question}

	var parts []string
	for _, s := range a.Retrieve(question) {
		if assembly.Tokens+s.Chunk.TokenEstimate > a.config.MaxContextTokens {
			break
		}
		assembly.Tokens += s.Chunk.TokenEstimate
		assembly.Chunks = append(assembly.Chunks, s)
		assembly.Sources = append(assembly.Sources, docsearch.Source{Title: s.Chunk.Title, URL: s.Chunk.URL})
		parts = append(parts, s.Chunk.Content)
	}
	assembly.Context = strings.Join(parts, ContextSeparator)

	a.logger.Debug("context assembled",
		"question", question,
		"chunks", len(assembly.Chunks),
		"tokens", assembly.Tokens,
	)
	return assembly
}
