// Package search implements the client-side query engine over a search
// index of documentation sections.
package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
)

// State is the lifecycle state of an Engine.
type State int

// Engine states.
const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// SearchOptions narrows and sizes a search.
type SearchOptions struct {
	// Version and Category, when set, keep only records with that exact value.
	Version  string
	Category string

	// MaxResults overrides the configured result limit when positive.
	MaxResults int
}

// Result is a copy of a matching record with its relevance score.
type Result struct {
	docsearch.SearchRecord
	Score float64 `json:"_score"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the scoring configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine answers queries against one loaded search index. After a
// successful Load the index is read-only and Search is safe for
// concurrent use.
type Engine struct {
	loader docsearch.RecordLoader
	config Config
	logger *slog.Logger

	loadMu sync.Mutex

	mu      sync.RWMutex
	state   State
	records []*docsearch.SearchRecord
	index   Index
	terms   []string
}

// NewEngine creates an unloaded Engine that fetches its index through loader.
func NewEngine(loader docsearch.RecordLoader, opts ...Option) *Engine {
	e := &Engine{
		loader: loader,
		config: DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
		state:  StateUnloaded,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Len returns the number of loaded records.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Load fetches the search index at location and builds the inverted index.
// It is a no-op once the engine is ready. On failure the engine is left in
// StateFailed with nothing applied, and Load may be called again.
func (e *Engine) Load(ctx context.Context, location string) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	if e.State() == StateReady {
		return nil
	}
	e.setState(StateLoading)

	records, err := e.loader.LoadRecords(ctx, location)
	if err != nil {
		e.setState(StateFailed)
		if docsearch.ErrorCode(err) != docsearch.EUNAVAILABLE {
			return docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to load search index: %v", err)
		}
		return err
	}

	idx := BuildIndex(records)
	terms := idx.Terms()

	e.mu.Lock()
	e.records = records
	e.index = idx
	e.terms = terms
	e.state = StateReady
	e.mu.Unlock()

	return nil
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Search returns records matching query, best first. Equal scores keep
// ascending record order. Queries that are too short, or searches before
// the index is loaded, return an empty result.
func (e *Engine) Search(query string, opts SearchOptions) []Result {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.state != StateReady {
		e.logger.Warn("search index not loaded", "state", e.state.String(), "query", query)
		return []Result{}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < e.config.MinQueryLength {
		return []Result{}
	}
	var tokens []string
	for _, t := range docsearch.Tokenize(q) {
		if len(t) >= e.config.MinQueryLength {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return []Result{}
	}

	var results []Result
	for _, pos := range e.candidates(tokens) {
		record := e.records[pos]
		if opts.Version != "" && record.Version != opts.Version {
			continue
		}
		if opts.Category != "" && record.Category != opts.Category {
			continue
		}

		result := Result{SearchRecord: *record, Score: e.score(record, q, tokens)}
		result.Breadcrumb = slices.Clone(record.Breadcrumb)
		results = append(results, result)
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	limit := e.config.MaxResults
	if opts.MaxResults > 0 {
		limit = opts.MaxResults
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []Result{}
	}
	return results
}

// candidates returns the ascending positions of records reached by any
// token through an exact, prefix or fuzzy term match.
func (e *Engine) candidates(tokens []string) []int {
	seen := make(map[int]struct{})
	add := func(term string) {
		for _, pos := range e.index[term] {
			seen[pos] = struct{}{}
		}
	}

	for _, token := range tokens {
		add(token)
		fuzzy := len(token) >= e.config.FuzzyMinLength
		for _, term := range e.terms {
			switch {
			case strings.HasPrefix(term, token), strings.HasPrefix(token, term):
				add(term)
			case fuzzy && FuzzyMatch(token, term, e.config.FuzzyThreshold, e.config.MaxLengthDiff):
				add(term)
			}
		}
	}

	positions := make([]int, 0, len(seen))
	for pos := range seen {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	return positions
}

// score rates record against the lowercased query and its tokens.
func (e *Engine) score(record *docsearch.SearchRecord, query string, tokens []string) float64 {
	cfg := e.config
	title := strings.ToLower(record.Title)
	heading := strings.ToLower(record.Heading)
	content := record.FullContent
	if content == "" {
		content = record.Content
	}
	content = strings.ToLower(content)
	breadcrumb := strings.ToLower(strings.Join(record.Breadcrumb, " "))

	var score float64
	if strings.Contains(title, query) {
		score += cfg.ExactTitleBonus
	}
	if strings.Contains(heading, query) {
		score += cfg.ExactHeadingBonus
	}

	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += cfg.TitleWeight
			if strings.HasPrefix(title, token) {
				score += cfg.TitlePrefixBonus
			}
		}
		if strings.Contains(heading, token) {
			score += cfg.HeadingWeight
		}
		if n := strings.Count(content, token); n > 0 {
			score += cfg.ContentWeight + min(float64(n)*cfg.OccurrenceFactor, cfg.MaxOccurrenceBonus)
		}
		if strings.Contains(breadcrumb, token) {
			score += cfg.BreadcrumbWeight
		}
	}

	if utf8.RuneCountInString(record.Title) < cfg.ShortTitleLength {
		score *= cfg.ShortTitleBoost
	}
	if record.HeadingLevel >= 1 && record.HeadingLevel <= cfg.BoostedHeadingLevel {
		score *= cfg.HeadingLevelBoost
	}
	return score
}

// Categories returns the distinct categories of the loaded records, sorted.
func (e *Engine) Categories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return docsearch.Categories(e.records)
}

// Versions returns the distinct versions of the loaded records, sorted.
func (e *Engine) Versions() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return docsearch.Versions(e.records)
}
