// Package index builds the search index and LLM chunks of a documentation
// site. It coordinates listing, extraction, conversion and chunking of every
// page and accumulates per-file failures instead of aborting the batch.
package index

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files processed in parallel.
const DefaultConcurrency = 8

// Indexer turns a documentation site into a docsearch.Build.
type Indexer struct {
	Source    docsearch.SiteSource
	Extractor docsearch.Extractor

	// Converter is optional. When set, every indexed page also gets
	// LLM-ready Markdown.
	Converter docsearch.Converter

	BaseURL        string
	Concurrency    int
	MaxChunkTokens int

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	File      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressIndexed
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	position int
	file     docsearch.SourceFile
	page     *docsearch.Page
	skipped  bool
	err      error

	// convertErr is a Markdown conversion failure. The page is still indexed.
	convertErr error
}

// Build processes every file of the site. Per-file failures are recorded in
// the build statistics; only a listing failure or context cancellation
// aborts the build.
func (ix *Indexer) Build(ctx context.Context, progress ProgressFunc) (*docsearch.Build, error) {
	files, err := ix.Source.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("list site files: %w", err)
	}

	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(files)
	notify(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan fileResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, file := range files {
			g.Go(func() error {
				resultCh <- ix.processFile(gctx, i, file)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Results arrive in completion order and are stored by file position so
	// the artifacts do not depend on scheduling.
	results := make([]fileResult, total)
	var completed atomic.Int64
	for result := range resultCh {
		results[result.position] = result

		event := ProgressEvent{
			Completed: int(completed.Add(1)),
			Total:     total,
			File:      result.file.Path,
		}
		switch {
		case result.err != nil:
			event.Type = ProgressFailed
			event.Error = result.err
		case result.skipped:
			event.Type = ProgressSkipped
		default:
			event.Type = ProgressIndexed
		}
		notify(progress, event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	build := ix.assemble(files, results)
	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return build, nil
}

func (ix *Indexer) processFile(ctx context.Context, position int, file docsearch.SourceFile) fileResult {
	result := fileResult{position: position, file: file}

	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	html, err := ix.Source.ReadFile(ctx, file)
	if err != nil {
		result.err = fmt.Errorf("read: %w", err)
		return result
	}

	page, err := ix.Extractor.Extract(html, file.URL)
	if docsearch.IsSkip(err) {
		result.skipped = true
		return result
	} else if err != nil {
		result.err = fmt.Errorf("extract: %w", err)
		return result
	}

	if ix.Converter != nil && page.ContentHTML != "" {
		markdown, err := ix.Converter.Convert(page.ContentHTML)
		if err != nil {
			result.convertErr = fmt.Errorf("convert: %w", err)
		} else {
			page.Markdown = markdown
		}
	}

	result.page = page
	return result
}

// assemble derives records, chunks and statistics from the ordered results.
func (ix *Indexer) assemble(files []docsearch.SourceFile, results []fileResult) *docsearch.Build {
	maxTokens := ix.MaxChunkTokens
	if maxTokens <= 0 {
		maxTokens = docsearch.MaxChunkTokens
	}

	build := &docsearch.Build{
		Records: []*docsearch.SearchRecord{},
		Chunks:  []*docsearch.LlmChunk{},
	}
	stats := docsearch.BuildStats{
		FilesProcessed: len(files),
		Errors:         []docsearch.FileError{},
	}
	seen := bloom.NewFilter(uint(len(files)), bloom.DefaultFalsePositiveRate)

	for _, result := range results {
		if result.err != nil {
			stats.Errors = append(stats.Errors, docsearch.FileError{File: result.file.Path, Error: result.err.Error()})
			continue
		}
		if result.skipped {
			stats.PagesSkipped++
			continue
		}
		if result.convertErr != nil {
			stats.Errors = append(stats.Errors, docsearch.FileError{File: result.file.Path, Error: result.convertErr.Error()})
		}

		page := result.page
		if !seen.Add(page.URL) {
			stats.PagesSkipped++
			continue
		}

		build.Pages = append(build.Pages, page)
		build.Records = append(build.Records, docsearch.PageRecords(page)...)

		chunks := docsearch.ChunkPage(page.Metadata, page.Sections, page.URL, maxTokens)
		if len(chunks) > 1 {
			stats.PagesSplit++
		}
		build.Chunks = append(build.Chunks, chunks...)
	}

	stats.SearchRecords = len(build.Records)
	stats.LlmChunks = len(build.Chunks)

	build.Metadata = docsearch.BuildMetadata{
		Generated:  ix.now(),
		BuildID:    ix.newID(),
		BaseURL:    ix.BaseURL,
		Stats:      stats,
		Categories: docsearch.Categories(build.Records),
		Versions:   docsearch.Versions(build.Records),
	}
	return build
}

func (ix *Indexer) now() time.Time {
	if ix.Now != nil {
		return ix.Now()
	}
	return time.Now().UTC()
}

func (ix *Indexer) newID() string {
	if ix.NewID != nil {
		return ix.NewID()
	}
	return uuid.NewString()
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
