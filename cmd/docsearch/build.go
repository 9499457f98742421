package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/index"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	ix := &index.Indexer{
		Source:      deps.Source,
		Extractor:   deps.Extractor,
		Converter:   deps.Converter,
		BaseURL:     c.BaseURL,
		Concurrency: c.Concurrency,
	}

	build, err := ix.Build(deps.Ctx, func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d HTML files\n", event.Total)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed %s: %s\n", event.File, docsearch.ErrorMessage(event.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	for _, w := range deps.Writers {
		if err := w.WriteBuild(deps.Ctx, build); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
			return err
		}
	}

	stats := build.Metadata.Stats
	fmt.Fprintf(deps.Stdout, "Indexed %d files into %d search records and %d LLM chunks\n",
		stats.FilesProcessed, stats.SearchRecords, stats.LlmChunks)
	fmt.Fprintf(deps.Stdout, "  %d pages split, %d skipped, %d errors\n",
		stats.PagesSplit, stats.PagesSkipped, len(stats.Errors))
	if len(build.Metadata.Categories) > 0 {
		fmt.Fprintf(deps.Stdout, "  categories: %v\n", build.Metadata.Categories)
	}
	return nil
}
