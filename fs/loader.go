package fs

import (
	"context"
	"encoding/json"
	"os"

	"github.com/fwojciec/docsearch"
)

// Ensure Loader implements the artifact loader interfaces at compile time.
var (
	_ docsearch.RecordLoader = (*Loader)(nil)
	_ docsearch.ChunkLoader  = (*Loader)(nil)
)

// Loader reads artifacts from local files. Locations are file paths.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecords reads a search index file.
func (l *Loader) LoadRecords(ctx context.Context, location string) ([]*docsearch.SearchRecord, error) {
	var records []*docsearch.SearchRecord
	if err := readJSON(ctx, location, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadChunks reads an LLM chunks file.
func (l *Loader) LoadChunks(ctx context.Context, location string) ([]*docsearch.LlmChunk, error) {
	var chunks []*docsearch.LlmChunk
	if err := readJSON(ctx, location, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

func readJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to decode %s: %v", path, err)
	}
	return nil
}
