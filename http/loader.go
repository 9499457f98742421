package http

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var (
	_ docsearch.RecordLoader = (*Loader)(nil)
	_ docsearch.ChunkLoader  = (*Loader)(nil)
)

// Loader fetches search artifacts published on a web server.
type Loader struct {
	client *Client
}

// NewLoader creates a Loader. A nil client uses NewClient defaults.
func NewLoader(client *Client) *Loader {
	if client == nil {
		client = NewClient()
	}
	return &Loader{client: client}
}

// LoadRecords fetches a search index.
func (l *Loader) LoadRecords(ctx context.Context, location string) ([]*docsearch.SearchRecord, error) {
	var records []*docsearch.SearchRecord
	if err := l.client.getJSON(ctx, location, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "search index at %s is not an array", location)
	}
	return records, nil
}

// LoadChunks fetches LLM chunks.
func (l *Loader) LoadChunks(ctx context.Context, location string) ([]*docsearch.LlmChunk, error) {
	var chunks []*docsearch.LlmChunk
	if err := l.client.getJSON(ctx, location, &chunks); err != nil {
		return nil, err
	}
	if chunks == nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "chunks at %s are not an array", location)
	}
	return chunks, nil
}
