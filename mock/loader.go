package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.RecordLoader = (*RecordLoader)(nil)

// RecordLoader is a mock implementation of docsearch.RecordLoader.
type RecordLoader struct {
	LoadRecordsFn func(ctx context.Context, location string) ([]*docsearch.SearchRecord, error)
}

func (l *RecordLoader) LoadRecords(ctx context.Context, location string) ([]*docsearch.SearchRecord, error) {
	return l.LoadRecordsFn(ctx, location)
}

var _ docsearch.ChunkLoader = (*ChunkLoader)(nil)

// ChunkLoader is a mock implementation of docsearch.ChunkLoader.
type ChunkLoader struct {
	LoadChunksFn func(ctx context.Context, location string) ([]*docsearch.LlmChunk, error)
}

func (l *ChunkLoader) LoadChunks(ctx context.Context, location string) ([]*docsearch.LlmChunk, error) {
	return l.LoadChunksFn(ctx, location)
}
