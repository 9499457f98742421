package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

var (
	_ docsearch.RecordLoader = (*LoggingRecordLoader)(nil)
	_ docsearch.ChunkLoader  = (*LoggingChunkLoader)(nil)
)

// LoggingRecordLoader wraps a RecordLoader with logging.
type LoggingRecordLoader struct {
	next   docsearch.RecordLoader
	logger *slog.Logger
}

// NewLoggingRecordLoader creates a new LoggingRecordLoader.
func NewLoggingRecordLoader(next docsearch.RecordLoader, logger *slog.Logger) *LoggingRecordLoader {
	return &LoggingRecordLoader{next: next, logger: logger}
}

// LoadRecords delegates to the wrapped loader and logs the operation.
func (l *LoggingRecordLoader) LoadRecords(ctx context.Context, location string) (records []*docsearch.SearchRecord, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load search index",
			"location", location,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadRecords(ctx, location)
}

// LoggingChunkLoader wraps a ChunkLoader with logging.
type LoggingChunkLoader struct {
	next   docsearch.ChunkLoader
	logger *slog.Logger
}

// NewLoggingChunkLoader creates a new LoggingChunkLoader.
func NewLoggingChunkLoader(next docsearch.ChunkLoader, logger *slog.Logger) *LoggingChunkLoader {
	return &LoggingChunkLoader{next: next, logger: logger}
}

// LoadChunks delegates to the wrapped loader and logs the operation.
func (l *LoggingChunkLoader) LoadChunks(ctx context.Context, location string) (chunks []*docsearch.LlmChunk, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load chunks",
			"location", location,
			"count", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadChunks(ctx, location)
}
