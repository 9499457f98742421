package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mock"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs sections and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(_, pageURL string) (*docsearch.Page, error) {
				return &docsearch.Page{URL: pageURL, Sections: make([]docsearch.Section, 3)}, nil
			},
		}

		page, err := dsslog.NewLoggingExtractor(inner, newLogger(&buf)).Extract("<html></html>", "https://docs.example.com/a.html")

		require.NoError(t, err)
		assert.Len(t, page.Sections, 3)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "url=https://docs.example.com/a.html")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "sections=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs skips at debug level with reason", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(_, _ string) (*docsearch.Page, error) {
				return nil, docsearch.Errorf(docsearch.ESKIP, "placeholder title")
			},
		}

		_, err := dsslog.NewLoggingExtractor(inner, newLogger(&buf)).Extract("", "https://docs.example.com/404.html")

		assert.True(t, docsearch.IsSkip(err))
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, `reason="placeholder title"`)
	})

	t.Run("logs failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(_, _ string) (*docsearch.Page, error) {
				return nil, errors.New("parse error")
			},
		}

		_, err := dsslog.NewLoggingExtractor(inner, newLogger(&buf)).Extract("", "https://docs.example.com/a.html")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="parse error"`)
		assert.Contains(t, buf.String(), "sections=0")
	})
}

func TestLoggingLoaders(t *testing.T) {
	t.Parallel()

	t.Run("logs record count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordLoader{
			LoadRecordsFn: func(_ context.Context, _ string) ([]*docsearch.SearchRecord, error) {
				return []*docsearch.SearchRecord{{ID: "a"}, {ID: "b"}}, nil
			},
		}

		records, err := dsslog.NewLoggingRecordLoader(inner, newLogger(&buf)).LoadRecords(context.Background(), "search-index.min.json")

		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Contains(t, buf.String(), "location=search-index.min.json")
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("logs chunk load errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ChunkLoader{
			LoadChunksFn: func(_ context.Context, _ string) ([]*docsearch.LlmChunk, error) {
				return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "HTTP 404")
			},
		}

		_, err := dsslog.NewLoggingChunkLoader(inner, newLogger(&buf)).LoadChunks(context.Background(), "llm-chunks.json")

		assert.Equal(t, docsearch.EUNAVAILABLE, docsearch.ErrorCode(err))
		assert.Contains(t, buf.String(), "count=0")
		assert.Contains(t, buf.String(), `err="HTTP 404"`)
	})
}

func TestLoggingAnswerer(t *testing.T) {
	t.Parallel()

	t.Run("logs answer sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Answerer{
			AnswerFn: func(_ context.Context, _ *docsearch.AnswerRequest) (*docsearch.AnswerResponse, error) {
				return &docsearch.AnswerResponse{Answer: "Use npm."}, nil
			},
		}
		req := &docsearch.AnswerRequest{Question: "install", Context: "ctx", Sources: []docsearch.Source{{}}}

		resp, err := dsslog.NewLoggingAnswerer(inner, newLogger(&buf)).Answer(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "Use npm.", resp.Answer)
		output := buf.String()
		assert.Contains(t, output, "question=install")
		assert.Contains(t, output, "context_bytes=3")
		assert.Contains(t, output, "sources=1")
		assert.Contains(t, output, "answer_bytes=8")
	})

	t.Run("logs stream start", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Answerer{
			AnswerStreamFn: func(_ context.Context, _ *docsearch.AnswerRequest) (*docsearch.Stream, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		_, err := dsslog.NewLoggingAnswerer(inner, newLogger(&buf)).AnswerStream(context.Background(), &docsearch.AnswerRequest{Question: "install"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `msg="answer stream"`)
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
	})
}
