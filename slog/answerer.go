package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingAnswerer implements docsearch.Answerer.
var _ docsearch.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps an Answerer with logging.
type LoggingAnswerer struct {
	next   docsearch.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next docsearch.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Answer delegates to the wrapped answerer and logs the call.
func (a *LoggingAnswerer) Answer(ctx context.Context, req *docsearch.AnswerRequest) (resp *docsearch.AnswerResponse, err error) {
	defer func(begin time.Time) {
		answerLen := 0
		if resp != nil {
			answerLen = len(resp.Answer)
		}
		a.logger.Info("answer",
			"question", req.Question,
			"context_bytes", len(req.Context),
			"sources", len(req.Sources),
			"answer_bytes", answerLen,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, req)
}

// AnswerStream delegates to the wrapped answerer and logs the stream start.
func (a *LoggingAnswerer) AnswerStream(ctx context.Context, req *docsearch.AnswerRequest) (stream *docsearch.Stream, err error) {
	defer func(begin time.Time) {
		a.logger.Info("answer stream",
			"question", req.Question,
			"context_bytes", len(req.Context),
			"sources", len(req.Sources),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.AnswerStream(ctx, req)
}
