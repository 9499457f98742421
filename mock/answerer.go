package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of docsearch.Answerer.
type Answerer struct {
	AnswerFn       func(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.AnswerResponse, error)
	AnswerStreamFn func(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.Stream, error)
}

func (a *Answerer) Answer(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.AnswerResponse, error) {
	return a.AnswerFn(ctx, req)
}

func (a *Answerer) AnswerStream(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.Stream, error) {
	return a.AnswerStreamFn(ctx, req)
}
