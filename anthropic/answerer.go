// Package anthropic answers documentation questions with Claude.
package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fwojciec/docsearch"
)

// Defaults used when the configuration leaves them unset.
const (
	DefaultModel     = "claude-sonnet-4-5"
	DefaultMaxTokens = 4096
)

// Ensure Answerer implements docsearch.Answerer at compile time.
var _ docsearch.Answerer = (*Answerer)(nil)

// Answerer implements docsearch.Answerer using the Anthropic Messages API.
type Answerer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnswerer creates a new Answerer. Empty values select the defaults.
func NewAnswerer(client anthropic.Client, model string, maxTokens int) *Answerer {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Answerer{client: client, model: model, maxTokens: int64(maxTokens)}
}

// Answer returns the complete answer to req.
func (a *Answerer) Answer(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.AnswerResponse, error) {
	if req.Question == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "question required")
	}

	resp, err := a.client.Messages.New(ctx, a.params(req))
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, docsearch.Errorf(docsearch.EINTERNAL, "claude returned no text")
	}
	return &docsearch.AnswerResponse{Answer: sb.String()}, nil
}

// AnswerStream streams the answer to req as it is generated.
func (a *Answerer) AnswerStream(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.Stream, error) {
	if req.Question == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "question required")
	}

	params := a.params(req)
	return docsearch.NewStream(ctx, func(ctx context.Context, emit func(string) error) error {
		stream := a.client.Messages.NewStreaming(ctx, params)
		defer stream.Close()

		for stream.Next() {
			event, ok := stream.Current().AsAny().(anthropic.ContentBlockDeltaEvent)
			if !ok {
				continue
			}
			delta, ok := event.Delta.AsAny().(anthropic.TextDelta)
			if !ok || delta.Text == "" {
				continue
			}
			if err := emit(delta.Text); err != nil {
				return err
			}
		}
		return stream.Err()
	}), nil
}

func (a *Answerer) params(req *docsearch.AnswerRequest) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: docsearch.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(docsearch.BuildUserPrompt(req))),
		},
		Temperature: anthropic.Float(0.4),
	}
}
