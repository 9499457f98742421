// Package gemini answers documentation questions with Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/docsearch"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Answerer implements docsearch.Answerer at compile time.
var _ docsearch.Answerer = (*Answerer)(nil)

// Answerer implements docsearch.Answerer using Google Gemini.
type Answerer struct {
	client *genai.Client
	model  string
}

// NewAnswerer creates a new Answerer. An empty model selects DefaultModel.
func NewAnswerer(client *genai.Client, model string) *Answerer {
	if model == "" {
		model = DefaultModel
	}
	return &Answerer{client: client, model: model}
}

// Answer returns the complete answer to req.
func (a *Answerer) Answer(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.AnswerResponse, error) {
	if req.Question == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "question required")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents(req), BuildConfig())
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docsearch.Errorf(docsearch.EINTERNAL, "gemini returned nil result")
	}

	return &docsearch.AnswerResponse{Answer: result.Text()}, nil
}

// AnswerStream streams the answer to req as it is generated.
func (a *Answerer) AnswerStream(ctx context.Context, req *docsearch.AnswerRequest) (*docsearch.Stream, error) {
	if req.Question == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "question required")
	}

	return docsearch.NewStream(ctx, func(ctx context.Context, emit func(string) error) error {
		for resp, err := range a.client.Models.GenerateContentStream(ctx, a.model, contents(req), BuildConfig()) {
			if err != nil {
				return err
			}
			if text := resp.Text(); text != "" {
				if err := emit(text); err != nil {
					return err
				}
			}
		}
		return nil
	}), nil
}

func contents(req *docsearch.AnswerRequest) []*genai.Content {
	return []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: docsearch.BuildUserPrompt(req)}},
	}}
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: docsearch.SystemPrompt}},
		},
		Temperature: &temp,
	}
}
