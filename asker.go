package docsearch

import "context"

// Source cites a chunk that was included in an answer's context.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// AnswerRequest is the payload sent to the language model boundary.
type AnswerRequest struct {
	Question string   `json:"question"`
	Context  string   `json:"context"`
	Sources  []Source `json:"sources"`
}

// AnswerResponse is the reply from the language model boundary.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// Answerer answers a question from an assembled documentation context.
type Answerer interface {
	// Answer returns the complete answer.
	Answer(ctx context.Context, req *AnswerRequest) (*AnswerResponse, error)

	// AnswerStream returns the answer as a stream of text deltas.
	AnswerStream(ctx context.Context, req *AnswerRequest) (*Stream, error)
}
