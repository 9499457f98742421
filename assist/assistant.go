package assist

import (
	"context"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Answer is the reply to a question together with the chunks it was based on.
type Answer struct {
	Text    string
	Sources []docsearch.Source
	Tokens  int
}

// Assistant answers questions by assembling documentation context and
// handing it to a language model.
type Assistant struct {
	Assembler *Assembler
	Answerer  docsearch.Answerer
}

// NewAssistant creates an Assistant.
func NewAssistant(assembler *Assembler, answerer docsearch.Answerer) *Assistant {
	return &Assistant{Assembler: assembler, Answerer: answerer}
}

// Ask answers question in one call.
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	assembly, err := a.prepare(question)
	if err != nil {
		return nil, err
	}

	resp, err := a.Answerer.Answer(ctx, assembly.Request())
	if err != nil {
		return nil, err
	}
	return &Answer{
		Text:    resp.Answer,
		Sources: assembly.Sources,
		Tokens:  assembly.Tokens,
	}, nil
}

// AskStream answers question as a stream of text deltas. The returned
// sources are those included in the context.
func (a *Assistant) AskStream(ctx context.Context, question string) (*docsearch.Stream, []docsearch.Source, error) {
	assembly, err := a.prepare(question)
	if err != nil {
		return nil, nil, err
	}

	stream, err := a.Answerer.AnswerStream(ctx, assembly.Request())
	if err != nil {
		return nil, nil, err
	}
	return stream, assembly.Sources, nil
}

func (a *Assistant) prepare(question string) (*Assembly, error) {
	if a.Answerer == nil {
		return nil, docsearch.Errorf(docsearch.ECONFIG, "no answer provider configured")
	}
	if a.Assembler == nil || !a.Assembler.Loaded() {
		return nil, docsearch.Errorf(docsearch.ECONFIG, "documentation chunks not loaded")
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "question is required")
	}
	return a.Assembler.Assemble(question), nil
}
