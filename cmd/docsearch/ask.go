package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/assist"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	assembler := assist.NewAssembler(deps.Chunks,
		assist.WithConfig(deps.Config.Assist),
		assist.WithLogger(deps.Logger),
	)
	if err := assembler.Load(deps.Ctx, c.Chunks); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if c.ShowContext {
		assembly := assembler.Assemble(c.Question)
		if len(assembly.Chunks) == 0 {
			fmt.Fprintln(deps.Stdout, "No relevant documentation found")
			return nil
		}
		fmt.Fprintln(deps.Stdout, assembly.Context)
		fmt.Fprintf(deps.Stdout, "\n(%d chunks, ~%d tokens)\n", len(assembly.Chunks), assembly.Tokens)
		return nil
	}

	assistant := assist.NewAssistant(assembler, deps.Answerer)

	if c.Stream {
		return c.stream(deps, assistant)
	}

	answer, err := assistant.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	printSources(deps, answer.Sources)
	return nil
}

func (c *AskCmd) stream(deps *Dependencies, assistant *assist.Assistant) error {
	stream, sources, err := assistant.AskStream(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	defer stream.Close()

	completed := false
	for ev := range stream.Events() {
		switch ev.Type {
		case docsearch.EventDelta:
			fmt.Fprint(deps.Stdout, ev.Text)
		case docsearch.EventError:
			fmt.Fprintln(deps.Stdout)
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(ev.Err))
			return ev.Err
		case docsearch.EventDone:
			completed = true
		}
	}
	fmt.Fprintln(deps.Stdout)
	if !completed {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(docsearch.ErrStreamIncomplete))
		return docsearch.ErrStreamIncomplete
	}
	printSources(deps, sources)
	return nil
}

func printSources(deps *Dependencies, sources []docsearch.Source) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout, "\nSources:")
	for i, s := range sources {
		fmt.Fprintf(deps.Stdout, "%d. %s (%s)\n", i+1, s.Title, s.URL)
	}
}
