package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/assist"
	"github.com/fwojciec/docsearch/mcp"
	"github.com/fwojciec/docsearch/search"
)

// Run executes the serve command. Logs go to stderr since stdout carries
// the protocol.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server, err := c.server(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	return server.Run(deps.Ctx)
}

func (c *ServeCmd) server(deps *Dependencies) (*mcp.Server, error) {
	engine := search.NewEngine(deps.Records,
		search.WithConfig(deps.Config.Search),
		search.WithLogger(deps.Logger),
	)
	if err := engine.Load(deps.Ctx, c.Index); err != nil {
		return nil, err
	}

	server := &mcp.Server{Engine: engine, Name: "docsearch", Version: version}

	if deps.Chunks != nil && deps.Answerer != nil {
		assembler := assist.NewAssembler(deps.Chunks,
			assist.WithConfig(deps.Config.Assist),
			assist.WithLogger(deps.Logger),
		)
		if err := assembler.Load(deps.Ctx, c.Chunks); err != nil {
			deps.Logger.Warn("ask tool disabled", "err", err)
		} else {
			server.Assistant = assist.NewAssistant(assembler, deps.Answerer)
		}
	}

	deps.Logger.Info("serving", "records", engine.Len(), "ask", server.Assistant != nil)
	return server, nil
}
