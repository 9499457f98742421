package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/search"
)

// highlightTag wraps matched terms in terminal output.
const highlightTag = "mark"

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	engine := search.NewEngine(deps.Records,
		search.WithConfig(deps.Config.Search),
		search.WithLogger(deps.Logger),
	)
	if err := engine.Load(deps.Ctx, c.Index); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	results := engine.Search(c.Query, search.SearchOptions{
		Version:    c.Version,
		Category:   c.Category,
		MaxResults: c.Limit,
	})

	if c.Highlight {
		for i := range results {
			results[i].Title = search.Highlight(results[i].Title, c.Query, highlightTag)
			results[i].Content = search.Highlight(results[i].Content, c.Query, highlightTag)
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q\n", c.Query)
		return nil
	}

	for i, r := range results {
		title := r.Title
		if r.Heading != "" {
			title += " › " + r.Heading
		}
		fmt.Fprintf(deps.Stdout, "%d. %s (%.1f)\n", i+1, title, r.Score)
		fmt.Fprintf(deps.Stdout, "   %s\n", r.URL)
		if len(r.Breadcrumb) > 0 {
			fmt.Fprintf(deps.Stdout, "   %s\n", strings.Join(r.Breadcrumb, " / "))
		}
		if r.Content != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", r.Content)
		}
	}
	return nil
}
