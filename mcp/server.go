// Package mcp exposes documentation search and question answering as Model
// Context Protocol tools.
package mcp

import (
	"context"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/assist"
	"github.com/fwojciec/docsearch/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolSearch = "search_documentation"
	ToolAsk    = "ask_documentation"
	ToolFacets = "list_documentation_facets"
)

// SearchInput is the input of the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"Search query for documentation"`
	Version    string `json:"version,omitempty" jsonschema:"Only return sections of this version (optional)"`
	Category   string `json:"category,omitempty" jsonschema:"Only return sections of this category (optional)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (optional)"`
}

// Hit is one search result.
type Hit struct {
	Title      string   `json:"title"`
	Heading    string   `json:"heading,omitempty"`
	URL        string   `json:"url"`
	Category   string   `json:"category"`
	Version    string   `json:"version"`
	Preview    string   `json:"preview"`
	Breadcrumb []string `json:"breadcrumb,omitempty"`
	Score      float64  `json:"score"`
}

// SearchOutput is the output of the search tool.
type SearchOutput struct {
	Query   string `json:"query"`
	Results []Hit  `json:"results"`
}

// AskInput is the input of the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"Question about the documentation"`
}

// AskOutput is the output of the ask tool.
type AskOutput struct {
	Answer  string             `json:"answer"`
	Sources []docsearch.Source `json:"sources"`
}

// FacetsInput is the input of the facets tool.
type FacetsInput struct{}

// FacetsOutput lists the values the search filters accept.
type FacetsOutput struct {
	Categories []string `json:"categories"`
	Versions   []string `json:"versions"`
}

// Server holds the services behind the tools.
type Server struct {
	Engine *search.Engine

	// Assistant is optional. Without it the ask tool is not registered.
	Assistant *assist.Assistant

	Name    string
	Version string
}

// MCPServer creates the protocol server with every available tool registered.
func (s *Server) MCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: s.Name, Version: s.Version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearch,
		Description: "Search the documentation. Returns the best matching sections with their URLs.",
	}, s.Search)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolFacets,
		Description: "List the documentation categories and versions accepted as search filters.",
	}, s.Facets)
	if s.Assistant != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        ToolAsk,
			Description: "Answer a question from the documentation and cite the sections used.",
		}, s.Ask)
	}
	return server
}

// Run serves the tools over stdin and stdout until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer().Run(ctx, &mcp.StdioTransport{})
}

// Search handles the search tool.
func (s *Server) Search(_ context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, SearchOutput{}, docsearch.Errorf(docsearch.EINVALID, "query is required")
	}

	results := s.Engine.Search(query, search.SearchOptions{
		Version:    input.Version,
		Category:   input.Category,
		MaxResults: input.MaxResults,
	})

	out := SearchOutput{Query: query, Results: make([]Hit, len(results))}
	for i, r := range results {
		out.Results[i] = Hit{
			Title:      r.Title,
			Heading:    r.Heading,
			URL:        r.URL,
			Category:   r.Category,
			Version:    r.Version,
			Preview:    r.Content,
			Breadcrumb: r.Breadcrumb,
			Score:      r.Score,
		}
	}
	return nil, out, nil
}

// Ask handles the ask tool.
func (s *Server) Ask(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.Assistant.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	sources := answer.Sources
	if sources == nil {
		sources = []docsearch.Source{}
	}
	return nil, AskOutput{Answer: answer.Text, Sources: sources}, nil
}

// Facets handles the facets tool.
func (s *Server) Facets(_ context.Context, _ *mcp.CallToolRequest, _ FacetsInput) (*mcp.CallToolResult, FacetsOutput, error) {
	return nil, FacetsOutput{Categories: s.Engine.Categories(), Versions: s.Engine.Versions()}, nil
}
