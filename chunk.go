package docsearch

import (
	"context"
	"strconv"
	"strings"
)

// MaxChunkTokens is the default token budget of one LLM chunk.
const MaxChunkTokens = 1500

// LlmChunk is a token-budgeted slice of one page, used as LLM context.
// The index, total and range fields are only set when the page was split
// into two or more chunks.
type LlmChunk struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	Title             string `json:"title"`
	Category          string `json:"category"`
	Version           string `json:"version"`
	Content           string `json:"content"`
	TokenEstimate     int    `json:"tokenEstimate"`
	ChunkIndex        *int   `json:"chunkIndex,omitempty"`
	ChunkTotal        *int   `json:"chunkTotal,omitempty"`
	SectionRange      string `json:"sectionRange,omitempty"`
	SectionStartIndex *int   `json:"sectionStartIndex,omitempty"`
	SectionEndIndex   *int   `json:"sectionEndIndex,omitempty"`
}

// IsSplit reports whether the chunk is one of several for its page.
func (c *LlmChunk) IsSplit() bool {
	return c.ChunkIndex != nil
}

// ChunkLoader loads serialized LLM chunks.
type ChunkLoader interface {
	// LoadChunks fetches and decodes the chunks at location.
	// Returns EUNAVAILABLE if the chunks cannot be fetched or decoded.
	LoadChunks(ctx context.Context, location string) ([]*LlmChunk, error)
}

// ChunkHeader renders the preamble repeated at the top of every chunk of a page.
func ChunkHeader(meta PageMetadata, pageURL string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(meta.Title)
	b.WriteString("\n\nURL: ")
	b.WriteString(pageURL)
	b.WriteString("\nCategory: ")
	b.WriteString(meta.Category)
	b.WriteString("\nVersion: ")
	b.WriteString(meta.Version)
	if len(meta.Breadcrumb) > 0 {
		b.WriteString("\nPath: ")
		b.WriteString(strings.Join(meta.Breadcrumb, " > "))
	}
	if meta.Description != "" {
		b.WriteString("\nDescription: ")
		b.WriteString(meta.Description)
	}
	b.WriteString("\n\n---\n\n")
	return b.String()
}

// RenderSection renders a section as markdown. Section headings sit one
// level below the page title.
func RenderSection(s Section) string {
	var b strings.Builder
	if s.Heading != "" {
		b.WriteString(strings.Repeat("#", min(s.HeadingLevel+1, 6)))
		b.WriteString(" ")
		b.WriteString(s.Heading)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Join(s.Content, "\n\n"))
	return b.String()
}

// sectionSpan is a run of sections [start, end] that fits in one chunk.
type sectionSpan struct {
	start, end int
	tokens     int
}

// ChunkPage groups the sections of a page into LLM chunks of at most
// maxTokens estimated tokens, header included.
//
// Sections are consumed greedily left to right and never split: a section
// that does not fit closes the current chunk and seeds the next one, and a
// section that exceeds the budget on its own becomes an oversized chunk.
// A page that fits the budget yields exactly one unnumbered chunk.
func ChunkPage(meta PageMetadata, sections []Section, pageURL string, maxTokens int) []*LlmChunk {
	if len(sections) == 0 {
		return nil
	}
	if maxTokens <= 0 {
		maxTokens = MaxChunkTokens
	}

	header := ChunkHeader(meta, pageURL)
	headerTokens := EstimateTokens(header)

	texts := make([]string, len(sections))
	tokens := make([]int, len(sections))
	for i, s := range sections {
		texts[i] = RenderSection(s)
		tokens[i] = EstimateTokens(texts[i])
	}

	var spans []sectionSpan
	current := sectionSpan{start: 0, tokens: headerTokens}
	for i := range sections {
		if i > current.start && current.tokens+tokens[i] > maxTokens {
			current.end = i - 1
			spans = append(spans, current)
			current = sectionSpan{start: i, tokens: headerTokens}
		}
		current.tokens += tokens[i]
	}
	current.end = len(sections) - 1
	spans = append(spans, current)

	baseID := HashID(pageURL)
	newChunk := func(span sectionSpan) *LlmChunk {
		return &LlmChunk{
			ID:            baseID,
			URL:           pageURL,
			Title:         meta.Title,
			Category:      meta.Category,
			Version:       meta.Version,
			Content:       header + strings.Join(texts[span.start:span.end+1], "\n\n"),
			TokenEstimate: span.tokens,
		}
	}

	if len(spans) == 1 {
		return []*LlmChunk{newChunk(spans[0])}
	}

	chunks := make([]*LlmChunk, 0, len(spans))
	for i, span := range spans {
		chunk := newChunk(span)
		chunk.ID = baseID + "-" + strconv.Itoa(i)
		chunk.ChunkIndex = intPtr(i)
		chunk.SectionStartIndex = intPtr(span.start)
		chunk.SectionEndIndex = intPtr(span.end)
		chunk.SectionRange = sectionRange(sections[span.start], sections[span.end])
		chunks = append(chunks, chunk)
	}

	// The total is only known once every section has been consumed.
	total := len(chunks)
	for _, chunk := range chunks {
		chunk.ChunkTotal = intPtr(total)
	}

	return chunks
}

func sectionRange(first, last Section) string {
	from := first.Heading
	if from == "" {
		from = "(intro)"
	}
	if first.Heading == last.Heading {
		return from
	}
	return from + " - " + last.Heading
}

func intPtr(i int) *int {
	return &i
}
