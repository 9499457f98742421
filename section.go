package docsearch

import (
	"regexp"
	"strconv"
	"strings"
)

// Section is a heading-delimited run of content on one page.
// Sections are transient and scoped to the extraction of a single page.
type Section struct {
	Heading        string   `json:"heading,omitempty"`
	HeadingLevel   int      `json:"headingLevel"`
	Anchor         string   `json:"anchor"`
	Content        []string `json:"content"`
	ContentPreview string   `json:"contentPreview"`
}

// FullContent returns the section content joined with single spaces.
func (s *Section) FullContent() string {
	return strings.Join(s.Content, " ")
}

// PageMetadata is derived once per page and shared by every artifact built
// from that page.
type PageMetadata struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Version     string   `json:"version"`
	Breadcrumb  []string `json:"breadcrumb"`
	Description string   `json:"description"`
}

// Page is the result of extracting one HTML document.
type Page struct {
	URL         string
	Metadata    PageMetadata
	Sections    []Section
	ContentHTML string

	// Markdown is the LLM-ready page text, set when a Converter is configured.
	Markdown string
}

var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text, collapses runs of non-alphanumeric characters
// into a single hyphen, and trims leading and trailing hyphens.
func Slugify(text string) string {
	slug := nonAlphanumericRe.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// AnchorSet hands out unique anchors for one page.
// Repeated slugs get numeric suffixes: "example", "example-1", "example-2".
type AnchorSet struct {
	counts map[string]int
}

// NewAnchorSet returns an empty AnchorSet.
func NewAnchorSet() *AnchorSet {
	return &AnchorSet{counts: make(map[string]int)}
}

// Anchor returns id when it is non-empty, otherwise a unique slug of heading.
func (a *AnchorSet) Anchor(id, heading string) string {
	if id != "" {
		a.counts[id]++
		return id
	}

	base := Slugify(heading)
	if base == "" {
		return ""
	}

	count, exists := a.counts[base]
	a.counts[base] = count + 1
	if !exists {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}
