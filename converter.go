package docsearch

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be the page's content container, not the full
	// document, so navigation chrome stays out of the result.
	Convert(html string) (string, error)
}
