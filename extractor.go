package docsearch

// Extractor parses one HTML document into page metadata and sections.
type Extractor interface {
	// Extract parses html served at pageURL.
	// Returns ESKIP when the page is intentionally excluded from the index
	// (placeholder title, missing or too-short content). Any other error
	// means the document could not be processed.
	Extract(html string, pageURL string) (*Page, error)
}

// IsSkip reports whether err is an extraction skip rather than a failure.
func IsSkip(err error) bool {
	return err != nil && ErrorCode(err) == ESKIP
}
