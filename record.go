package docsearch

import (
	"context"
	"slices"
	"strings"
)

// SearchRecord is one independently addressable search result: a single
// non-empty section of a page. Records are immutable once built and are
// serialized as the search index.
type SearchRecord struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Heading      string   `json:"heading"`
	HeadingLevel int      `json:"headingLevel"`
	Content      string   `json:"content"`
	FullContent  string   `json:"fullContent"`
	Category     string   `json:"category"`
	Version      string   `json:"version"`
	Breadcrumb   []string `json:"breadcrumb"`
	SearchText   string   `json:"searchText"`
}

// NewSearchRecord builds the search record for one section of a page.
func NewSearchRecord(meta PageMetadata, section Section, pageURL string) *SearchRecord {
	url := pageURL
	if section.Anchor != "" {
		url = pageURL + "#" + section.Anchor
	}

	full := section.FullContent()

	return &SearchRecord{
		ID:           HashID(url),
		URL:          url,
		Title:        meta.Title,
		Heading:      section.Heading,
		HeadingLevel: section.HeadingLevel,
		Content:      Preview(full, PreviewLength),
		FullContent:  full,
		Category:     meta.Category,
		Version:      meta.Version,
		Breadcrumb:   meta.Breadcrumb,
		SearchText:   strings.ToLower(meta.Title + " " + section.Heading + " " + full),
	}
}

// PageRecords builds one record per non-empty section of a page.
func PageRecords(page *Page) []*SearchRecord {
	records := make([]*SearchRecord, 0, len(page.Sections))
	for _, section := range page.Sections {
		if len(section.Content) == 0 {
			continue
		}
		records = append(records, NewSearchRecord(page.Metadata, section, page.URL))
	}
	return records
}

// Categories returns the distinct non-empty categories of records, sorted.
func Categories(records []*SearchRecord) []string {
	return distinct(records, func(r *SearchRecord) string { return r.Category })
}

// Versions returns the distinct non-empty versions of records, sorted.
func Versions(records []*SearchRecord) []string {
	return distinct(records, func(r *SearchRecord) string { return r.Version })
}

func distinct(records []*SearchRecord, field func(*SearchRecord) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, r := range records {
		v := field(r)
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// RecordLoader loads a serialized search index.
type RecordLoader interface {
	// LoadRecords fetches and decodes the search index at location.
	// Returns EUNAVAILABLE if the index cannot be fetched or decoded.
	LoadRecords(ctx context.Context, location string) ([]*SearchRecord, error)
}
