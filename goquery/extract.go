package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// Ensure Extractor implements docsearch.Extractor at compile time.
var _ docsearch.Extractor = (*Extractor)(nil)

const (
	// MinContentLength is the shortest container text accepted for indexing.
	MinContentLength = 100
	// MinFragmentLength is the shortest text fragment appended to a section.
	MinFragmentLength = 10

	maxCodeLength        = 200
	maxTableLength       = 300
	maxDescriptionLength = 200
)

// ContainerSelectors locate the primary content container, first match wins.
var ContainerSelectors = []string{
	"article.doc",
	".doc",
	"main article",
	"article",
	"main",
	`[role="main"]`,
}

// TitleSelectors locate the page title before falling back to <title>.
var TitleSelectors = []string{
	"article.doc h1.page",
	"h1.page",
	".doc h1",
	"article h1",
	"h1",
}

// DefaultBoilerplate lists site-wide meta descriptions that say nothing
// about the page they sit on.
var DefaultBoilerplate = []string{
	"magnolia documentation",
	"documentation for magnolia",
}

const (
	breadcrumbSelector = "nav.breadcrumbs a, .breadcrumbs a, .breadcrumb a"
	walkSelector       = "h1, h2, h3, h4, p, li, dt, dd, pre, table"
	blockSelector      = "li, dt, dd, pre, table"
	rawBlockSelector   = "pre, table"
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithBoilerplate replaces the meta description phrases that are ignored.
func WithBoilerplate(phrases ...string) Option {
	return func(e *Extractor) {
		e.boilerplate = make([]string, len(phrases))
		for i, p := range phrases {
			e.boilerplate[i] = strings.ToLower(p)
		}
	}
}

// WithMinContentLength sets the container text length below which a page is skipped.
func WithMinContentLength(n int) Option {
	return func(e *Extractor) {
		e.minContentLength = n
	}
}

// Extractor parses documentation pages into metadata and sections using
// CSS selectors.
type Extractor struct {
	boilerplate      []string
	minContentLength int
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		boilerplate:      DefaultBoilerplate,
		minContentLength: MinContentLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html served at pageURL.
func (e *Extractor) Extract(html string, pageURL string) (*docsearch.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	title := extractTitle(doc)
	if title == "" {
		return nil, docsearch.Errorf(docsearch.ESKIP, "page has no title")
	}
	if strings.Contains(title, "404") || strings.Contains(title, "Redirect") {
		return nil, docsearch.Errorf(docsearch.ESKIP, "placeholder page %q", title)
	}

	container := findContainer(doc)
	if container == nil {
		return nil, docsearch.Errorf(docsearch.ESKIP, "no content container")
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(container.Text())); n < e.minContentLength {
		return nil, docsearch.Errorf(docsearch.ESKIP, "content too short: %d characters", n)
	}

	class := docsearch.Classify(pageURL)
	meta := docsearch.PageMetadata{
		Title:       title,
		Category:    class.Category,
		Version:     class.Version,
		Breadcrumb:  extractBreadcrumb(doc),
		Description: e.extractDescription(doc, container),
	}

	contentHTML, err := goquery.OuterHtml(container)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to render content: %v", err)
	}

	return &docsearch.Page{
		URL:         pageURL,
		Metadata:    meta,
		Sections:    extractSections(container),
		ContentHTML: contentHTML,
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, sel := range TitleSelectors {
		if text := cleanText(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	title := doc.Find("title").First().Text()
	if before, _, found := strings.Cut(title, "::"); found {
		title = before
	}
	return cleanText(title)
}

func findContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range ContainerSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

func extractBreadcrumb(doc *goquery.Document) []string {
	var crumbs []string
	doc.Find(breadcrumbSelector).Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			crumbs = append(crumbs, text)
		}
	})
	return crumbs
}

func (e *Extractor) extractDescription(doc *goquery.Document, container *goquery.Selection) string {
	desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if desc != "" && !e.isBoilerplate(desc) {
		return desc
	}

	desc = ""
	container.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		desc = cleanText(s.Text())
		return desc == ""
	})
	return docsearch.Truncate(desc, maxDescriptionLength)
}

func (e *Extractor) isBoilerplate(desc string) bool {
	lower := strings.ToLower(desc)
	for _, phrase := range e.boilerplate {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// extractSections walks the container once in document order. Headings open
// sections, other elements append their rendered text to the open section.
// Sections left without content are dropped.
func extractSections(container *goquery.Selection) []docsearch.Section {
	anchors := docsearch.NewAnchorSet()
	var sections []docsearch.Section
	current := docsearch.Section{}

	flush := func() {
		if len(current.Content) == 0 {
			return
		}
		current.ContentPreview = docsearch.Preview(current.FullContent(), docsearch.PreviewLength)
		sections = append(sections, current)
	}

	container.Find(walkSelector).Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		if level := headingLevel(tag); level > 0 {
			flush()
			heading := cleanText(s.Text())
			current = docsearch.Section{
				Heading:      heading,
				HeadingLevel: level,
				Anchor:       anchors.Anchor(s.AttrOr("id", ""), heading),
			}
			return
		}

		// Text nested in a block is part of that block. Code and tables inside
		// list items are the exception: they keep their own rendering and are
		// cut out of the item text instead.
		enclosing := blockSelector
		if s.Is(rawBlockSelector) {
			enclosing = rawBlockSelector
		}
		if s.ParentsUntilSelection(container).Is(enclosing) {
			return
		}

		if text := renderBlock(tag, s); text != "" {
			current.Content = append(current.Content, text)
		}
	})
	flush()

	return sections
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	}
	return 0
}

// renderBlock returns the section text for a content element, or "" when
// the element is too short to keep.
func renderBlock(tag string, s *goquery.Selection) string {
	switch tag {
	case "pre":
		code := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(code) < MinFragmentLength {
			return ""
		}
		return docsearch.CodeMarker + " " + docsearch.Truncate(code, maxCodeLength)
	case "table":
		var cells []string
		s.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			if text := cleanText(cell.Text()); text != "" {
				cells = append(cells, text)
			}
		})
		joined := strings.Join(cells, " | ")
		if utf8.RuneCountInString(joined) < MinFragmentLength {
			return ""
		}
		return docsearch.TableMarker + " " + docsearch.Truncate(joined, maxTableLength)
	case "li", "dt", "dd":
		item := s.Clone()
		item.Find(rawBlockSelector).Remove()
		text := cleanText(item.Text())
		if utf8.RuneCountInString(text) < MinFragmentLength {
			return ""
		}
		return text
	default:
		text := cleanText(s.Text())
		if utf8.RuneCountInString(text) < MinFragmentLength {
			return ""
		}
		return text
	}
}

// cleanText collapses whitespace runs into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
