package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// Ensure Converter implements docsearch.Converter at compile time.
var _ docsearch.Converter = (*Converter)(nil)

// ChromeSelectors match page chrome that Antora renders inside the content
// container and that carries no documentation text.
var ChromeSelectors = []string{
	"script",
	"style",
	"nav",
	"button",
	"a.anchor",
	".toc",
	".admonitionblock td.icon",
	".page-versions",
	".edit-this-page",
}

// Converter wraps html-to-markdown to turn a page's content container into
// LLM-ready Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// NewConverter creates a new Converter. When domain is non-empty, relative
// links and image sources are made absolute against it.
func NewConverter(domain string) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv, domain: domain}
}

// Convert strips page chrome from html and transforms the rest into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docsearch.Errorf(docsearch.EINVALID, "empty HTML input")
	}

	cleaned, err := stripChrome(html)
	if err != nil {
		return "", err
	}

	var result string
	if c.domain != "" {
		result, err = c.conv.ConvertString(cleaned, converter.WithDomain(c.domain))
	} else {
		result, err = c.conv.ConvertString(cleaned)
	}
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "failed to convert HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}

func stripChrome(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(strings.Join(ChromeSelectors, ", ")).Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "failed to render HTML: %v", err)
	}
	return body, nil
}
