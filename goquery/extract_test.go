package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const installURL = "https://docs.magnolia-cms.com/product-docs/6.2/Developing/install.html"

const antoraPage = `<!DOCTYPE html>
<html>
<head>
	<title>Installing Magnolia :: Magnolia CMS Docs</title>
	<meta name="description" content="Step by step installation of a Magnolia bundle.">
</head>
<body>
<nav class="breadcrumbs">
	<ul>
		<li><a href="/product-docs/6.2/">Magnolia 6.2</a></li>
		<li><a href="/product-docs/6.2/Developing/">Developing</a></li>
		<li><a href="#"> </a></li>
	</ul>
</nav>
<main>
<article class="doc">
	<h1 class="page">Installing   Magnolia</h1>
	<p>This page explains how to install a Magnolia bundle on your machine.</p>
	<h2 id="_prerequisites">Prerequisites</h2>
	<p>You need Java 17 and Maven installed before you start.</p>
	<ul>
		<li>Java Development Kit 17 or newer</li>
		<li>Apache Maven 3.8 <p>nested paragraph inside list item</p></li>
	</ul>
	<p>short</p>
	<h2>Empty section</h2>
	<h2>Install the CLI</h2>
	<pre>npm install -g @magnolia/cli</pre>
	<table>
		<tr><th>Option</th><th>Meaning</th></tr>
		<tr><td>-g</td><td>Install globally</td></tr>
	</table>
	<h3>Install the CLI</h3>
	<p>Repeated heading text gets a unique anchor.</p>
</article>
</main>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts metadata from antora page", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewExtractor().Extract(antoraPage, installURL)

		require.NoError(t, err)
		assert.Equal(t, installURL, page.URL)
		assert.Equal(t, "Installing Magnolia", page.Metadata.Title)
		assert.Equal(t, "Magnolia 6.2", page.Metadata.Category)
		assert.Equal(t, "6.2", page.Metadata.Version)
		assert.Equal(t, []string{"Magnolia 6.2", "Developing"}, page.Metadata.Breadcrumb)
		assert.Equal(t, "Step by step installation of a Magnolia bundle.", page.Metadata.Description)
		assert.Contains(t, page.ContentHTML, `<article class="doc">`)
	})

	t.Run("splits content into heading sections", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewExtractor().Extract(antoraPage, installURL)

		require.NoError(t, err)
		require.Len(t, page.Sections, 4)

		title := page.Sections[0]
		assert.Equal(t, "Installing Magnolia", title.Heading)
		assert.Equal(t, 1, title.HeadingLevel)
		assert.Equal(t, "installing-magnolia", title.Anchor)
		assert.Equal(t, []string{"This page explains how to install a Magnolia bundle on your machine."}, title.Content)

		prereq := page.Sections[1]
		assert.Equal(t, "Prerequisites", prereq.Heading)
		assert.Equal(t, 2, prereq.HeadingLevel)
		assert.Equal(t, "_prerequisites", prereq.Anchor)
		assert.Equal(t, []string{
			"You need Java 17 and Maven installed before you start.",
			"Java Development Kit 17 or newer",
			"Apache Maven 3.8 nested paragraph inside list item",
		}, prereq.Content)

		install := page.Sections[2]
		assert.Equal(t, "Install the CLI", install.Heading)
		assert.Equal(t, "install-the-cli", install.Anchor)
		assert.Equal(t, []string{
			"[Code] npm install -g @magnolia/cli",
			"[Table] Option | Meaning | -g | Install globally",
		}, install.Content)

		repeated := page.Sections[3]
		assert.Equal(t, 3, repeated.HeadingLevel)
		assert.Equal(t, "install-the-cli-1", repeated.Anchor)
	})

	t.Run("renders code and tables inside list items by type", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Install</title></head><body><main>
			<h2>Steps</h2>
			<ol>
				<li>Run the installer command below:<pre>npm install -g @magnolia/cli --verbose</pre></li>
				<li>Check the options:<table><tr><td>--verbose</td><td>Print every step</td></tr></table></li>
			</ol>
			<p>Padding paragraph long enough that the container passes the minimum content length check on its own.</p>
		</main></body></html>`

		page, err := goquery.NewExtractor().Extract(html, "https://docs.example.com/modules/install.html")

		require.NoError(t, err)
		require.Len(t, page.Sections, 1)
		assert.Equal(t, []string{
			"Run the installer command below:",
			"[Code] npm install -g @magnolia/cli --verbose",
			"Check the options:",
			"[Table] --verbose | Print every step",
			"Padding paragraph long enough that the container passes the minimum content length check on its own.",
		}, page.Sections[0].Content)
	})

	t.Run("measures fragment length in characters", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Umlaute</title></head><body><main>
			<h2>Größen</h2>
			<p>ÄÖÜäöüßÄÖ</p>
			<p>ÄÖÜäöüßÄÖÜ</p>
			<p>Padding paragraph long enough that the container passes the minimum content length check on its own.</p>
		</main></body></html>`

		page, err := goquery.NewExtractor().Extract(html, "https://docs.example.com/modules/umlaute.html")

		require.NoError(t, err)
		require.Len(t, page.Sections, 1)
		assert.Equal(t, []string{
			"ÄÖÜäöüßÄÖÜ",
			"Padding paragraph long enough that the container passes the minimum content length check on its own.",
		}, page.Sections[0].Content)
	})

	t.Run("sets content preview", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewExtractor().Extract(antoraPage, installURL)

		require.NoError(t, err)
		assert.Equal(t, page.Sections[0].FullContent(), page.Sections[0].ContentPreview)
	})

	t.Run("keeps content before the first heading", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Intro page</title></head><body><main>
			<p>Leading paragraph before any heading appears on the page at all.</p>
			<h2>Details</h2>
			<p>Detail paragraph with enough text to be kept in the section.</p>
		</main></body></html>`

		page, err := goquery.NewExtractor().Extract(html, "https://docs.example.com/modules/intro.html")

		require.NoError(t, err)
		require.Len(t, page.Sections, 2)
		assert.Empty(t, page.Sections[0].Heading)
		assert.Equal(t, 0, page.Sections[0].HeadingLevel)
		assert.Empty(t, page.Sections[0].Anchor)
		assert.Equal(t, "Modules", page.Metadata.Category)
		assert.Equal(t, "modules", page.Metadata.Version)
	})

	t.Run("falls back to title tag before separator", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Light Development :: Magnolia</title></head><body>
			<div role="main"><p>` + strings.Repeat("Light development content. ", 5) + `</p></div>
		</body></html>`

		page, err := goquery.NewExtractor().Extract(html, "https://docs.example.com/paas/light.html")

		require.NoError(t, err)
		assert.Equal(t, "Light Development", page.Metadata.Title)
		assert.Equal(t, "Magnolia PaaS", page.Metadata.Category)
	})

	t.Run("ignores boilerplate meta description", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", 250)
		html := `<html><head><title>Page</title>
			<meta name="description" content="The official Magnolia Documentation portal"></head><body>
			<article><h1>Page</h1><p>   </p><p>` + long + `</p></article>
		</body></html>`

		page, err := goquery.NewExtractor().Extract(html, "https://docs.example.com/page.html")

		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("x", 200), page.Metadata.Description)
	})

	t.Run("uses custom boilerplate phrases", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Page</title>
			<meta name="description" content="Generic Site Blurb"></head><body>
			<article><h1>Page</h1><p>` + strings.Repeat("First paragraph text. ", 6) + `</p></article>
		</body></html>`

		page, err := goquery.NewExtractor(goquery.WithBoilerplate("generic site")).Extract(html, "https://docs.example.com/page.html")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(page.Metadata.Description, "First paragraph text."))
	})

	t.Run("truncates code blocks", func(t *testing.T) {
		t.Parallel()

		code := strings.Repeat("a", 500)
		html := `<html><head><title>Code</title></head><body><article><h1>Code</h1>
			<pre>` + code + `</pre></article></body></html>`

		page, err := goquery.NewExtractor().Extract(html, "https://docs.example.com/code.html")

		require.NoError(t, err)
		require.Len(t, page.Sections, 1)
		assert.Equal(t, docsearch.CodeMarker+" "+strings.Repeat("a", 200), page.Sections[0].Content[0])
	})
}

func TestExtractor_Extract_Skips(t *testing.T) {
	t.Parallel()

	body := `<article><p>` + strings.Repeat("Enough content to pass the length check. ", 4) + `</p></article>`

	tests := []struct {
		name string
		html string
	}{
		{name: "missing title", html: `<html><head></head><body>` + body + `</body></html>`},
		{name: "not found page", html: `<html><head><title>404 Not Found</title></head><body>` + body + `</body></html>`},
		{name: "redirect page", html: `<html><head><title>Redirect Notice</title></head><body>` + body + `</body></html>`},
		{name: "no content container", html: `<html><head><title>Page</title></head><body><div><p>` + strings.Repeat("text ", 40) + `</p></div></body></html>`},
		{name: "too little content", html: `<html><head><title>Page</title></head><body><article><p>Too short.</p></article></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := goquery.NewExtractor().Extract(tt.html, "https://docs.example.com/page.html")

			assert.Nil(t, page)
			assert.True(t, docsearch.IsSkip(err), "expected skip, got %v", err)
		})
	}

	t.Run("custom minimum content length", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Page</title></head><body><article><p>Short but accepted.</p></article></body></html>`

		page, err := goquery.NewExtractor(goquery.WithMinContentLength(5)).Extract(html, "https://docs.example.com/page.html")

		require.NoError(t, err)
		assert.Equal(t, "Page", page.Metadata.Title)
	})
}
