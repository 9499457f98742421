package index_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/fs"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/fwojciec/docsearch/index"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceOf(files ...docsearch.SourceFile) *mock.SiteSource {
	return &mock.SiteSource{
		FilesFn: func(_ context.Context) ([]docsearch.SourceFile, error) {
			return files, nil
		},
		ReadFileFn: func(_ context.Context, file docsearch.SourceFile) (string, error) {
			return "<html>" + file.Path + "</html>", nil
		},
	}
}

func file(path string) docsearch.SourceFile {
	return docsearch.SourceFile{Path: path, URL: "https://docs.example.com/" + path}
}

func pageFor(url string) *docsearch.Page {
	return &docsearch.Page{
		URL: url,
		Metadata: docsearch.PageMetadata{
			Title:    "Page " + url,
			Category: "Modules",
			Version:  "modules",
		},
		Sections: []docsearch.Section{
			{Heading: "Intro", HeadingLevel: 2, Anchor: "intro", Content: []string{"Some introductory text."}},
		},
		ContentHTML: "<article>" + url + "</article>",
	}
}

func fixedIndexer(source docsearch.SiteSource, extractor docsearch.Extractor) *index.Indexer {
	return &index.Indexer{
		Source:    source,
		Extractor: extractor,
		BaseURL:   "https://docs.example.com",
		Now:       func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
		NewID:     func() string { return "build-1" },
	}
}

func TestIndexer_Build(t *testing.T) {
	t.Parallel()

	t.Run("keeps file order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		var files []docsearch.SourceFile
		for i := range 6 {
			files = append(files, file(fmt.Sprintf("p%d.html", i)))
		}
		extractor := &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*docsearch.Page, error) {
				// Earlier files finish last.
				n := int(pageURL[len(pageURL)-len("0.html")] - '0')
				time.Sleep(time.Duration(6-n) * time.Millisecond)
				return pageFor(pageURL), nil
			},
		}
		ix := fixedIndexer(sourceOf(files...), extractor)
		ix.Concurrency = 6

		build, err := ix.Build(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, build.Records, 6)
		for i, record := range build.Records {
			assert.Equal(t, files[i].URL+"#intro", record.URL)
		}
		require.Len(t, build.Pages, 6)
		assert.Equal(t, files[0].URL, build.Pages[0].URL)
	})

	t.Run("counts skips and records failures without aborting", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*docsearch.Page, error) {
				switch {
				case strings.HasSuffix(pageURL, "404.html"):
					return nil, docsearch.Errorf(docsearch.ESKIP, "placeholder page")
				case strings.HasSuffix(pageURL, "broken.html"):
					return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML")
				}
				return pageFor(pageURL), nil
			},
		}
		ix := fixedIndexer(sourceOf(file("a.html"), file("404.html"), file("broken.html"), file("b.html")), extractor)

		build, err := ix.Build(context.Background(), nil)

		require.NoError(t, err)
		stats := build.Metadata.Stats
		assert.Equal(t, 4, stats.FilesProcessed)
		assert.Equal(t, 1, stats.PagesSkipped)
		assert.Equal(t, 2, stats.SearchRecords)
		assert.Equal(t, 2, stats.LlmChunks)
		require.Len(t, stats.Errors, 1)
		assert.Equal(t, "broken.html", stats.Errors[0].File)
		assert.Contains(t, stats.Errors[0].Error, "failed to parse HTML")
	})

	t.Run("records read failures per file", func(t *testing.T) {
		t.Parallel()

		source := sourceOf(file("a.html"), file("gone.html"))
		source.ReadFileFn = func(_ context.Context, f docsearch.SourceFile) (string, error) {
			if f.Path == "gone.html" {
				return "", os.ErrNotExist
			}
			return "<html></html>", nil
		}
		ix := fixedIndexer(source, &mock.Extractor{
			ExtractFn: func(_, pageURL string) (*docsearch.Page, error) { return pageFor(pageURL), nil },
		})

		build, err := ix.Build(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, build.Metadata.Stats.Errors, 1)
		assert.Equal(t, "gone.html", build.Metadata.Stats.Errors[0].File)
		assert.Len(t, build.Records, 1)
	})

	t.Run("skips duplicate page urls", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_, _ string) (*docsearch.Page, error) {
				return pageFor("https://docs.example.com/same.html"), nil
			},
		}
		ix := fixedIndexer(sourceOf(file("a.html"), file("b.html")), extractor)

		build, err := ix.Build(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, build.Records, 1)
		assert.Equal(t, 1, build.Metadata.Stats.PagesSkipped)
	})

	t.Run("converts pages to markdown", func(t *testing.T) {
		t.Parallel()

		ix := fixedIndexer(sourceOf(file("a.html"), file("b.html")), &mock.Extractor{
			ExtractFn: func(_, pageURL string) (*docsearch.Page, error) { return pageFor(pageURL), nil },
		})
		ix.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				if strings.Contains(html, "b.html") {
					return "", errors.New("converter exploded")
				}
				return "# Converted", nil
			},
		}

		build, err := ix.Build(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, build.Pages, 2)
		assert.Equal(t, "# Converted", build.Pages[0].Markdown)
		assert.Empty(t, build.Pages[1].Markdown)
		require.Len(t, build.Metadata.Stats.Errors, 1)
		assert.Contains(t, build.Metadata.Stats.Errors[0].Error, "converter exploded")
		assert.Len(t, build.Records, 2)
	})

	t.Run("fills build metadata", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_, pageURL string) (*docsearch.Page, error) {
				page := pageFor(pageURL)
				if strings.Contains(pageURL, "big") {
					page.Metadata.Category = "Magnolia 6.2"
					page.Metadata.Version = "6.2"
					page.Sections = []docsearch.Section{
						{Heading: "One", Content: []string{strings.Repeat("word ", 1000)}},
						{Heading: "Two", Content: []string{strings.Repeat("word ", 1000)}},
					}
				}
				return page, nil
			},
		}
		ix := fixedIndexer(sourceOf(file("small.html"), file("big.html")), extractor)

		build, err := ix.Build(context.Background(), nil)

		require.NoError(t, err)
		meta := build.Metadata
		assert.Equal(t, "build-1", meta.BuildID)
		assert.Equal(t, "https://docs.example.com", meta.BaseURL)
		assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), meta.Generated)
		assert.Equal(t, 1, meta.Stats.PagesSplit)
		assert.Equal(t, 3, meta.Stats.LlmChunks)
		assert.Equal(t, []string{"Magnolia 6.2", "Modules"}, meta.Categories)
		assert.Equal(t, []string{"6.2", "modules"}, meta.Versions)
		assert.Empty(t, meta.Stats.Errors)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_, pageURL string) (*docsearch.Page, error) {
				if strings.HasSuffix(pageURL, "skip.html") {
					return nil, docsearch.Errorf(docsearch.ESKIP, "skip")
				}
				return pageFor(pageURL), nil
			},
		}
		ix := fixedIndexer(sourceOf(file("a.html"), file("skip.html")), extractor)

		var mu sync.Mutex
		counts := map[index.ProgressType]int{}
		_, err := ix.Build(context.Background(), func(e index.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			counts[e.Type]++
		})

		require.NoError(t, err)
		assert.Equal(t, 1, counts[index.ProgressStarted])
		assert.Equal(t, 1, counts[index.ProgressIndexed])
		assert.Equal(t, 1, counts[index.ProgressSkipped])
		assert.Equal(t, 1, counts[index.ProgressFinished])
	})

	t.Run("fails when files cannot be listed", func(t *testing.T) {
		t.Parallel()

		source := &mock.SiteSource{
			FilesFn: func(_ context.Context) ([]docsearch.SourceFile, error) {
				return nil, docsearch.Errorf(docsearch.ENOTFOUND, "site directory missing")
			},
		}

		_, err := fixedIndexer(source, &mock.Extractor{}).Build(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	})

	t.Run("fails on cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ix := fixedIndexer(sourceOf(file("a.html")), &mock.Extractor{
			ExtractFn: func(_, pageURL string) (*docsearch.Page, error) { return pageFor(pageURL), nil },
		})

		_, err := ix.Build(ctx, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestIndexer_Build_Site(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	body := strings.Repeat("Magnolia lets you install modules with Maven. ", 5)
	pages := map[string]string{
		"product-docs/6.2/install.html": `<html><head><title>Install :: Docs</title></head><body>
			<article class="doc"><h1 class="page">Install</h1><p>` + body + `</p>
			<h2 id="maven">Maven</h2><p>Add the dependency to your pom.xml file.</p></article></body></html>`,
		"404.html": `<html><head><title>404 Page Not Found</title></head><body><article>` + body + `</article></body></html>`,
	}
	for rel, html := range pages {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(html), 0644))
	}

	ix := &index.Indexer{
		Source:    fs.NewSite(root, "https://docs.magnolia-cms.com"),
		Extractor: goquery.NewExtractor(),
		BaseURL:   "https://docs.magnolia-cms.com",
	}

	build, err := ix.Build(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, build.Metadata.Stats.FilesProcessed)
	assert.Equal(t, 1, build.Metadata.Stats.PagesSkipped)
	require.Len(t, build.Records, 2)
	assert.Equal(t, "https://docs.magnolia-cms.com/product-docs/6.2/install.html#install", build.Records[0].URL)
	assert.Equal(t, "https://docs.magnolia-cms.com/product-docs/6.2/install.html#maven", build.Records[1].URL)
	assert.Equal(t, "Magnolia 6.2", build.Records[1].Category)
	require.Len(t, build.Chunks, 1)
	assert.Equal(t, "Magnolia 6.2", build.Chunks[0].Category)
	assert.NotEmpty(t, build.Metadata.BuildID)
}
