package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsearch"
	"gopkg.in/yaml.v3"
)

// Artifact file names.
const (
	SearchIndexFile    = "search-index.json"
	SearchIndexMinFile = "search-index.min.json"
	ChunksFile         = "llm-chunks.json"
	MetadataFile       = "metadata.json"
	PagesDir           = "pages"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/docs/api/users.html → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docsearch.Errorf(docsearch.EINVALID, "invalid page URL: %v", err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	switch {
	case path == "":
		path = "index.md"
	case strings.HasSuffix(path, "/"):
		path += "index.md"
	default:
		path = strings.TrimSuffix(path, ".html") + ".md"
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", docsearch.Errorf(docsearch.EINVALID, "path traversal in URL %q", rawURL)
	}
	return clean, nil
}

type frontmatter struct {
	Source      string   `yaml:"source"`
	Title       string   `yaml:"title"`
	Category    string   `yaml:"category"`
	Version     string   `yaml:"version"`
	Breadcrumb  []string `yaml:"breadcrumb,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// FormatPage renders a page's markdown with YAML frontmatter.
func FormatPage(page *docsearch.Page) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		Source:      page.URL,
		Title:       page.Metadata.Title,
		Category:    page.Metadata.Category,
		Version:     page.Metadata.Version,
		Breadcrumb:  page.Metadata.Breadcrumb,
		Description: page.Metadata.Description,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(page.Markdown)
	b.WriteString("\n")
	return b.String(), nil
}

// Ensure ArtifactWriter implements docsearch.ArtifactWriter at compile time.
var _ docsearch.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter writes build artifacts with atomic replace semantics.
// Artifacts are written to baseDir/name.tmp, then moved over baseDir/name
// once every file was written.
type ArtifactWriter struct {
	baseDir string
	name    string
}

// NewArtifactWriter creates an ArtifactWriter for the output directory baseDir/name.
func NewArtifactWriter(baseDir, name string) *ArtifactWriter {
	return &ArtifactWriter{
		baseDir: baseDir,
		name:    name,
	}
}

// Dir returns the final output directory.
func (w *ArtifactWriter) Dir() string {
	return filepath.Join(w.baseDir, w.name)
}

func (w *ArtifactWriter) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

// WriteBuild replaces the output directory with the artifacts of build.
// The previous output is left untouched if any write fails.
func (w *ArtifactWriter) WriteBuild(ctx context.Context, build *docsearch.Build) error {
	if err := os.RemoveAll(w.tempDir()); err != nil {
		return err
	}
	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}

	if err := w.writeArtifacts(ctx, build); err != nil {
		_ = w.abort()
		return err
	}

	return w.commit()
}

func (w *ArtifactWriter) writeArtifacts(ctx context.Context, build *docsearch.Build) error {
	records := build.Records
	if records == nil {
		records = []*docsearch.SearchRecord{}
	}
	chunks := build.Chunks
	if chunks == nil {
		chunks = []*docsearch.LlmChunk{}
	}

	if err := w.writeJSON(SearchIndexFile, records, true); err != nil {
		return err
	}
	if err := w.writeJSON(SearchIndexMinFile, records, false); err != nil {
		return err
	}
	if err := w.writeJSON(ChunksFile, chunks, false); err != nil {
		return err
	}
	if err := w.writeJSON(MetadataFile, build.Metadata, true); err != nil {
		return err
	}

	for _, page := range build.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if page.Markdown == "" {
			continue
		}
		if err := w.writePage(page); err != nil {
			return err
		}
	}

	return nil
}

func (w *ArtifactWriter) writeJSON(name string, v any, indent bool) error {
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.tempDir(), name), data, 0644)
}

func (w *ArtifactWriter) writePage(page *docsearch.Page) error {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.tempDir(), PagesDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatPage(page)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

func (w *ArtifactWriter) commit() error {
	if err := os.RemoveAll(w.Dir()); err != nil {
		return err
	}
	return os.Rename(w.tempDir(), w.Dir())
}

func (w *ArtifactWriter) abort() error {
	return os.RemoveAll(w.tempDir())
}
