package docsearch

import (
	"context"
	"time"
)

// SourceFile is one HTML file of the documentation site.
type SourceFile struct {
	// Path is the file path relative to the site root, slash separated.
	Path string

	// URL is the public URL the file is served at.
	URL string
}

// SiteSource lists and reads the HTML files of a built documentation site.
type SiteSource interface {
	// Files returns every HTML file of the site in a stable order.
	Files(ctx context.Context) ([]SourceFile, error)

	// ReadFile returns the contents of one file.
	ReadFile(ctx context.Context, file SourceFile) (string, error)
}

// FileError records a file that failed to process during a build.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BuildStats summarizes an index build.
type BuildStats struct {
	FilesProcessed int         `json:"filesProcessed"`
	PagesSkipped   int         `json:"pagesSkipped"`
	SearchRecords  int         `json:"searchRecords"`
	LlmChunks      int         `json:"llmChunks"`
	PagesSplit     int         `json:"pagesSplit"`
	Errors         []FileError `json:"errors"`
}

// BuildMetadata is the diagnostic summary written next to the artifacts.
// It is not read by the query side.
type BuildMetadata struct {
	Generated  time.Time  `json:"generated"`
	BuildID    string     `json:"buildId"`
	BaseURL    string     `json:"baseUrl"`
	Stats      BuildStats `json:"stats"`
	Categories []string   `json:"categories"`
	Versions   []string   `json:"versions"`
}

// Build holds every artifact produced by one full index build.
// A build always replaces the previous artifacts wholesale.
type Build struct {
	Records  []*SearchRecord
	Chunks   []*LlmChunk
	Pages    []*Page
	Metadata BuildMetadata
}

// ArtifactWriter persists the artifacts of a build.
type ArtifactWriter interface {
	WriteBuild(ctx context.Context, build *Build) error
}
