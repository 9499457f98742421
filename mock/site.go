package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.SiteSource = (*SiteSource)(nil)

// SiteSource is a mock implementation of docsearch.SiteSource.
type SiteSource struct {
	FilesFn    func(ctx context.Context) ([]docsearch.SourceFile, error)
	ReadFileFn func(ctx context.Context, file docsearch.SourceFile) (string, error)
}

func (s *SiteSource) Files(ctx context.Context) ([]docsearch.SourceFile, error) {
	return s.FilesFn(ctx)
}

func (s *SiteSource) ReadFile(ctx context.Context, file docsearch.SourceFile) (string, error) {
	return s.ReadFileFn(ctx, file)
}

var _ docsearch.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of docsearch.ArtifactWriter.
type ArtifactWriter struct {
	WriteBuildFn func(ctx context.Context, build *docsearch.Build) error
}

func (w *ArtifactWriter) WriteBuild(ctx context.Context, build *docsearch.Build) error {
	return w.WriteBuildFn(ctx, build)
}
