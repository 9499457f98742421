// Package fs provides file-based access to a built documentation site and
// to the artifacts indexed from it.
package fs

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Ensure Site implements docsearch.SiteSource at compile time.
var _ docsearch.SiteSource = (*Site)(nil)

// Site is a directory of static HTML files served under a base URL.
type Site struct {
	root    string
	baseURL string
}

// NewSite creates a Site rooted at dir whose files are served under baseURL.
func NewSite(dir, baseURL string) *Site {
	return &Site{
		root:    dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Files returns every .html file under the site root in lexical path order.
func (s *Site) Files(ctx context.Context) ([]docsearch.SourceFile, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "site directory %s: %v", s.root, err)
	}
	if !info.IsDir() {
		return nil, docsearch.Errorf(docsearch.EINVALID, "site path %s is not a directory", s.root)
	}

	var files []docsearch.SourceFile
	err = filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		files = append(files, docsearch.SourceFile{Path: rel, URL: s.URLFor(rel)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ReadFile returns the contents of file.
func (s *Site) ReadFile(ctx context.Context, file docsearch.SourceFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(file.Path)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// URLFor maps a slash-separated path relative to the site root to its public
// URL. Directory index files map to the directory URL.
func (s *Site) URLFor(rel string) string {
	switch {
	case rel == "index.html":
		return s.baseURL + "/"
	case strings.HasSuffix(rel, "/index.html"):
		return s.baseURL + "/" + strings.TrimSuffix(rel, "index.html")
	default:
		return s.baseURL + "/" + rel
	}
}
