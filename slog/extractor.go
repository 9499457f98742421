// Package slog provides log/slog decorators for the docsearch interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingExtractor implements docsearch.Extractor.
var _ docsearch.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Skipped pages are logged
// at debug level since most sites have many of them.
type LoggingExtractor struct {
	next   docsearch.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docsearch.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html, pageURL string) (page *docsearch.Page, err error) {
	defer func(begin time.Time) {
		if docsearch.IsSkip(err) {
			e.logger.Debug("extract skipped",
				"url", pageURL,
				"reason", docsearch.ErrorMessage(err),
			)
			return
		}
		sections := 0
		if page != nil {
			sections = len(page.Sections)
		}
		e.logger.Info("extract",
			"url", pageURL,
			"bytes", len(html),
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
