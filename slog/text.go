package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/rulescrape"
)

// Ensure LoggingTextExtractor implements rulescrape.TextExtractor.
var _ rulescrape.TextExtractor = (*LoggingTextExtractor)(nil)

// LoggingTextExtractor wraps a TextExtractor with debug logging.
type LoggingTextExtractor struct {
	next   rulescrape.TextExtractor
	logger *slog.Logger
}

// NewLoggingTextExtractor creates a new LoggingTextExtractor.
func NewLoggingTextExtractor(next rulescrape.TextExtractor, logger *slog.Logger) *LoggingTextExtractor {
	return &LoggingTextExtractor{next: next, logger: logger}
}

// ExtractText delegates to the wrapped extractor and logs page counts.
func (e *LoggingTextExtractor) ExtractText(data []byte, maxPages int) (text *rulescrape.PDFText, err error) {
	defer func(begin time.Time) {
		var total, read int
		if text != nil {
			total, read = text.PageCount, len(text.Pages)
		}
		e.logger.Debug("extract text",
			"bytes", len(data),
			"pages", total,
			"read", read,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractText(data, maxPages)
}
