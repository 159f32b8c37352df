package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rulescrape"
)

// Ensure LoggingRuleWriter implements rulescrape.RuleWriter.
var _ rulescrape.RuleWriter = (*LoggingRuleWriter)(nil)

// LoggingRuleWriter wraps a RuleWriter with logging.
type LoggingRuleWriter struct {
	next   rulescrape.RuleWriter
	logger *slog.Logger
}

// NewLoggingRuleWriter creates a new LoggingRuleWriter.
func NewLoggingRuleWriter(next rulescrape.RuleWriter, logger *slog.Logger) *LoggingRuleWriter {
	return &LoggingRuleWriter{next: next, logger: logger}
}

// WriteRules delegates to the wrapped writer and logs the operation.
func (w *LoggingRuleWriter) WriteRules(ctx context.Context, rules []*rulescrape.Rule) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write rules",
			"count", len(rules),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRules(ctx, rules)
}
