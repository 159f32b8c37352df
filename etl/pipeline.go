package etl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rulescrape"
)

// Report summarizes a pipeline run.
type Report struct {
	Extracted   int
	WithText    int
	Written     bool
	Elapsed     time.Duration
	Diagnostics []rulescrape.Diagnostic
}

// Pipeline runs extraction, enrichment and persistence in sequence.
type Pipeline struct {
	Extractor *Extractor
	Enricher  *Enricher
	Writer    rulescrape.RuleWriter
	Logger    *slog.Logger

	// OutputPath is reported in logs only; Writer decides where rules go.
	OutputPath string
}

// Run executes the pipeline to completion. Nothing is written when no rules
// were extracted; otherwise rules are always written, even without text.
func (p *Pipeline) Run(ctx context.Context) *Report {
	logger := loggerOrDiscard(p.Logger)
	begin := time.Now()
	report := &Report{}

	logger.Info("extracting rules")
	extracted := p.Extractor.Extract(ctx)
	report.Extracted = len(extracted.Rules)
	report.Diagnostics = append(report.Diagnostics, extracted.Diagnostics...)
	if len(extracted.Rules) == 0 {
		logger.Info("no rules extracted, exiting")
		report.Elapsed = time.Since(begin)
		return report
	}

	logger.Info("enriching rules", "count", len(extracted.Rules))
	enriched := p.Enricher.Enrich(ctx, extracted.Rules)
	report.Diagnostics = append(report.Diagnostics, enriched.Diagnostics...)
	report.WithText = rulescrape.CountWithFullText(enriched.Rules)
	if report.WithText == 0 {
		logger.Warn("no rules contain full text")
	}

	logger.Info("saving rules", "path", p.OutputPath)
	if err := Persist(ctx, p.Writer, enriched.Rules, logger); err != nil {
		report.Diagnostics = append(report.Diagnostics, rulescrape.Diagnostic{
			Scope:  rulescrape.ScopeOutput,
			Target: p.OutputPath,
			Err:    err,
		})
	} else {
		report.Written = true
	}

	report.Elapsed = time.Since(begin)
	logger.Info("done", "elapsed", report.Elapsed)
	return report
}

// Persist writes rules with w and logs any failure. The error is returned
// for callers that want it; the pipeline itself carries on regardless.
func Persist(ctx context.Context, w rulescrape.RuleWriter, rules []*rulescrape.Rule, logger *slog.Logger) error {
	if err := w.WriteRules(ctx, rules); err != nil {
		loggerOrDiscard(logger).Error("save rules", "err", err)
		return err
	}
	return nil
}
