package etl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/rulescrape"
)

// Enricher attaches the leading text of each rule's chapter documents.
type Enricher struct {
	Fetcher rulescrape.Fetcher
	Text    rulescrape.TextExtractor
	Logger  *slog.Logger

	// Pages bounds how many leading pages are read per document.
	// rulescrape.AllPages reads every page.
	Pages int
}

// documentStats counts per-rule document outcomes for logging.
type documentStats struct {
	processed int
	skipped   int
	failed    int
}

// EnrichRule returns a copy of rule with FullText set from its chapter
// documents and ChapterLinks cleared. The input rule is not modified.
// Documents that cannot be fetched or parsed are skipped and reported.
func (e *Enricher) EnrichRule(ctx context.Context, rule *rulescrape.Rule) (*rulescrape.Rule, []rulescrape.Diagnostic) {
	logger := loggerOrDiscard(e.Logger)

	out := rule.Clone()
	out.ChapterLinks = nil

	var (
		buf   strings.Builder
		diags []rulescrape.Diagnostic
		stats documentStats
	)
	for _, link := range rule.ChapterLinks {
		text, err := e.document(ctx, link)
		if err != nil {
			stats.failed++
			logger.Warn("document failed", "url", link, "err", err)
			diags = append(diags, rulescrape.Diagnostic{Scope: rulescrape.ScopeDocument, Target: link, Err: err})
			continue
		}
		if text == nil || text.PageCount == 0 {
			stats.skipped++
			logger.Debug("document has no pages", "url", link)
			continue
		}

		stats.processed++
		for i, page := range text.Pages {
			if page == "" {
				logger.Debug("page has no text", "url", link, "page", i+1)
				continue
			}
			buf.WriteString(page)
			buf.WriteByte('\n')
		}
	}
	out.FullText = strings.TrimSpace(buf.String())

	logger.Info("document stats",
		"identifier", rule.Identifier,
		"processed", stats.processed,
		"skipped", stats.skipped,
		"failed", stats.failed,
	)
	return out, diags
}

// Enrich applies EnrichRule to every rule in order.
func (e *Enricher) Enrich(ctx context.Context, rules []*rulescrape.Rule) *rulescrape.EnrichResult {
	result := &rulescrape.EnrichResult{Rules: make([]*rulescrape.Rule, 0, len(rules))}
	for _, rule := range rules {
		enriched, diags := e.EnrichRule(ctx, rule)
		result.Rules = append(result.Rules, enriched)
		result.Diagnostics = append(result.Diagnostics, diags...)
	}
	return result
}

func (e *Enricher) document(ctx context.Context, url string) (*rulescrape.PDFText, error) {
	data, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return e.Text.ExtractText(data, e.Pages)
}
