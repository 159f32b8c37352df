// Package etl runs the rule scraping pipeline: extract rules from the
// listing page, enrich them with chapter document text, and persist them.
//
// Each stage absorbs failures at its own scope. A problem with the listing
// page or its table yields an empty result; problems with a single row,
// field, or document skip just that item. Every absorbed failure is logged
// and returned as a rulescrape.Diagnostic.
package etl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/rulescrape"
)

// Extractor fetches the listing page and decodes it into rules.
type Extractor struct {
	Fetcher    rulescrape.Fetcher
	Parser     rulescrape.RuleParser
	Logger     *slog.Logger
	ListingURL string
}

// Extract returns the rules found on the listing page. It never fails:
// a page or table level problem produces an empty result carrying a
// single diagnostic.
func (e *Extractor) Extract(ctx context.Context) *rulescrape.ExtractResult {
	logger := loggerOrDiscard(e.Logger)

	body, err := e.Fetcher.Fetch(ctx, e.ListingURL)
	if err != nil {
		logger.Error("fetch listing page", "url", e.ListingURL, "err", err)
		return emptyExtract(rulescrape.ScopePage, e.ListingURL, err)
	}

	result, err := e.Parser.ParseRules(body)
	if err != nil {
		if rulescrape.ErrorCode(err) == rulescrape.ENOTFOUND {
			logger.Warn("rules table not found", "url", e.ListingURL, "err", err)
			return emptyExtract(rulescrape.ScopeTable, e.ListingURL, err)
		}
		logger.Error("parse listing page", "url", e.ListingURL, "err", err)
		return emptyExtract(rulescrape.ScopePage, e.ListingURL, err)
	}

	for _, d := range result.Diagnostics {
		logger.Warn("skipped "+string(d.Scope), "target", d.Target, "err", d.Err)
	}
	if result.Rules == nil {
		result.Rules = []*rulescrape.Rule{}
	}
	for i, r := range result.Rules {
		if err := r.Validate(); err != nil {
			logger.Warn("keeping incomplete rule", "index", i, "sources", len(r.Sources), "err", err)
		}
	}
	logger.Info("extracted rules", "count", len(result.Rules), "skipped", len(result.Diagnostics))
	return result
}

func emptyExtract(scope rulescrape.Scope, target string, err error) *rulescrape.ExtractResult {
	return &rulescrape.ExtractResult{
		Rules:       []*rulescrape.Rule{},
		Diagnostics: []rulescrape.Diagnostic{{Scope: scope, Target: target, Err: err}},
	}
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
