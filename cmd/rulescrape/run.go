package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/rulescrape"
	"github.com/fwojciec/rulescrape/dateparser"
	"github.com/fwojciec/rulescrape/etl"
	"github.com/fwojciec/rulescrape/fs"
	"github.com/fwojciec/rulescrape/goquery"
	rshttp "github.com/fwojciec/rulescrape/http"
	"github.com/fwojciec/rulescrape/pdfcpu"
	rsslog "github.com/fwojciec/rulescrape/slog"
)

// Run executes the pipeline.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := c.Config()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rulescrape.ErrorMessage(err))
		return err
	}

	logger, closeLog, err := openLogger(deps.Stderr, cfg.LogPath, c.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	pipeline := newPipeline(cfg, logger)
	report := pipeline.Run(deps.Ctx)

	fmt.Fprintf(deps.Stdout, "Extracted %d rules (%d with full text)\n", report.Extracted, report.WithText)
	if report.Written {
		fmt.Fprintf(deps.Stdout, "Saved to %s\n", cfg.OutputPath)
	} else {
		fmt.Fprintln(deps.Stdout, "Nothing written")
	}
	if n := len(report.Diagnostics); n > 0 {
		fmt.Fprintf(deps.Stdout, "%d problems skipped (see log)\n", n)
	}
	fmt.Fprintf(deps.Stdout, "Done in %s\n", report.Elapsed.Round(time.Millisecond))

	return nil
}

// newPipeline wires the production pipeline for cfg.
func newPipeline(cfg rulescrape.Config, logger *slog.Logger) *etl.Pipeline {
	limiter := rshttp.NewHostLimiter(cfg.RequestsPerSecond)
	listing := rshttp.NewFetcher(
		rshttp.WithTimeout(cfg.ListingTimeout),
		rshttp.WithLimiter(limiter),
	)
	documents := rshttp.NewFetcher(
		rshttp.WithTimeout(cfg.DocumentTimeout),
		rshttp.WithLimiter(limiter),
	)
	parser := goquery.NewRuleParser(cfg.BaseURL, dateparser.New(),
		goquery.WithMinRowCells(cfg.MinRowCells),
		goquery.WithAgency(cfg.Agency),
	)

	return &etl.Pipeline{
		Extractor: &etl.Extractor{
			Fetcher:    rsslog.NewLoggingFetcher(listing, logger),
			Parser:     parser,
			Logger:     logger,
			ListingURL: cfg.ListingURL,
		},
		Enricher: &etl.Enricher{
			Fetcher: rsslog.NewLoggingFetcher(documents, logger),
			Text:    rsslog.NewLoggingTextExtractor(pdfcpu.NewExtractor(), logger),
			Logger:  logger,
			Pages:   cfg.PDFPages,
		},
		Writer:     rsslog.NewLoggingRuleWriter(fs.NewRuleWriter(cfg.OutputPath), logger),
		Logger:     logger,
		OutputPath: cfg.OutputPath,
	}
}
