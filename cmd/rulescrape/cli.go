package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/rulescrape"
)

// Dependencies holds the I/O handles shared by every command.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" default:"withargs" help:"Scrape the listing page, enrich rules and save them (default)"`
	Inspect InspectCmd `cmd:"" help:"Summarize a saved rules file"`
}

// RunCmd is the "run" subcommand. Every flag can also be set through its
// RULESCRAPE_* environment variable.
type RunCmd struct {
	ListingURL        string        `name:"listing-url" default:"${listing_url}" env:"RULESCRAPE_LISTING_URL" help:"Proposed rules listing page"`
	BaseURL           string        `name:"base-url" default:"${base_url}" env:"RULESCRAPE_BASE_URL" help:"Base URL relative links resolve against"`
	Output            string        `short:"o" default:"${output_path}" env:"RULESCRAPE_OUTPUT" help:"Output JSON file"`
	LogFile           string        `name:"log-file" default:"${log_path}" env:"RULESCRAPE_LOG_FILE" help:"Log file, rotated by size (empty disables)"`
	PDFPages          int           `name:"pdf-pages" default:"${pdf_pages}" env:"RULESCRAPE_PDF_PAGES" help:"Leading pages read per chapter document (0 reads all)"`
	ListingTimeout    time.Duration `name:"listing-timeout" default:"${listing_timeout}" env:"RULESCRAPE_LISTING_TIMEOUT" help:"Timeout for the listing page request"`
	DocumentTimeout   time.Duration `name:"document-timeout" default:"${document_timeout}" env:"RULESCRAPE_DOCUMENT_TIMEOUT" help:"Timeout per chapter document request"`
	MinRowCells       int           `name:"min-row-cells" default:"${min_row_cells}" env:"RULESCRAPE_MIN_ROW_CELLS" help:"Minimum cells a table row needs"`
	Agency            string        `default:"${agency}" env:"RULESCRAPE_AGENCY" help:"Agency name stamped on every rule"`
	RequestsPerSecond float64       `name:"rps" default:"${rps}" env:"RULESCRAPE_RPS" help:"Request rate limit (0 disables)"`
	Verbose           bool          `short:"v" env:"RULESCRAPE_VERBOSE" help:"Log at debug level"`
}

// Config returns the pipeline configuration described by the flags.
func (c *RunCmd) Config() rulescrape.Config {
	return rulescrape.Config{
		ListingURL:        c.ListingURL,
		BaseURL:           c.BaseURL,
		OutputPath:        c.Output,
		LogPath:           c.LogFile,
		PDFPages:          c.PDFPages,
		ListingTimeout:    c.ListingTimeout,
		DocumentTimeout:   c.DocumentTimeout,
		MinRowCells:       c.MinRowCells,
		Agency:            c.Agency,
		RequestsPerSecond: c.RequestsPerSecond,
	}
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	Path string `arg:"" optional:"" default:"${output_path}" help:"Rules file to read"`
	Full bool   `help:"Show full text for each rule"`
}
