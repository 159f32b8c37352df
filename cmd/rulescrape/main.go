package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rulescrape"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Defaults seeds the flag defaults. Set before calling Run().
	Defaults rulescrape.Config
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Defaults: rulescrape.DefaultConfig(),
	}
}

// Run executes the CLI with the given arguments. With no arguments the
// full pipeline runs using the defaults.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rulescrape"),
		kong.Description("Scrape proposed regulatory rules and their chapter text to JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(m.vars()),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// vars exposes the configured defaults to flag tags.
func (m *Main) vars() kong.Vars {
	d := m.Defaults
	return kong.Vars{
		"listing_url":      d.ListingURL,
		"base_url":         d.BaseURL,
		"output_path":      d.OutputPath,
		"log_path":         d.LogPath,
		"pdf_pages":        strconv.Itoa(d.PDFPages),
		"listing_timeout":  d.ListingTimeout.String(),
		"document_timeout": d.DocumentTimeout.String(),
		"min_row_cells":    strconv.Itoa(d.MinRowCells),
		"agency":           d.Agency,
		"rps":              strconv.FormatFloat(d.RequestsPerSecond, 'f', -1, 64),
	}
}
