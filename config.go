package rulescrape

import (
	"net/url"
	"time"
)

// Default configuration values.
const (
	DefaultListingURL    = "https://www.tceq.texas.gov/rules/prop.html"
	DefaultBaseURL       = "https://www.tceq.texas.gov"
	DefaultOutputPath    = "output/proposed_rules.json"
	DefaultLogPath       = "logs/etl.log"
	DefaultPDFPages      = 2
	DefaultTimeout       = 10 * time.Second
	DefaultMinRowCells   = 3
	DefaultAgency        = "Texas Commission on Environmental Quality (TCEQ)"
	DefaultCommentMarker = "commentinput"
)

// Config holds every recognized pipeline option.
type Config struct {
	ListingURL string
	BaseURL    string
	OutputPath string
	LogPath    string

	// PDFPages is the number of leading pages read from each chapter
	// document. AllPages (0) reads every page.
	PDFPages int

	ListingTimeout  time.Duration
	DocumentTimeout time.Duration

	// MinRowCells is the minimum number of <td> cells a row needs to be
	// decoded. Values below 3 are rejected since the parser reads three cells.
	MinRowCells int

	Agency string

	// RequestsPerSecond throttles outgoing requests. Zero means unlimited.
	RequestsPerSecond float64
}

// DefaultConfig returns the configuration for the TCEQ proposed rules page.
func DefaultConfig() Config {
	return Config{
		ListingURL:      DefaultListingURL,
		BaseURL:         DefaultBaseURL,
		OutputPath:      DefaultOutputPath,
		LogPath:         DefaultLogPath,
		PDFPages:        DefaultPDFPages,
		ListingTimeout:  DefaultTimeout,
		DocumentTimeout: DefaultTimeout,
		MinRowCells:     DefaultMinRowCells,
		Agency:          DefaultAgency,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.ListingURL == "" {
		return Errorf(EINVALID, "listing URL required")
	}
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "base URL must be absolute: %q", c.BaseURL)
	}
	if c.OutputPath == "" {
		return Errorf(EINVALID, "output path required")
	}
	if c.PDFPages < 0 {
		return Errorf(EINVALID, "pdf pages must not be negative")
	}
	if c.ListingTimeout <= 0 || c.DocumentTimeout <= 0 {
		return Errorf(EINVALID, "timeouts must be positive")
	}
	if c.MinRowCells < DefaultMinRowCells {
		return Errorf(EINVALID, "min row cells must be at least %d", DefaultMinRowCells)
	}
	if c.RequestsPerSecond < 0 {
		return Errorf(EINVALID, "requests per second must not be negative")
	}
	return nil
}
