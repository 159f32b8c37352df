// Package dateparser implements rulescrape.DateParser on top of
// go-dateparser, which understands the loosely written dates found on
// agency listing pages ("Jan. 5, 2024", "February 12, 2024 at noon").
package dateparser

import (
	"strings"
	"time"

	"github.com/fwojciec/rulescrape"
	dps "github.com/markusmobius/go-dateparser"
)

// Layout is the normalized form of parsed dates.
const Layout = "2006-01-02 15:04:05"

// Ensure Parser implements rulescrape.DateParser at compile time.
var _ rulescrape.DateParser = (*Parser)(nil)

// Parser normalizes free-form date text.
type Parser struct {
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithCurrentTime pins the reference time used for relative expressions
// such as "tomorrow", making results reproducible.
func WithCurrentTime(t time.Time) Option {
	return func(p *Parser) {
		p.now = func() time.Time { return t }
	}
}

// New creates a new Parser.
func New(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseDate parses text and returns it formatted with Layout.
// Returns EINVALID when the text holds no recognizable date.
func (p *Parser) ParseDate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", rulescrape.Errorf(rulescrape.EINVALID, "empty date")
	}

	cfg := &dps.Configuration{CurrentTime: p.now()}
	dt, err := dps.Parse(cfg, text)
	if err != nil {
		return "", rulescrape.Errorf(rulescrape.EINVALID, "unparseable date %q: %v", text, err)
	}
	if dt.Time.IsZero() {
		return "", rulescrape.Errorf(rulescrape.EINVALID, "unparseable date %q", text)
	}

	return dt.Time.Format(Layout), nil
}
