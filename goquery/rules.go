package goquery

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rulescrape"
)

// DefaultTableSelector matches the striped table the listing page renders
// its rules in.
const DefaultTableSelector = "table.table.table-striped"

// Ensure RuleParser implements rulescrape.RuleParser at compile time.
var _ rulescrape.RuleParser = (*RuleParser)(nil)

// annotation maps a label found in a row header list item to the rule
// field its date belongs in. The first matching label wins.
type annotation struct {
	label string
	set   func(r *rulescrape.Rule, date *string)
}

// The listing labels the proposal date "Approval Date".
var annotations = []annotation{
	{label: "Approval Date", set: func(r *rulescrape.Rule, d *string) { r.ProposedDate = d }},
	{label: "Comments Due", set: func(r *rulescrape.Rule, d *string) { r.CommentsDue = d }},
}

// RuleParser decodes the proposed rules table into rules.
//
// A row is decoded only when it carries a th[scope=row] header and at least
// MinRowCells data cells. The first cell holds the identifier, the second
// the title and description, the third the document links. The header's
// list items carry the dates and the comment submission link.
type RuleParser struct {
	baseURL       string
	dates         rulescrape.DateParser
	minRowCells   int
	agency        string
	tableSelector string
	commentMarker string
}

// Option configures a RuleParser.
type Option func(*RuleParser)

// WithMinRowCells sets the minimum number of data cells a row needs.
func WithMinRowCells(n int) Option {
	return func(p *RuleParser) {
		p.minRowCells = n
	}
}

// WithAgency sets the agency label stamped on every rule.
func WithAgency(agency string) Option {
	return func(p *RuleParser) {
		p.agency = agency
	}
}

// WithTableSelector overrides the CSS selector locating the rules table.
func WithTableSelector(selector string) Option {
	return func(p *RuleParser) {
		p.tableSelector = selector
	}
}

// WithCommentMarker sets the substring identifying comment submission links.
func WithCommentMarker(marker string) Option {
	return func(p *RuleParser) {
		p.commentMarker = marker
	}
}

// NewRuleParser creates a RuleParser resolving relative links against
// baseURL and normalizing dates with dates.
func NewRuleParser(baseURL string, dates rulescrape.DateParser, opts ...Option) *RuleParser {
	p := &RuleParser{
		baseURL:       baseURL,
		dates:         dates,
		minRowCells:   rulescrape.DefaultMinRowCells,
		agency:        rulescrape.DefaultAgency,
		tableSelector: DefaultTableSelector,
		commentMarker: rulescrape.DefaultCommentMarker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseRules parses listing page HTML into rules.
func (p *RuleParser) ParseRules(html []byte) (*rulescrape.ExtractResult, error) {
	base, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, rulescrape.Errorf(rulescrape.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, rulescrape.Errorf(rulescrape.EINVALID, "failed to parse HTML: %v", err)
	}

	table := doc.Find(p.tableSelector).First()
	if table.Length() == 0 {
		return nil, rulescrape.Errorf(rulescrape.ENOTFOUND, "rules table %q not found", p.tableSelector)
	}

	rows := table.Find("tbody").First().Find("tr")
	if rows.Length() == 0 {
		return nil, rulescrape.Errorf(rulescrape.ENOTFOUND, "no rows found in rules table body")
	}

	result := &rulescrape.ExtractResult{Rules: []*rulescrape.Rule{}}
	rows.Each(func(_ int, row *goquery.Selection) {
		rule, diags, err := p.parseRow(base, row)
		result.Diagnostics = append(result.Diagnostics, diags...)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, rulescrape.Diagnostic{
				Scope:  rulescrape.ScopeRow,
				Target: snippet(strippedText(row)),
				Err:    err,
			})
			return
		}
		if rule != nil {
			result.Rules = append(result.Rules, rule)
		}
	})

	return result, nil
}

// parseRow decodes a single row. It returns a nil rule for rows that do
// not have the expected shape.
func (p *RuleParser) parseRow(base *url.URL, row *goquery.Selection) (*rulescrape.Rule, []rulescrape.Diagnostic, error) {
	cells := row.Find("td")
	header := row.Find(`th[scope="row"]`).First()
	if header.Length() == 0 || cells.Length() < p.minRowCells {
		return nil, nil, nil
	}

	titleCell := cells.Eq(1)
	title := strippedText(titleCell)
	if span := titleCell.Find("span").First(); span.Length() > 0 {
		title = strippedText(span)
	}

	rule := &rulescrape.Rule{
		Title:        title,
		Identifier:   strippedText(cells.Eq(0)),
		Description:  textAfterBreak(titleCell),
		Chapters:     []string{},
		ChapterLinks: []string{},
		Sources:      []string{},
		Agency:       p.agency,
	}

	diags := p.parseAnnotations(base, header, rule)

	if err := parseLinks(base, cells.Eq(2), rule); err != nil {
		return nil, diags, err
	}

	return rule, diags, nil
}

// parseAnnotations fills dates and the comment link from the header's list
// items. A date that fails to parse is reported and left unset.
func (p *RuleParser) parseAnnotations(base *url.URL, header *goquery.Selection, rule *rulescrape.Rule) []rulescrape.Diagnostic {
	var diags []rulescrape.Diagnostic

	header.Find("li").Each(func(_ int, item *goquery.Selection) {
		text := strippedText(item)

		if a, ok := matchAnnotation(text); ok {
			date, err := p.dates.ParseDate(valueAfterColon(text))
			if err != nil {
				diags = append(diags, rulescrape.Diagnostic{
					Scope:  rulescrape.ScopeField,
					Target: text,
					Err:    err,
				})
				return
			}
			a.set(rule, &date)
			return
		}

		href, ok := item.Find("a[href]").First().Attr("href")
		if !ok || !strings.Contains(href, p.commentMarker) {
			return
		}
		link, err := resolveLink(base, href)
		if err != nil {
			diags = append(diags, rulescrape.Diagnostic{
				Scope:  rulescrape.ScopeField,
				Target: href,
				Err:    err,
			})
			return
		}
		rule.CommentLink = &link
	})

	return diags
}

func matchAnnotation(text string) (annotation, bool) {
	for _, a := range annotations {
		if strings.Contains(text, a.label) {
			return a, true
		}
	}
	return annotation{}, false
}

// valueAfterColon returns the trimmed text following the first colon, or
// the whole text when there is none.
func valueAfterColon(text string) string {
	if _, after, found := strings.Cut(text, ":"); found {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(text)
}

// parseLinks collects every link in the cell into Sources, and chapter
// links additionally into Chapters and ChapterLinks. Document order and
// duplicates are kept.
func parseLinks(base *url.URL, cell *goquery.Selection, rule *rulescrape.Rule) error {
	anchors := cell.Find("a[href]")
	for i := range anchors.Length() {
		a := anchors.Eq(i)
		href, _ := a.Attr("href")

		link, err := resolveLink(base, href)
		if err != nil {
			return err
		}
		rule.Sources = append(rule.Sources, link)

		text := strippedText(a)
		if strings.HasPrefix(text, rulescrape.ChapterPrefix) {
			rule.Chapters = append(rule.Chapters, text)
			rule.ChapterLinks = append(rule.ChapterLinks, link)
		}
	}
	return nil
}

// resolveLink resolves href against base into an absolute URL.
func resolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// snippet shortens text for diagnostics.
func snippet(text string) string {
	const limit = 80
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + "..."
}
