package rulescrape

import (
	"context"
	"slices"
)

// ChapterPrefix marks link text that names a rule chapter document.
const ChapterPrefix = "Ch."

// Rule represents one proposed rule scraped from the listing page.
//
// ChapterLinks only lives between extraction and enrichment: the enricher
// consumes it and leaves it nil, so it is absent from persisted output.
type Rule struct {
	Title        string   `json:"title"`
	Identifier   string   `json:"identifier"`
	ProposedDate *string  `json:"proposed_date"`
	CommentsDue  *string  `json:"comments_due"`
	Description  string   `json:"description"`
	Chapters     []string `json:"chapters"`
	ChapterLinks []string `json:"chapter_links,omitempty"`
	Sources      []string `json:"sources"`
	CommentLink  *string  `json:"comment_link"`
	Agency       string   `json:"agency"`
	FullText     string   `json:"full_text"`
}

// Validate returns an error if the rule is missing the fields that identify it.
func (r *Rule) Validate() error {
	if r.Title == "" && r.Identifier == "" {
		return Errorf(EINVALID, "rule title or identifier required")
	}
	return nil
}

// HasFullText reports whether enrichment attached any document text.
func (r *Rule) HasFullText() bool {
	return r.FullText != ""
}

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() *Rule {
	other := *r
	other.ProposedDate = cloneString(r.ProposedDate)
	other.CommentsDue = cloneString(r.CommentsDue)
	other.CommentLink = cloneString(r.CommentLink)
	other.Chapters = slices.Clone(r.Chapters)
	other.ChapterLinks = slices.Clone(r.ChapterLinks)
	other.Sources = slices.Clone(r.Sources)
	return &other
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// CountWithFullText returns the number of rules carrying document text.
func CountWithFullText(rules []*Rule) int {
	n := 0
	for _, r := range rules {
		if r.HasFullText() {
			n++
		}
	}
	return n
}

// RuleParser decodes a listing page into rules.
type RuleParser interface {
	// ParseRules parses listing page HTML.
	// Returns EINVALID if the markup cannot be parsed and ENOTFOUND if the
	// rules table, its body, or its rows are missing. Row and field level
	// problems are reported as diagnostics on the result instead.
	ParseRules(html []byte) (*ExtractResult, error)
}

// DateParser normalizes free-form date text.
type DateParser interface {
	ParseDate(text string) (string, error)
}

// RuleWriter persists the final rule set.
type RuleWriter interface {
	WriteRules(ctx context.Context, rules []*Rule) error
}
