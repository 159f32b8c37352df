package etl_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/rulescrape"
	"github.com/fwojciec/rulescrape/etl"
	"github.com/fwojciec/rulescrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPipeline wires a pipeline whose listing page yields rules and whose
// documents all resolve to text.
func newPipeline(buf *bytes.Buffer, rules []*rulescrape.Rule, text string, writer rulescrape.RuleWriter) *etl.Pipeline {
	logger := textLogger(buf)
	return &etl.Pipeline{
		Extractor: &etl.Extractor{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					return []byte("<html></html>"), nil
				},
			},
			Parser: &mock.RuleParser{
				ParseRulesFn: func(_ []byte) (*rulescrape.ExtractResult, error) {
					return &rulescrape.ExtractResult{Rules: rules}, nil
				},
			},
			Logger:     logger,
			ListingURL: listingURL,
		},
		Enricher: &etl.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					return []byte("%PDF"), nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ []byte, _ int) (*rulescrape.PDFText, error) {
					return &rulescrape.PDFText{PageCount: 1, Pages: []string{text}}, nil
				},
			},
			Logger: logger,
			Pages:  2,
		},
		Writer:     writer,
		Logger:     logger,
		OutputPath: "output/proposed_rules.json",
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts enriches and writes rules", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var written []*rulescrape.Rule
		writer := &mock.RuleWriter{
			WriteRulesFn: func(_ context.Context, rules []*rulescrape.Rule) error {
				written = rules
				return nil
			},
		}
		rules := []*rulescrape.Rule{
			{Title: "A", ChapterLinks: []string{"https://x/a.pdf"}},
			{Title: "B"},
		}

		report := newPipeline(&buf, rules, "chapter text", writer).Run(context.Background())

		assert.Equal(t, 2, report.Extracted)
		assert.Equal(t, 1, report.WithText)
		assert.True(t, report.Written)
		assert.Empty(t, report.Diagnostics)
		require.Len(t, written, 2)
		assert.Equal(t, "chapter text", written[0].FullText)
		assert.Nil(t, written[0].ChapterLinks)

		output := buf.String()
		assert.Contains(t, output, "msg=\"extracting rules\"")
		assert.Contains(t, output, "msg=\"enriching rules\" count=2")
		assert.Contains(t, output, "msg=\"saving rules\" path=output/proposed_rules.json")
		assert.Contains(t, output, "msg=done elapsed=")
		assert.NotContains(t, output, "no rules contain full text")
	})

	t.Run("returns early without writing when nothing is extracted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := &mock.RuleWriter{
			WriteRulesFn: func(_ context.Context, _ []*rulescrape.Rule) error {
				t.Fatal("writer must not be called")
				return nil
			},
		}

		report := newPipeline(&buf, nil, "", writer).Run(context.Background())

		assert.Equal(t, 0, report.Extracted)
		assert.False(t, report.Written)
		assert.Contains(t, buf.String(), "no rules extracted")
		assert.NotContains(t, buf.String(), "enriching rules")
	})

	t.Run("warns but still writes when no rule has text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		called := false
		writer := &mock.RuleWriter{
			WriteRulesFn: func(_ context.Context, _ []*rulescrape.Rule) error {
				called = true
				return nil
			},
		}
		rules := []*rulescrape.Rule{{Title: "A", ChapterLinks: []string{"https://x/a.pdf"}}}

		report := newPipeline(&buf, rules, "", writer).Run(context.Background())

		assert.True(t, called)
		assert.True(t, report.Written)
		assert.Equal(t, 0, report.WithText)
		assert.Contains(t, buf.String(), "level=WARN msg=\"no rules contain full text\"")
	})

	t.Run("records persistence failure as output diagnostic", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := &mock.RuleWriter{
			WriteRulesFn: func(_ context.Context, _ []*rulescrape.Rule) error {
				return errors.New("read-only file system")
			},
		}

		report := newPipeline(&buf, []*rulescrape.Rule{{Title: "A"}}, "", writer).Run(context.Background())

		assert.False(t, report.Written)
		require.Len(t, report.Diagnostics, 1)
		assert.Equal(t, rulescrape.ScopeOutput, report.Diagnostics[0].Scope)
		assert.Equal(t, "output/proposed_rules.json", report.Diagnostics[0].Target)
		assert.Contains(t, buf.String(), "err=\"read-only file system\"")
		assert.Contains(t, buf.String(), "msg=done")
	})
}

func TestPersist(t *testing.T) {
	t.Parallel()

	t.Run("returns and logs writer error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		writer := &mock.RuleWriter{
			WriteRulesFn: func(_ context.Context, _ []*rulescrape.Rule) error {
				return errors.New("disk full")
			},
		}

		err := etl.Persist(context.Background(), writer, []*rulescrape.Rule{{Title: "A"}}, textLogger(&buf))

		require.Error(t, err)
		assert.Contains(t, buf.String(), "msg=\"save rules\" err=\"disk full\"")
	})

	t.Run("passes rules through", func(t *testing.T) {
		t.Parallel()

		var got []*rulescrape.Rule
		writer := &mock.RuleWriter{
			WriteRulesFn: func(_ context.Context, rules []*rulescrape.Rule) error {
				got = rules
				return nil
			},
		}
		rules := []*rulescrape.Rule{{Title: "A"}}

		require.NoError(t, etl.Persist(context.Background(), writer, rules, nil))
		assert.Equal(t, rules, got)
	})
}
