package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/rulescrape"
	"github.com/fwojciec/rulescrape/mock"
	rsslog "github.com/fwojciec/rulescrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRuleWriter_WriteRules(t *testing.T) {
	t.Parallel()

	t.Run("logs count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RuleWriter{
			WriteRulesFn: func(ctx context.Context, rules []*rulescrape.Rule) error {
				return nil
			},
		}

		writer := rsslog.NewLoggingRuleWriter(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := writer.WriteRules(context.Background(), []*rulescrape.Rule{{Title: "A"}, {Title: "B"}})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=\"write rules\"")
		assert.Contains(t, output, "count=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RuleWriter{
			WriteRulesFn: func(ctx context.Context, rules []*rulescrape.Rule) error {
				return errors.New("disk full")
			},
		}

		writer := rsslog.NewLoggingRuleWriter(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := writer.WriteRules(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}
