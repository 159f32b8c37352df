package mock

import (
	"context"

	"github.com/fwojciec/rulescrape"
)

var _ rulescrape.RuleWriter = (*RuleWriter)(nil)

// RuleWriter is a mock implementation of rulescrape.RuleWriter.
type RuleWriter struct {
	WriteRulesFn func(ctx context.Context, rules []*rulescrape.Rule) error
}

func (w *RuleWriter) WriteRules(ctx context.Context, rules []*rulescrape.Rule) error {
	return w.WriteRulesFn(ctx, rules)
}
