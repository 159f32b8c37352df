package mock

import "github.com/fwojciec/rulescrape"

var _ rulescrape.RuleParser = (*RuleParser)(nil)

// RuleParser is a mock implementation of rulescrape.RuleParser.
type RuleParser struct {
	ParseRulesFn func(html []byte) (*rulescrape.ExtractResult, error)
}

func (p *RuleParser) ParseRules(html []byte) (*rulescrape.ExtractResult, error) {
	return p.ParseRulesFn(html)
}

var _ rulescrape.DateParser = (*DateParser)(nil)

// DateParser is a mock implementation of rulescrape.DateParser.
type DateParser struct {
	ParseDateFn func(text string) (string, error)
}

func (p *DateParser) ParseDate(text string) (string, error) {
	return p.ParseDateFn(text)
}
